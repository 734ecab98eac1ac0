package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/qabot/backend/config"
	"github.com/qabot/backend/internal/eventbus"
	"github.com/qabot/backend/internal/handler"
	"github.com/qabot/backend/internal/pkg/database"
	"github.com/qabot/backend/internal/repository"
	"github.com/qabot/backend/internal/service"
	"github.com/qabot/backend/internal/subscriber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()

	db, err := database.InitDB("sqlite", ":memory:")
	require.NoError(t, err)

	bus := eventbus.NewQAEventBus()
	sub := subscriber.NewQAEventSubscriber(10)
	sub.Register(bus)

	qaRepo := repository.NewQARepository(db)
	return Setup(cfg,
		handler.NewChatHandler(service.NewChatBotService(cfg, qaRepo, nil, bus)),
		handler.NewQAHandler(service.NewQAService(qaRepo, bus), sub),
		handler.NewEventHandler(service.NewEventService(repository.NewEventRepository(db))),
		handler.NewCommunicationHandler(service.NewCommunicationService(repository.NewCommunicationRepository(db))),
	)
}

func TestRouterRoutesAndRequestID(t *testing.T) {
	r := setupTestRouter(t)

	routes := []struct {
		method string
		path   string
		body   string
		code   int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/doc", "", http.StatusOK},
		{http.MethodPost, "/learn", `{"question":"hi","answer":"hello"}`, http.StatusOK},
		{http.MethodPost, "/predict", `{"message":"Hi!"}`, http.StatusOK},
		{http.MethodGet, "/qa", "", http.StatusOK},
		{http.MethodGet, "/qa/unmatched", "", http.StatusOK},
		{http.MethodGet, "/events", "", http.StatusOK},
		{http.MethodGet, "/communications", "", http.StatusOK},
		{http.MethodGet, "/missing", "", http.StatusNotFound},
	}
	for _, rt := range routes {
		req := httptest.NewRequest(rt.method, rt.path, strings.NewReader(rt.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, rt.code, w.Code, "%s %s", rt.method, rt.path)
		_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
		assert.NoError(t, err, "响应应携带生成的请求 ID")
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	r := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
