package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/qabot/backend/config"
	"github.com/qabot/backend/internal/eventbus"
	"github.com/qabot/backend/internal/model"
	"github.com/qabot/backend/internal/repository"
	"github.com/qabot/backend/internal/service"
	"github.com/qabot/backend/internal/subscriber"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	router *gin.Engine
	qaRepo repository.QARepository
	sub    *subscriber.QAEventSubscriber
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(model.All()...))

	bus := eventbus.NewQAEventBus()
	sub := subscriber.NewQAEventSubscriber(10)
	sub.Register(bus)

	qaRepo := repository.NewQARepository(db)
	bot := service.NewChatBotService(config.Default(), qaRepo, nil, bus)

	r := gin.New()
	chat := NewChatHandler(bot)
	r.POST("/predict", chat.Predict)
	r.POST("/learn", chat.Learn)
	NewQAHandler(service.NewQAService(qaRepo, bus), sub).RegisterRoutes(r)
	NewEventHandler(service.NewEventService(repository.NewEventRepository(db))).RegisterRoutes(r)
	NewCommunicationHandler(service.NewCommunicationService(repository.NewCommunicationRepository(db))).RegisterRoutes(r)
	r.GET("/doc", Documentation)

	return &testEnv{router: r, qaRepo: qaRepo, sub: sub}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("unmarshal response error: %v, body=%s", err, w.Body.String())
	}
}
