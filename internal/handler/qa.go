package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qabot/backend/internal/service"
	"github.com/qabot/backend/internal/subscriber"
)

// UnmatchedLister 提供最近未命中的问题
type UnmatchedLister interface {
	Unmatched() []subscriber.UnmatchedQuery
}

// QAHandler 问答对管理接口
type QAHandler struct {
	service   *service.QAService
	unmatched UnmatchedLister
}

func NewQAHandler(service *service.QAService, unmatched UnmatchedLister) *QAHandler {
	return &QAHandler{service: service, unmatched: unmatched}
}

// RegisterRoutes 注册路由
func (h *QAHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/qa", h.List)
	router.GET("/qa/unmatched", h.Unmatched)
	router.GET("/qa/:id", h.Get)
	router.PUT("/qa/:id", h.Update)
	router.DELETE("/qa/:id", h.Delete)
}

func (h *QAHandler) List(c *gin.Context) {
	pairs, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, "ListQA", err, "An error occurred while fetching questions and answers.")
		return
	}
	c.JSON(http.StatusOK, pairs)
}

func (h *QAHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	qa, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetQA", err, "An error occurred while fetching the QA.")
		return
	}
	c.JSON(http.StatusOK, qa)
}

func (h *QAHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.UpdateQARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.service.Update(c.Request.Context(), id, &req); err != nil {
		respondError(c, "UpdateQA", err, "An error occurred while updating or deleting the QA.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "QA updated!"})
}

func (h *QAHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteQA", err, "An error occurred while updating or deleting the QA.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "QA deleted!"})
}

// Unmatched 最近未能回答、可供教学的问题
func (h *QAHandler) Unmatched(c *gin.Context) {
	if h.unmatched == nil {
		c.JSON(http.StatusOK, []subscriber.UnmatchedQuery{})
		return
	}
	c.JSON(http.StatusOK, h.unmatched.Unmatched())
}
