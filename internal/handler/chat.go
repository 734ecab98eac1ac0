package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qabot/backend/internal/service"
	"k8s.io/klog/v2"
)

// ChatHandler 聊天与教学接口
type ChatHandler struct {
	bot *service.ChatBotService
}

func NewChatHandler(bot *service.ChatBotService) *ChatHandler {
	return &ChatHandler{bot: bot}
}

// PredictRequest 聊天请求
type PredictRequest struct {
	Message string `json:"message"`
}

// LearnRequest 教学请求
type LearnRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Predict 根据消息返回机器人回复
func (h *ChatHandler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil || service.IsBlank(req.Message) {
		klog.V(6).Infof("Predict: invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid text input"})
		return
	}

	answer, err := h.bot.Respond(c.Request.Context(), req.Message)
	if err != nil {
		respondError(c, "Predict", err, "An error occurred while processing your request.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// Learn 教机器人一组新的问答
func (h *ChatHandler) Learn(c *gin.Context) {
	var req LearnRequest
	if err := c.ShouldBindJSON(&req); err != nil || service.IsBlank(req.Question) || service.IsBlank(req.Answer) {
		klog.V(6).Infof("Learn: invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := h.bot.Teach(c.Request.Context(), req.Question, req.Answer); err != nil {
		respondError(c, "Learn", err, "An error occurred while learning the new response.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Response learned!"})
}
