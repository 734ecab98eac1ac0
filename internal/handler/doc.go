package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteDoc 单条路由说明
type RouteDoc struct {
	Path        string `json:"path"`
	Method      string `json:"method"`
	Description string `json:"description"`
}

var routeDocs = []RouteDoc{
	{"/", "GET", "Home route with a welcome message."},
	{"/predict", "POST", "Returns the chatbot's response based on the message."},
	{"/learn", "POST", "Teach the bot a new question-answer pair."},
	{"/qa", "GET", "Returns all questions and answers stored in the database."},
	{"/qa/unmatched", "GET", "Recent questions the bot could not answer."},
	{"/qa/:id", "GET/PUT/DELETE", "Get, update or delete a question-answer pair."},
	{"/events", "GET/POST", "Get or add upcoming events."},
	{"/events/:id", "GET/PUT/DELETE", "Get, update or delete an event."},
	{"/communications", "GET/POST", "Get or add important communications."},
	{"/communications/:id", "GET/PUT/DELETE", "Get, update or delete a communication."},
}

// Home 欢迎信息
func Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the chatbot API. See /doc for available routes."})
}

// Documentation 路由文档
func Documentation(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"routes": routeDocs})
}
