package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qabot/backend/internal/model"
	"github.com/qabot/backend/internal/service"
)

type CommunicationHandler struct {
	service *service.CommunicationService
}

func NewCommunicationHandler(service *service.CommunicationService) *CommunicationHandler {
	return &CommunicationHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *CommunicationHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/communications", h.List)
	router.POST("/communications", h.Create)
	router.GET("/communications/:id", h.Get)
	router.PUT("/communications/:id", h.Update)
	router.DELETE("/communications/:id", h.Delete)
}

type CommunicationResponse struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	DatePosted string `json:"date_posted"`
}

func toCommunicationResponse(comm *model.Communication) CommunicationResponse {
	return CommunicationResponse{
		ID:         comm.ID,
		Title:      comm.Title,
		Message:    comm.Message,
		DatePosted: comm.DatePosted.UTC().Format(time.RFC3339),
	}
}

func (h *CommunicationHandler) Create(c *gin.Context) {
	var req service.CreateCommunicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comm, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "CreateCommunication", err, "An error occurred while managing communications.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Communication added!", "id": comm.ID})
}

func (h *CommunicationHandler) List(c *gin.Context) {
	comms, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, "ListCommunications", err, "An error occurred while managing communications.")
		return
	}
	out := make([]CommunicationResponse, 0, len(comms))
	for i := range comms {
		out = append(out, toCommunicationResponse(&comms[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CommunicationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	comm, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetCommunication", err, "An error occurred while fetching the communication.")
		return
	}
	c.JSON(http.StatusOK, toCommunicationResponse(comm))
}

func (h *CommunicationHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.UpdateCommunicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.service.Update(c.Request.Context(), id, &req); err != nil {
		respondError(c, "UpdateCommunication", err, "An error occurred while updating or deleting the communication.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Communication updated!"})
}

func (h *CommunicationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteCommunication", err, "An error occurred while updating or deleting the communication.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Communication deleted!"})
}
