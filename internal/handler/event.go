package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qabot/backend/internal/model"
	"github.com/qabot/backend/internal/service"
)

type EventHandler struct {
	service *service.EventService
}

func NewEventHandler(service *service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *EventHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/events", h.List)
	router.POST("/events", h.Create)
	router.GET("/events/:id", h.Get)
	router.PUT("/events/:id", h.Update)
	router.DELETE("/events/:id", h.Delete)
}

// EventResponse 活动日期只保留到天
type EventResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	EventDate   string `json:"event_date"`
}

func toEventResponse(e *model.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		EventDate:   e.Date.Format(service.EventDateLayout),
	}
}

func (h *EventHandler) Create(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	event, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "CreateEvent", err, "An error occurred while managing events.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Event added!", "id": event.ID})
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, "ListEvents", err, "An error occurred while managing events.")
		return
	}
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, toEventResponse(&events[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	event, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetEvent", err, "An error occurred while fetching the event.")
		return
	}
	c.JSON(http.StatusOK, toEventResponse(event))
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.service.Update(c.Request.Context(), id, &req); err != nil {
		respondError(c, "UpdateEvent", err, "An error occurred while updating or deleting the event.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event updated!"})
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteEvent", err, "An error occurred while updating or deleting the event.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted!"})
}
