package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/qabot/backend/internal/model"
	"github.com/qabot/backend/internal/repository"
	"k8s.io/klog/v2"
)

// EventDateLayout 活动日期的输出格式
const EventDateLayout = "2006-01-02"

var eventDateLayouts = []string{
	EventDateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseEventDate 解析 ISO 日期或日期时间，无时区视为 UTC，结果截断到当天零点
func ParseEventDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range eventDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid event_date %q", ErrInvalidInput, value)
}

type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	EventDate   string `json:"event_date"`
}

// UpdateEventRequest 部分更新，nil 字段保持不变
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	EventDate   *string `json:"event_date"`
}

type EventService struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) *EventService {
	return &EventService{repo: repo}
}

func (s *EventService) Create(ctx context.Context, req *CreateEventRequest) (*model.Event, error) {
	if IsBlank(req.Title) || IsBlank(req.Description) {
		return nil, ErrInvalidInput
	}
	date, err := ParseEventDate(req.EventDate)
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		klog.Errorf("CreateEvent: failed: %v", err)
		return nil, storageErr("create event", err)
	}
	klog.V(6).Infof("CreateEvent: created event id=%d", event.ID)
	return event, nil
}

func (s *EventService) List(ctx context.Context) ([]model.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		klog.Errorf("ListEvents: failed: %v", err)
		return nil, storageErr("list events", err)
	}
	return events, nil
}

func (s *EventService) Get(ctx context.Context, id uint) (*model.Event, error) {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storageErr("get event", err)
	}
	return event, nil
}

func (s *EventService) Update(ctx context.Context, id uint, req *UpdateEventRequest) (*model.Event, error) {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storageErr("get event", err)
	}

	if req.Title != nil {
		if IsBlank(*req.Title) {
			return nil, ErrInvalidInput
		}
		event.Title = *req.Title
	}
	if req.Description != nil {
		if IsBlank(*req.Description) {
			return nil, ErrInvalidInput
		}
		event.Description = *req.Description
	}
	if req.EventDate != nil {
		date, err := ParseEventDate(*req.EventDate)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}

	if err := s.repo.Save(ctx, event); err != nil {
		klog.Errorf("UpdateEvent: failed to save id=%d: %v", id, err)
		return nil, storageErr("save event", err)
	}
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storageErr("delete event", err)
	}
	klog.V(6).Infof("DeleteEvent: deleted event id=%d", id)
	return nil
}
