package service

import (
	"context"
	"errors"

	"github.com/qabot/backend/internal/eventbus"
	"github.com/qabot/backend/internal/model"
	"github.com/qabot/backend/internal/pkg/matcher"
	"github.com/qabot/backend/internal/repository"
	"k8s.io/klog/v2"
)

// UpdateQARequest 部分更新，nil 字段保持不变
type UpdateQARequest struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

// QAService 问答对的管理操作
type QAService struct {
	repo repository.QARepository
	bus  *eventbus.QAEventBus
}

func NewQAService(repo repository.QARepository, bus *eventbus.QAEventBus) *QAService {
	return &QAService{repo: repo, bus: bus}
}

func (s *QAService) List(ctx context.Context) ([]model.QAPair, error) {
	pairs, err := s.repo.List(ctx)
	if err != nil {
		klog.Errorf("ListQA: failed: %v", err)
		return nil, storageErr("list qa", err)
	}
	return pairs, nil
}

func (s *QAService) Get(ctx context.Context, id uint) (*model.QAPair, error) {
	qa, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storageErr("get qa", err)
	}
	return qa, nil
}

// Update 修改问题或答案；问题会重新规范化，与其他记录冲突时返回 ErrDuplicate
func (s *QAService) Update(ctx context.Context, id uint, req *UpdateQARequest) (*model.QAPair, error) {
	klog.V(6).Infof("UpdateQA: updating qa with id=%d", id)

	qa, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storageErr("get qa", err)
	}

	if req.Question != nil {
		normalized := matcher.Normalize(*req.Question)
		if normalized == "" {
			return nil, ErrInvalidInput
		}
		if normalized != qa.Question {
			existing, err := s.repo.GetByQuestion(ctx, normalized)
			switch {
			case err == nil && existing.ID != id:
				klog.Warningf("UpdateQA: question %q already exists as id=%d", normalized, existing.ID)
				return nil, ErrDuplicate
			case err != nil && !errors.Is(err, repository.ErrNotFound):
				return nil, storageErr("get qa by question", err)
			}
			qa.Question = normalized
		}
	}
	if req.Answer != nil {
		if IsBlank(*req.Answer) {
			return nil, ErrInvalidInput
		}
		qa.Answer = *req.Answer
	}

	if err := s.repo.Save(ctx, qa); err != nil {
		klog.Errorf("UpdateQA: failed to save qa id=%d: %v", id, err)
		return nil, storageErr("save qa", err)
	}

	if err := s.bus.Publish(ctx, eventbus.QAEventUpdated, eventbus.QAEvent{
		Type:     eventbus.QAEventUpdated,
		QAID:     qa.ID,
		Question: qa.Question,
	}); err != nil {
		klog.Warningf("UpdateQA: publish event failed: %v", err)
	}
	return qa, nil
}

func (s *QAService) Delete(ctx context.Context, id uint) error {
	klog.V(6).Infof("DeleteQA: deleting qa with id=%d", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		return storageErr("delete qa", err)
	}

	if err := s.bus.Publish(ctx, eventbus.QAEventDeleted, eventbus.QAEvent{
		Type: eventbus.QAEventDeleted,
		QAID: id,
	}); err != nil {
		klog.Warningf("DeleteQA: publish event failed: %v", err)
	}
	return nil
}
