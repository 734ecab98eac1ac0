package service

import (
	"context"
	"time"

	"github.com/qabot/backend/internal/model"
	"github.com/qabot/backend/internal/repository"
	"k8s.io/klog/v2"
)

type CreateCommunicationRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// UpdateCommunicationRequest 部分更新，nil 字段保持不变
type UpdateCommunicationRequest struct {
	Title   *string `json:"title"`
	Message *string `json:"message"`
}

type CommunicationService struct {
	repo repository.CommunicationRepository
	now  func() time.Time
}

func NewCommunicationService(repo repository.CommunicationRepository) *CommunicationService {
	return &CommunicationService{repo: repo, now: time.Now}
}

func (s *CommunicationService) Create(ctx context.Context, req *CreateCommunicationRequest) (*model.Communication, error) {
	if IsBlank(req.Title) || IsBlank(req.Message) {
		return nil, ErrInvalidInput
	}

	comm := &model.Communication{
		Title:      req.Title,
		Message:    req.Message,
		DatePosted: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, comm); err != nil {
		klog.Errorf("CreateCommunication: failed: %v", err)
		return nil, storageErr("create communication", err)
	}
	klog.V(6).Infof("CreateCommunication: created id=%d", comm.ID)
	return comm, nil
}

func (s *CommunicationService) List(ctx context.Context) ([]model.Communication, error) {
	comms, err := s.repo.List(ctx)
	if err != nil {
		klog.Errorf("ListCommunications: failed: %v", err)
		return nil, storageErr("list communications", err)
	}
	return comms, nil
}

func (s *CommunicationService) Get(ctx context.Context, id uint) (*model.Communication, error) {
	comm, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storageErr("get communication", err)
	}
	return comm, nil
}

// Update 修改标题或内容，并把发布时间刷新为当前时间
func (s *CommunicationService) Update(ctx context.Context, id uint, req *UpdateCommunicationRequest) (*model.Communication, error) {
	comm, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storageErr("get communication", err)
	}

	if req.Title != nil {
		if IsBlank(*req.Title) {
			return nil, ErrInvalidInput
		}
		comm.Title = *req.Title
	}
	if req.Message != nil {
		if IsBlank(*req.Message) {
			return nil, ErrInvalidInput
		}
		comm.Message = *req.Message
	}
	comm.DatePosted = s.now().UTC()

	if err := s.repo.Save(ctx, comm); err != nil {
		klog.Errorf("UpdateCommunication: failed to save id=%d: %v", id, err)
		return nil, storageErr("save communication", err)
	}
	return comm, nil
}

func (s *CommunicationService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storageErr("delete communication", err)
	}
	klog.V(6).Infof("DeleteCommunication: deleted id=%d", id)
	return nil
}
