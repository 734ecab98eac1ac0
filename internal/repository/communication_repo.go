package repository

import (
	"context"
	"errors"

	"github.com/qabot/backend/internal/model"
	"gorm.io/gorm"
)

type communicationRepository struct {
	db *gorm.DB
}

func NewCommunicationRepository(db *gorm.DB) CommunicationRepository {
	return &communicationRepository{db: db}
}

func (r *communicationRepository) Create(ctx context.Context, comm *model.Communication) error {
	return r.db.WithContext(ctx).Create(comm).Error
}

// List 最新发布的在前
func (r *communicationRepository) List(ctx context.Context) ([]model.Communication, error) {
	var comms []model.Communication
	err := r.db.WithContext(ctx).Order("date_posted DESC, id DESC").Find(&comms).Error
	return comms, err
}

func (r *communicationRepository) Get(ctx context.Context, id uint) (*model.Communication, error) {
	var comm model.Communication
	err := r.db.WithContext(ctx).First(&comm, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comm, nil
}

func (r *communicationRepository) Save(ctx context.Context, comm *model.Communication) error {
	return r.db.WithContext(ctx).Save(comm).Error
}

func (r *communicationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Communication{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
