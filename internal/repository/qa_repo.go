package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/qabot/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// qaRepository 问答对仓储实现
type qaRepository struct {
	db *gorm.DB
}

// NewQARepository 创建问答对仓储
func NewQARepository(db *gorm.DB) QARepository {
	return &qaRepository{db: db}
}

func (r *qaRepository) List(ctx context.Context) ([]model.QAPair, error) {
	var pairs []model.QAPair
	err := r.db.WithContext(ctx).Order("id ASC").Find(&pairs).Error
	return pairs, err
}

func (r *qaRepository) Questions(ctx context.Context) ([]string, error) {
	var questions []string
	err := r.db.WithContext(ctx).
		Model(&model.QAPair{}).
		Order("id ASC").
		Pluck("question", &questions).Error
	return questions, err
}

func (r *qaRepository) Get(ctx context.Context, id uint) (*model.QAPair, error) {
	var qa model.QAPair
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&qa).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &qa, nil
}

func (r *qaRepository) GetByQuestion(ctx context.Context, question string) (*model.QAPair, error) {
	var qa model.QAPair
	err := r.db.WithContext(ctx).Where("question = ?", question).First(&qa).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &qa, nil
}

func (r *qaRepository) Create(ctx context.Context, qa *model.QAPair) error {
	return translate(r.db.WithContext(ctx).Create(qa).Error)
}

func (r *qaRepository) Upsert(ctx context.Context, qa *model.QAPair) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "question"}},
		DoUpdates: clause.AssignmentColumns([]string{"answer", "updated_at"}),
	}).Create(qa).Error
	if err != nil {
		return translate(err)
	}
	// 冲突更新时 MySQL 回填的主键不可靠，按问题重新读取
	var stored model.QAPair
	if err := r.db.WithContext(ctx).Where("question = ?", qa.Question).First(&stored).Error; err != nil {
		return err
	}
	*qa = stored
	return nil
}

// UpdateAnswer 只更新答案列。MySQL 对未变化的行返回 0，故不以影响行数判断存在性
func (r *qaRepository) UpdateAnswer(ctx context.Context, id uint, answer string) error {
	return r.db.WithContext(ctx).
		Model(&model.QAPair{}).
		Where("id = ?", id).
		Update("answer", answer).Error
}

func (r *qaRepository) Save(ctx context.Context, qa *model.QAPair) error {
	return translate(r.db.WithContext(ctx).Save(qa).Error)
}

func (r *qaRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.QAPair{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *qaRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.QAPair{}).Count(&count).Error
	return count, err
}

func (r *qaRepository) Transaction(ctx context.Context, fn func(repo QARepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&qaRepository{db: tx})
	})
}

// translate 将唯一约束冲突统一为 ErrDuplicate
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "Duplicate entry") {
		return ErrDuplicate
	}
	return err
}
