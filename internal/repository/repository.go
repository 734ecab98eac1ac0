package repository

import (
	"context"
	"errors"

	"github.com/qabot/backend/internal/model"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

// ErrDuplicate 唯一约束冲突
var ErrDuplicate = errors.New("record already exists")

// QARepository 问答对仓储
type QARepository interface {
	// List 按 id 顺序返回全部问答对
	List(ctx context.Context) ([]model.QAPair, error)
	// Questions 返回全部已规范化问题，顺序与 List 一致
	Questions(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id uint) (*model.QAPair, error)
	// GetByQuestion 按规范化问题精确查找
	GetByQuestion(ctx context.Context, question string) (*model.QAPair, error)
	Create(ctx context.Context, qa *model.QAPair) error
	// Upsert 按问题写入：问题已存在时只覆盖答案，完成后 qa 为库中记录
	Upsert(ctx context.Context, qa *model.QAPair) error
	UpdateAnswer(ctx context.Context, id uint, answer string) error
	Save(ctx context.Context, qa *model.QAPair) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	// Transaction 在同一事务内执行 fn，fn 返回错误时回滚
	Transaction(ctx context.Context, fn func(repo QARepository) error) error
}

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	List(ctx context.Context) ([]model.Event, error)
	Get(ctx context.Context, id uint) (*model.Event, error)
	Save(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id uint) error
}

type CommunicationRepository interface {
	Create(ctx context.Context, comm *model.Communication) error
	List(ctx context.Context) ([]model.Communication, error)
	Get(ctx context.Context, id uint) (*model.Communication, error)
	Save(ctx context.Context, comm *model.Communication) error
	Delete(ctx context.Context, id uint) error
}
