package model

import (
	"time"

	"gorm.io/gorm"
)

// QAPair 问答对，Question 始终以规范化形式存储
type QAPair struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Question  string    `json:"question" gorm:"size:255;uniqueIndex;not null"`
	Answer    string    `json:"answer" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (QAPair) TableName() string {
	return "question_answers"
}

// Event 近期活动
type Event struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Date        time.Time `json:"event_date" gorm:"column:date;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Event) TableName() string {
	return "upcoming_events"
}

// Communication 重要通知
type Communication struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"size:255;not null"`
	Message    string    `json:"message" gorm:"type:text;not null"`
	DatePosted time.Time `json:"date_posted" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Communication) TableName() string {
	return "important_communications"
}

// BeforeSave GORM 钩子：统一以 UTC 存储发布时间
func (c *Communication) BeforeSave(tx *gorm.DB) error {
	if c.DatePosted.IsZero() {
		c.DatePosted = time.Now().UTC()
	} else {
		c.DatePosted = c.DatePosted.UTC()
	}
	return nil
}

// All 需要自动迁移的模型
func All() []any {
	return []any{&QAPair{}, &Event{}, &Communication{}}
}
