package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qabot/backend/internal/repository"
)

var (
	// ErrInvalidInput 空白或不合法的输入
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound 记录不存在
	ErrNotFound = repository.ErrNotFound
	// ErrDuplicate 规范化后的问题与已有记录冲突
	ErrDuplicate = repository.ErrDuplicate
	// ErrStorage 存储层失败，对调用方不透明
	ErrStorage = errors.New("storage failure")
)

// IsBlank 判断文本是否为空或全是空白
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// storageErr 包装存储错误；NotFound 和 Duplicate 原样透出
func storageErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrDuplicate) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
