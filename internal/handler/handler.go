package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/qabot/backend/internal/service"
	"k8s.io/klog/v2"
)

// parseID 解析路径参数 id，失败时已写入 400 响应
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// respondError 将服务层错误映射为 HTTP 状态码；存储错误只返回通用信息
func respondError(c *gin.Context, op string, err error, generic string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		klog.Errorf("%s: failed: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": generic})
	}
}
