package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestLogger 每个请求一条 logrus 日志；沿用客户端的 X-Request-ID，没有则生成
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		})
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("请求处理失败")
		case status >= http.StatusBadRequest:
			entry.Warn("请求被拒绝")
		default:
			entry.Info("请求完成")
		}
	}
}

// authorized 校验 Authorization: Bearer <admin_password>，常量时间比较；
// 未配置口令时一律不通过
func authorized(header string, expected []byte) bool {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || len(expected) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), expected) == 1
}

// BearerAuth 写接口鉴权。未配置口令时拒绝全部写操作
func BearerAuth(password string) gin.HandlerFunc {
	expected := []byte(password)
	return func(c *gin.Context) {
		if !authorized(c.GetHeader("Authorization"), expected) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// AuthCheck POST /api/auth/check，公开接口，只报告口令是否有效
func AuthCheck(password string) gin.HandlerFunc {
	expected := []byte(password)
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"authenticated": authorized(c.GetHeader("Authorization"), expected)})
	}
}
