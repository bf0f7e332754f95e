package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"OlympicsHub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// olympicsAll ?olympics=all 表示跨全部届次
const olympicsAll = "all"

// respondError 错误类型 → HTTP 状态码；未知错误只记日志，不把内部信息返回给调用方
func respondError(c *gin.Context, logger *logrus.Logger, op string, err error) {
	var (
		ve *service.ValidationError
		nf *service.NotFoundError
		ce *service.ConflictError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
	case errors.As(err, &ce):
		c.JSON(http.StatusConflict, gin.H{"error": ce.Error()})
	default:
		logger.WithError(err).WithField("request_id", c.GetString(requestIDKey)).Error(op + " failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// bindJSON 解析请求体，失败时直接写 400
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// pathID 解析 :id，失败时直接写 400
func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id: must be a positive integer"})
		return 0, false
	}
	return id, true
}

// queryID 可选的数字查询参数；缺省返回 nil
func queryID(c *gin.Context, name string) (*uint64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, &service.ValidationError{Field: name, Message: "must be a positive integer"}
	}
	return &id, nil
}

func queryLimit(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &service.ValidationError{Field: "limit", Message: "must be a non-negative integer"}
	}
	return n, nil
}

// queryLocation ?tz=<IANA>；缺省为 nil（服务器本地时区）
func queryLocation(c *gin.Context) (*time.Location, error) {
	tz := strings.TrimSpace(c.Query("tz"))
	if tz == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, &service.ValidationError{Field: "tz", Message: "unknown time zone " + strconv.Quote(tz)}
	}
	return loc, nil
}

// resolveScope ?olympics=<id>|all；未给出时取当前届。
// byParent 为 true（已按小项/轮次等父级过滤）时缺省不限届次
func resolveScope(c *gin.Context, olympics *service.OlympicsService, byParent bool) (service.Scope, error) {
	raw := strings.TrimSpace(c.Query("olympics"))
	if raw == olympicsAll || (raw == "" && byParent) {
		return service.GlobalScope, nil
	}
	explicit, err := queryID(c, "olympics")
	if err != nil {
		return service.Scope{}, err
	}
	return olympics.ResolveScope(c.Request.Context(), explicit, false)
}

// statusRequest PUT .../status
type statusRequest struct {
	Status string `json:"status"`
}
