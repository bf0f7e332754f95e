package api

import (
	"net/http"
	"strings"

	"OlympicsHub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ScheduleHandler 赛程、看板与设置
type ScheduleHandler struct {
	schedule *service.ScheduleService
	stats    *service.StatsService
	settings *service.SettingsService
	olympics *service.OlympicsService
	logger   *logrus.Logger
}

func NewScheduleHandler(svc *service.Services, logger *logrus.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		schedule: svc.Schedule,
		stats:    svc.Stats,
		settings: svc.Settings,
		olympics: svc.Olympics,
		logger:   logger,
	}
}

// Schedule 赛程视图，时间均为 UTC，由客户端按本地时区展示
// GET /api/schedule?olympics=&date=2024-07-31&tz=Europe/Paris&sport=&status=&medal_event=&limit=
func (h *ScheduleHandler) Schedule(c *gin.Context) {
	var q service.ScheduleQuery
	var err error
	if q.SportID, err = queryID(c, "sport"); err != nil {
		respondError(c, h.logger, "Schedule", err)
		return
	}
	if q.MedalEventID, err = queryID(c, "medal_event"); err != nil {
		respondError(c, h.logger, "Schedule", err)
		return
	}
	if q.Location, err = queryLocation(c); err != nil {
		respondError(c, h.logger, "Schedule", err)
		return
	}
	if q.Limit, err = queryLimit(c); err != nil {
		respondError(c, h.logger, "Schedule", err)
		return
	}
	if q.Scope, err = resolveScope(c, h.olympics, q.MedalEventID != nil); err != nil {
		respondError(c, h.logger, "Schedule", err)
		return
	}
	q.Date = strings.TrimSpace(c.Query("date"))
	q.Status = strings.TrimSpace(c.Query("status"))

	items, err := h.schedule.Schedule(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.logger, "Schedule", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Stats 看板汇总
// GET /api/stats?olympics=<id>
func (h *ScheduleHandler) Stats(c *gin.Context) {
	explicit, err := queryID(c, "olympics")
	if err != nil {
		respondError(c, h.logger, "Stats", err)
		return
	}
	snap, err := h.stats.Snapshot(c.Request.Context(), explicit)
	if err != nil {
		respondError(c, h.logger, "Stats", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GetSettings GET /api/settings
func (h *ScheduleHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "GetSettings", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings PUT /api/settings {"default_timezone": "Europe/Paris"}
func (h *ScheduleHandler) UpdateSettings(c *gin.Context) {
	var req map[string]string
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.settings.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "UpdateSettings", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
