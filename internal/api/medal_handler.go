package api

import (
	"net/http"
	"strings"

	"OlympicsHub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MedalHandler 奖牌录入与奖牌榜
type MedalHandler struct {
	medals   *service.MedalService
	olympics *service.OlympicsService
	logger   *logrus.Logger
}

func NewMedalHandler(svc *service.Services, logger *logrus.Logger) *MedalHandler {
	return &MedalHandler{medals: svc.Medals, olympics: svc.Olympics, logger: logger}
}

// Standings 奖牌榜
// GET /api/medals?olympics=<id|all>&limit=10&sort=rank|name
func (h *MedalHandler) Standings(c *gin.Context) {
	scope, err := resolveScope(c, h.olympics, false)
	if err != nil {
		respondError(c, h.logger, "Standings", err)
		return
	}
	limit, err := queryLimit(c)
	if err != nil {
		respondError(c, h.logger, "Standings", err)
		return
	}
	rows, err := h.medals.Standings(c.Request.Context(), scope, limit, strings.TrimSpace(c.Query("sort")))
	if err != nil {
		respondError(c, h.logger, "Standings", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ListMedals 奖牌明细，最新在前
// GET /api/medals/all?olympics=&country=&medal_event=
func (h *MedalHandler) ListMedals(c *gin.Context) {
	var filter service.MedalFilter
	var err error
	if filter.CountryID, err = queryID(c, "country"); err != nil {
		respondError(c, h.logger, "ListMedals", err)
		return
	}
	if filter.MedalEventID, err = queryID(c, "medal_event"); err != nil {
		respondError(c, h.logger, "ListMedals", err)
		return
	}
	if filter.Scope, err = resolveScope(c, h.olympics, filter.MedalEventID != nil); err != nil {
		respondError(c, h.logger, "ListMedals", err)
		return
	}
	list, err := h.medals.ListMedals(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, "ListMedals", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// AwardMedal POST /api/medals
func (h *MedalHandler) AwardMedal(c *gin.Context) {
	var req service.MedalRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.medals.AwardMedal(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "AwardMedal", err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *MedalHandler) DeleteMedal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.medals.DeleteMedal(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "DeleteMedal", err)
		return
	}
	c.Status(http.StatusNoContent)
}
