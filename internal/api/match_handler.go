package api

import (
	"net/http"

	"OlympicsHub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MatchHandler 对阵接口
type MatchHandler struct {
	matches  *service.MatchService
	olympics *service.OlympicsService
	logger   *logrus.Logger
}

func NewMatchHandler(svc *service.Services, logger *logrus.Logger) *MatchHandler {
	return &MatchHandler{matches: svc.Matches, olympics: svc.Olympics, logger: logger}
}

// ListMatches GET /api/matches?round=&medal_event=&country=&olympics=
func (h *MatchHandler) ListMatches(c *gin.Context) {
	var filter service.MatchFilter
	var err error
	if filter.EventRoundID, err = queryID(c, "round"); err != nil {
		respondError(c, h.logger, "ListMatches", err)
		return
	}
	if filter.MedalEventID, err = queryID(c, "medal_event"); err != nil {
		respondError(c, h.logger, "ListMatches", err)
		return
	}
	if filter.CountryID, err = queryID(c, "country"); err != nil {
		respondError(c, h.logger, "ListMatches", err)
		return
	}
	byParent := filter.EventRoundID != nil || filter.MedalEventID != nil
	if filter.Scope, err = resolveScope(c, h.olympics, byParent); err != nil {
		respondError(c, h.logger, "ListMatches", err)
		return
	}
	list, err := h.matches.ListMatches(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, "ListMatches", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *MatchHandler) GetMatch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, err := h.matches.GetMatch(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "GetMatch", err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req service.MatchRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.matches.CreateMatch(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "CreateMatch", err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *MatchHandler) UpdateMatch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.MatchRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.matches.UpdateMatch(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, "UpdateMatch", err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// SetMatchStatus PUT /api/matches/:id/status
func (h *MatchHandler) SetMatchStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.matches.SetMatchStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, h.logger, "SetMatchStatus", err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.matches.DeleteMatch(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "DeleteMatch", err)
		return
	}
	c.Status(http.StatusNoContent)
}
