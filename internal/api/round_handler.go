package api

import (
	"net/http"
	"strings"

	"OlympicsHub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RoundHandler 轮次与轮次成绩
type RoundHandler struct {
	rounds   *service.RoundService
	schedule *service.ScheduleService
	olympics *service.OlympicsService
	logger   *logrus.Logger
}

func NewRoundHandler(svc *service.Services, logger *logrus.Logger) *RoundHandler {
	return &RoundHandler{
		rounds:   svc.Rounds,
		schedule: svc.Schedule,
		olympics: svc.Olympics,
		logger:   logger,
	}
}

// ListRounds GET /api/rounds?medal_event=&status=&olympics=
func (h *RoundHandler) ListRounds(c *gin.Context) {
	eventID, err := queryID(c, "medal_event")
	if err != nil {
		respondError(c, h.logger, "ListRounds", err)
		return
	}
	scope, err := resolveScope(c, h.olympics, eventID != nil)
	if err != nil {
		respondError(c, h.logger, "ListRounds", err)
		return
	}
	list, err := h.rounds.ListRounds(c.Request.Context(), service.RoundFilter{
		Scope:        scope,
		MedalEventID: eventID,
		Status:       strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, h.logger, "ListRounds", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// LiveRounds GET /api/rounds/live?olympics=，客户端按 poll_interval_seconds 轮询
func (h *RoundHandler) LiveRounds(c *gin.Context) {
	scope, err := resolveScope(c, h.olympics, false)
	if err != nil {
		respondError(c, h.logger, "LiveRounds", err)
		return
	}
	live, err := h.schedule.LiveRounds(c.Request.Context(), scope)
	if err != nil {
		respondError(c, h.logger, "LiveRounds", err)
		return
	}
	c.JSON(http.StatusOK, live)
}

func (h *RoundHandler) GetRound(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	round, err := h.rounds.GetRound(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "GetRound", err)
		return
	}
	c.JSON(http.StatusOK, round)
}

func (h *RoundHandler) CreateRound(c *gin.Context) {
	var req service.RoundRequest
	if !bindJSON(c, &req) {
		return
	}
	round, err := h.rounds.CreateRound(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "CreateRound", err)
		return
	}
	c.JSON(http.StatusCreated, round)
}

func (h *RoundHandler) UpdateRound(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.RoundRequest
	if !bindJSON(c, &req) {
		return
	}
	round, err := h.rounds.UpdateRound(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, "UpdateRound", err)
		return
	}
	c.JSON(http.StatusOK, round)
}

// SetRoundStatus PUT /api/rounds/:id/status {"status": "live"}
func (h *RoundHandler) SetRoundStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	round, err := h.rounds.SetRoundStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, h.logger, "SetRoundStatus", err)
		return
	}
	c.JSON(http.StatusOK, round)
}

func (h *RoundHandler) DeleteRound(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.rounds.DeleteRound(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "DeleteRound", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListResults GET /api/round-results?round=
func (h *RoundHandler) ListResults(c *gin.Context) {
	roundID, err := queryID(c, "round")
	if err != nil {
		respondError(c, h.logger, "ListRoundResults", err)
		return
	}
	if roundID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "round: is required"})
		return
	}
	list, err := h.rounds.ListResults(c.Request.Context(), *roundID)
	if err != nil {
		respondError(c, h.logger, "ListRoundResults", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *RoundHandler) CreateResult(c *gin.Context) {
	var req service.RoundResultRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.rounds.CreateResult(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "CreateRoundResult", err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *RoundHandler) UpdateResult(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.RoundResultRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.rounds.UpdateResult(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, "UpdateRoundResult", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *RoundHandler) DeleteResult(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.rounds.DeleteResult(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "DeleteRoundResult", err)
		return
	}
	c.Status(http.StatusNoContent)
}
