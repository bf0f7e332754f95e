package api

import (
	"net/http"
	"strings"

	"OlympicsHub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MedalEventHandler 小项目录与报名接口
type MedalEventHandler struct {
	events       *service.MedalEventService
	participants *service.ParticipantService
	olympics     *service.OlympicsService
	logger       *logrus.Logger
}

func NewMedalEventHandler(svc *service.Services, logger *logrus.Logger) *MedalEventHandler {
	return &MedalEventHandler{
		events:       svc.Events,
		participants: svc.Participants,
		olympics:     svc.Olympics,
		logger:       logger,
	}
}

// ListMedalEvents GET /api/medal-events?olympics=&sport=&gender=&q=
func (h *MedalEventHandler) ListMedalEvents(c *gin.Context) {
	scope, err := resolveScope(c, h.olympics, false)
	if err != nil {
		respondError(c, h.logger, "ListMedalEvents", err)
		return
	}
	sportID, err := queryID(c, "sport")
	if err != nil {
		respondError(c, h.logger, "ListMedalEvents", err)
		return
	}
	list, err := h.events.ListMedalEvents(c.Request.Context(), service.MedalEventFilter{
		Scope:   scope,
		SportID: sportID,
		Gender:  strings.TrimSpace(c.Query("gender")),
		Query:   strings.TrimSpace(c.Query("q")),
	})
	if err != nil {
		respondError(c, h.logger, "ListMedalEvents", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetMedalEvent GET /api/medal-events/:id，含分阶段轮次、奖牌与报名
func (h *MedalEventHandler) GetMedalEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	detail, err := h.events.GetMedalEventDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "GetMedalEvent", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *MedalEventHandler) CreateMedalEvent(c *gin.Context) {
	var req service.MedalEventRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := h.events.CreateMedalEvent(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "CreateMedalEvent", err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *MedalEventHandler) UpdateMedalEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.MedalEventRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := h.events.UpdateMedalEvent(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, "UpdateMedalEvent", err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// DeleteMedalEvent DELETE /api/medal-events/:id，级联删除
func (h *MedalEventHandler) DeleteMedalEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.events.DeleteMedalEvent(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "DeleteMedalEvent", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListEventParticipants GET /api/medal-events/:id/participants
func (h *MedalEventHandler) ListEventParticipants(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	list, err := h.participants.ListForEvent(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "ListEventParticipants", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// SetEventParticipants POST /api/medal-events/:id/participants，整体替换报名国家
func (h *MedalEventHandler) SetEventParticipants(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.ParticipantSetRequest
	if !bindJSON(c, &req) {
		return
	}
	list, err := h.participants.SetParticipants(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, "SetEventParticipants", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListParticipants GET /api/event-participants?medal_event=&country=&olympics=
func (h *MedalEventHandler) ListParticipants(c *gin.Context) {
	eventID, err := queryID(c, "medal_event")
	if err != nil {
		respondError(c, h.logger, "ListParticipants", err)
		return
	}
	countryID, err := queryID(c, "country")
	if err != nil {
		respondError(c, h.logger, "ListParticipants", err)
		return
	}
	scope, err := resolveScope(c, h.olympics, eventID != nil)
	if err != nil {
		respondError(c, h.logger, "ListParticipants", err)
		return
	}
	list, err := h.participants.ListParticipants(c.Request.Context(), service.ParticipantFilter{
		Scope:        scope,
		MedalEventID: eventID,
		CountryID:    countryID,
	})
	if err != nil {
		respondError(c, h.logger, "ListParticipants", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// AddParticipant POST /api/event-participants；已报名时同样返回 201
func (h *MedalEventHandler) AddParticipant(c *gin.Context) {
	var req service.ParticipantRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.participants.AddParticipant(c.Request.Context(), req); err != nil {
		respondError(c, h.logger, "AddParticipant", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"medal_event_id": req.MedalEventID, "country_id": req.CountryID})
}

func (h *MedalEventHandler) RemoveParticipant(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.participants.RemoveParticipant(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "RemoveParticipant", err)
		return
	}
	c.Status(http.StatusNoContent)
}
