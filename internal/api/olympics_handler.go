package api

import (
	"net/http"

	"OlympicsHub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// OlympicsHandler 届次维护与当前届切换
type OlympicsHandler struct {
	olympics *service.OlympicsService
	logger   *logrus.Logger
}

func NewOlympicsHandler(svc *service.Services, logger *logrus.Logger) *OlympicsHandler {
	return &OlympicsHandler{olympics: svc.Olympics, logger: logger}
}

// ListOlympics GET /api/olympics
func (h *OlympicsHandler) ListOlympics(c *gin.Context) {
	list, err := h.olympics.ListOlympics(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "ListOlympics", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetActive GET /api/olympics/active；没有当前届时返回 null
func (h *OlympicsHandler) GetActive(c *gin.Context) {
	active, err := h.olympics.GetActive(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "GetActiveOlympics", err)
		return
	}
	c.JSON(http.StatusOK, active)
}

func (h *OlympicsHandler) GetOlympics(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	o, err := h.olympics.GetOlympics(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "GetOlympics", err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OlympicsHandler) CreateOlympics(c *gin.Context) {
	var req service.OlympicsRequest
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.olympics.CreateOlympics(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "CreateOlympics", err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *OlympicsHandler) UpdateOlympics(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.OlympicsRequest
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.olympics.UpdateOlympics(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, "UpdateOlympics", err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OlympicsHandler) DeleteOlympics(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.olympics.DeleteOlympics(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "DeleteOlympics", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Activate POST /api/olympics/:id/activate
func (h *OlympicsHandler) Activate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	o, err := h.olympics.Activate(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "ActivateOlympics", err)
		return
	}
	c.JSON(http.StatusOK, o)
}
