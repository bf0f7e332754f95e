package api

import (
	"net/http"

	"OlympicsHub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ReferenceHandler 国家与大项的维护接口，以及国家页
type ReferenceHandler struct {
	reference *service.ReferenceService
	profile   *service.ProfileService
	olympics  *service.OlympicsService
	logger    *logrus.Logger
}

// NewReferenceHandler 创建 ReferenceHandler
func NewReferenceHandler(svc *service.Services, logger *logrus.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		reference: svc.Reference,
		profile:   svc.Profile,
		olympics:  svc.Olympics,
		logger:    logger,
	}
}

// ListCountries GET /api/countries
func (h *ReferenceHandler) ListCountries(c *gin.Context) {
	list, err := h.reference.ListCountries(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "ListCountries", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetCountry GET /api/countries/:id
func (h *ReferenceHandler) GetCountry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	country, err := h.reference.GetCountry(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "GetCountry", err)
		return
	}
	c.JSON(http.StatusOK, country)
}

// CreateCountry POST /api/countries
func (h *ReferenceHandler) CreateCountry(c *gin.Context) {
	var req service.CountryRequest
	if !bindJSON(c, &req) {
		return
	}
	country, err := h.reference.CreateCountry(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "CreateCountry", err)
		return
	}
	c.JSON(http.StatusCreated, country)
}

// UpdateCountry PUT /api/countries/:id
func (h *ReferenceHandler) UpdateCountry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.CountryRequest
	if !bindJSON(c, &req) {
		return
	}
	country, err := h.reference.UpdateCountry(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, "UpdateCountry", err)
		return
	}
	c.JSON(http.StatusOK, country)
}

// DeleteCountry DELETE /api/countries/:id；仍被奖牌/对阵/报名引用时 409
func (h *ReferenceHandler) DeleteCountry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.reference.DeleteCountry(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "DeleteCountry", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CountryProfile GET /api/countries/code/:code/profile?olympics=
func (h *ReferenceHandler) CountryProfile(c *gin.Context) {
	scope, err := resolveScope(c, h.olympics, false)
	if err != nil {
		respondError(c, h.logger, "CountryProfile", err)
		return
	}
	profile, err := h.profile.CountryProfile(c.Request.Context(), c.Param("code"), scope)
	if err != nil {
		respondError(c, h.logger, "CountryProfile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListSports GET /api/sports
func (h *ReferenceHandler) ListSports(c *gin.Context) {
	list, err := h.reference.ListSports(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "ListSports", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetSport GET /api/sports/:id
func (h *ReferenceHandler) GetSport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sport, err := h.reference.GetSport(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "GetSport", err)
		return
	}
	c.JSON(http.StatusOK, sport)
}

// CreateSport POST /api/sports
func (h *ReferenceHandler) CreateSport(c *gin.Context) {
	var req service.SportRequest
	if !bindJSON(c, &req) {
		return
	}
	sport, err := h.reference.CreateSport(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "CreateSport", err)
		return
	}
	c.JSON(http.StatusCreated, sport)
}

// UpdateSport PUT /api/sports/:id
func (h *ReferenceHandler) UpdateSport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.SportRequest
	if !bindJSON(c, &req) {
		return
	}
	sport, err := h.reference.UpdateSport(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, "UpdateSport", err)
		return
	}
	c.JSON(http.StatusOK, sport)
}

// DeleteSport DELETE /api/sports/:id；所属小项的 sport_id 置空
func (h *ReferenceHandler) DeleteSport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.reference.DeleteSport(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "DeleteSport", err)
		return
	}
	c.Status(http.StatusNoContent)
}
