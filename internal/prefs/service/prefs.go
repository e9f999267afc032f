package service

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/newslens/newslens-backend/internal/pkg/logger"
	"github.com/newslens/newslens-backend/internal/pkg/response"
	"github.com/newslens/newslens-backend/internal/prefs/biz"
)

// PrefsService exposes preference and analytics endpoints. When the
// use case is nil (database disabled) every endpoint answers 503.
type PrefsService struct {
	uc     *biz.PrefsUseCase
	logger *logger.Logger
}

func NewPrefsService(uc *biz.PrefsUseCase, log *logger.Logger) *PrefsService {
	if log == nil {
		log = logger.L()
	}
	return &PrefsService{uc: uc, logger: log.Named("prefs-service")}
}

// RegisterRoutes mounts preference and analytics routes on the API group
func (s *PrefsService) RegisterRoutes(api *gin.RouterGroup) {
	prefs := api.Group("/preferences")
	{
		prefs.GET("/:client_id", s.GetPreference)
		prefs.PUT("/:client_id", s.UpdatePreference)
	}

	analytics := api.Group("/analytics")
	{
		analytics.POST("/events", s.RecordEvent)
		analytics.GET("/summary", s.Summary)
	}
}

func (s *PrefsService) available(c *gin.Context) bool {
	if s.uc == nil {
		response.Error(c, http.StatusServiceUnavailable, "preference storage is not configured")
		return false
	}
	return true
}

// GetPreference handles GET /api/preferences/:client_id
func (s *PrefsService) GetPreference(c *gin.Context) {
	if !s.available(c) {
		return
	}

	pref, err := s.uc.GetPreference(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		s.logger.Error("failed to load preference", zap.Error(err))
		response.InternalError(c, "failed to load preference")
		return
	}
	response.Success(c, pref)
}

// UpdatePreference handles PUT /api/preferences/:client_id
func (s *PrefsService) UpdatePreference(c *gin.Context) {
	if !s.available(c) {
		return
	}

	var req biz.UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	pref, err := s.uc.UpdatePreference(c.Request.Context(), c.Param("client_id"), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, pref)
}

// RecordEvent handles POST /api/analytics/events
func (s *PrefsService) RecordEvent(c *gin.Context) {
	if !s.available(c) {
		return
	}

	var req biz.RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	event, err := s.uc.RecordEvent(c.Request.Context(), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, event)
}

// Summary handles GET /api/analytics/summary
func (s *PrefsService) Summary(c *gin.Context) {
	if !s.available(c) {
		return
	}

	summary, err := s.uc.Summary(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to build analytics summary", zap.Error(err))
		response.InternalError(c, "failed to build analytics summary")
		return
	}
	response.Success(c, summary)
}
