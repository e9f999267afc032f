package service

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/newslens/newslens-backend/internal/news/biz"
	"github.com/newslens/newslens-backend/internal/news/types"
	apperrors "github.com/newslens/newslens-backend/internal/pkg/errors"
	"github.com/newslens/newslens-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

// NewsService exposes the news endpoints. Payload shapes here are part
// of the public contract consumed by the web client, so handlers emit
// them directly rather than through the shared response envelope.
type NewsService struct {
	uc     *biz.NewsUseCase
	logger *logger.Logger
}

// NewNewsService creates the news HTTP service
func NewNewsService(uc *biz.NewsUseCase, log *logger.Logger) *NewsService {
	if log == nil {
		log = logger.L()
	}
	return &NewsService{uc: uc, logger: log.Named("news-service")}
}

// RegisterRoutes mounts the news endpoints on the API group
func (s *NewsService) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/news/search", s.Search)
	api.POST("/news/analyze", s.Analyze)
}

// Search handles GET /api/news/search?query=&limit=
func (s *NewsService) Search(c *gin.Context) {
	query := c.Query("query")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation_error",
				"message": "limit must be an integer",
			})
			return
		}
		limit = parsed
	}

	feed, err := s.uc.Search(c.Request.Context(), query, limit)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

// Analyze handles POST /api/news/analyze
func (s *NewsService) Analyze(c *gin.Context) {
	var req types.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": err.Error(),
		})
		return
	}

	processed, err := s.uc.Analyze(c.Request.Context(), &req)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, processed)
}

func (s *NewsService) handleError(c *gin.Context, err error) {
	code := apperrors.ExtractCode(err)
	status := apperrors.GetHTTPStatus(code)

	kind := "internal_error"
	if status < http.StatusInternalServerError {
		kind = "validation_error"
	} else {
		s.logger.Error("news request failed", zap.Error(err))
	}

	c.JSON(status, gin.H{
		"error":   kind,
		"message": apperrors.FormatError(code, apperrors.GetDetails(err)),
	})
}
