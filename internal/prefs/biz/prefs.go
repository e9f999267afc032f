package biz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/newslens/newslens-backend/internal/prefs/models"
)

// ErrPreferenceNotFound is returned when a client has no stored preferences
var ErrPreferenceNotFound = errors.New("preference not found")

// Accepted analytics event types
var validEventTypes = map[string]bool{
	"search":        true,
	"article_view":  true,
	"article_click": true,
	"gauge_hover":   true,
}

const maxDefaultLimit = 20

// PrefsRepo is the persistence interface for preferences and analytics
type PrefsRepo interface {
	GetPreference(ctx context.Context, clientID string) (*models.Preference, error)
	UpsertPreference(ctx context.Context, pref *models.Preference) error
	CreateEvent(ctx context.Context, event *models.AnalyticsEvent) error
	EventCounts(ctx context.Context) (map[string]int64, error)
	AverageBiasScore(ctx context.Context) (*float64, error)
}

// UpdatePreferenceRequest carries a preference write
type UpdatePreferenceRequest struct {
	PreferredSources []string `json:"preferred_sources"`
	HiddenSources    []string `json:"hidden_sources"`
	DefaultLimit     int      `json:"default_limit"`
}

// RecordEventRequest carries one analytics event
type RecordEventRequest struct {
	ClientID   string `json:"client_id" binding:"required"`
	EventType  string `json:"event_type" binding:"required"`
	ArticleURL string `json:"article_url"`
	BiasScore  *int   `json:"bias_score"`
}

// AnalyticsSummary aggregates recorded events
type AnalyticsSummary struct {
	EventCounts      map[string]int64 `json:"event_counts"`
	AverageBiasScore *float64         `json:"average_bias_score"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

// PrefsUseCase contains preference and analytics business logic
type PrefsUseCase struct {
	repo PrefsRepo
}

// NewPrefsUseCase creates the use case
func NewPrefsUseCase(repo PrefsRepo) *PrefsUseCase {
	return &PrefsUseCase{repo: repo}
}

// GetPreference returns a client's preferences, or defaults when none
// are stored yet
func (uc *PrefsUseCase) GetPreference(ctx context.Context, clientID string) (*models.Preference, error) {
	if clientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}

	pref, err := uc.repo.GetPreference(ctx, clientID)
	if errors.Is(err, ErrPreferenceNotFound) {
		return &models.Preference{
			ClientID:     clientID,
			DefaultLimit: 10,
		}, nil
	}
	return pref, err
}

// UpdatePreference validates and stores a client's preferences
func (uc *PrefsUseCase) UpdatePreference(ctx context.Context, clientID string, req *UpdatePreferenceRequest) (*models.Preference, error) {
	if clientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}
	if req.DefaultLimit < 0 || req.DefaultLimit > maxDefaultLimit {
		return nil, fmt.Errorf("default_limit must be between 0 and %d", maxDefaultLimit)
	}

	pref := &models.Preference{
		ClientID:         clientID,
		PreferredSources: req.PreferredSources,
		HiddenSources:    req.HiddenSources,
		DefaultLimit:     req.DefaultLimit,
		UpdatedAt:        time.Now(),
	}
	if pref.DefaultLimit == 0 {
		pref.DefaultLimit = 10
	}

	if err := uc.repo.UpsertPreference(ctx, pref); err != nil {
		return nil, fmt.Errorf("failed to store preference: %w", err)
	}
	return pref, nil
}

// RecordEvent validates and stores one analytics event
func (uc *PrefsUseCase) RecordEvent(ctx context.Context, req *RecordEventRequest) (*models.AnalyticsEvent, error) {
	if !validEventTypes[req.EventType] {
		return nil, fmt.Errorf("unknown event type: %s", req.EventType)
	}
	if req.BiasScore != nil && (*req.BiasScore < 0 || *req.BiasScore > 100) {
		return nil, fmt.Errorf("bias_score must be between 0 and 100")
	}

	event := &models.AnalyticsEvent{
		ID:         uuid.New().String(),
		ClientID:   req.ClientID,
		EventType:  req.EventType,
		ArticleURL: req.ArticleURL,
		BiasScore:  req.BiasScore,
		CreatedAt:  time.Now(),
	}

	if err := uc.repo.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	return event, nil
}

// Summary aggregates all recorded events
func (uc *PrefsUseCase) Summary(ctx context.Context) (*AnalyticsSummary, error) {
	counts, err := uc.repo.EventCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate events: %w", err)
	}

	avg, err := uc.repo.AverageBiasScore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to average bias scores: %w", err)
	}

	return &AnalyticsSummary{
		EventCounts:      counts,
		AverageBiasScore: avg,
		GeneratedAt:      time.Now(),
	}, nil
}
