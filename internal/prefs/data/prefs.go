package data

import (
	"context"
	"errors"

	"github.com/newslens/newslens-backend/internal/prefs/biz"
	"github.com/newslens/newslens-backend/internal/prefs/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PrefsRepo implements biz.PrefsRepo over gorm
type PrefsRepo struct {
	db *gorm.DB
}

// NewPrefsRepo creates the repository
func NewPrefsRepo(db *gorm.DB) *PrefsRepo {
	return &PrefsRepo{db: db}
}

// GetPreference loads a client's preferences
func (r *PrefsRepo) GetPreference(ctx context.Context, clientID string) (*models.Preference, error) {
	var pref models.Preference
	err := r.db.WithContext(ctx).First(&pref, "client_id = ?", clientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, biz.ErrPreferenceNotFound
		}
		return nil, err
	}
	return &pref, nil
}

// UpsertPreference creates or replaces a client's preferences
func (r *PrefsRepo) UpsertPreference(ctx context.Context, pref *models.Preference) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "client_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"preferred_sources", "hidden_sources", "default_limit", "updated_at",
		}),
	}).Create(pref).Error
}

// CreateEvent records an analytics event
func (r *PrefsRepo) CreateEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// EventCounts aggregates event totals per type
func (r *PrefsRepo) EventCounts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		EventType string
		Count     int64
	}

	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Select("event_type, count(*) as count").
		Group("event_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.EventType] = row.Count
	}
	return counts, nil
}

// AverageBiasScore returns the mean bias score across events that carry
// one, or nil when none do
func (r *PrefsRepo) AverageBiasScore(ctx context.Context) (*float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Where("bias_score IS NOT NULL").
		Select("avg(bias_score)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	return avg, nil
}
