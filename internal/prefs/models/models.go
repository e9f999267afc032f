package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Preference stores a browser pseudo-identity's reading settings
type Preference struct {
	ClientID         string      `gorm:"primaryKey;type:varchar(64)" json:"client_id"`
	PreferredSources StringArray `gorm:"type:json" json:"preferred_sources"`
	HiddenSources    StringArray `gorm:"type:json" json:"hidden_sources"`
	DefaultLimit     int         `gorm:"default:10" json:"default_limit"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// TableName specifies the table name
func (Preference) TableName() string {
	return "preferences"
}

// AnalyticsEvent records one client interaction
type AnalyticsEvent struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ClientID   string    `gorm:"type:varchar(64);index;not null" json:"client_id"`
	EventType  string    `gorm:"type:varchar(32);index;not null" json:"event_type"`
	ArticleURL string    `gorm:"type:text" json:"article_url,omitempty"`
	BiasScore  *int      `json:"bias_score,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name
func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}

// AutoMigrate runs database migrations for the prefs domain
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Preference{},
		&AnalyticsEvent{},
	)
}

// StringArray is a string slice stored as JSON
type StringArray []string

// Scan implements sql.Scanner
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// Value implements driver.Valuer
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}
