package domain

import (
	"time"

	"gorm.io/datatypes"
)

type TrackingEvent struct {
	ID              uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	Timestamp       time.Time         `gorm:"column:timestamp;not null" json:"timestamp"`
	EventType       string            `gorm:"column:event_type;not null" json:"event_type"`
	SessionID       string            `gorm:"column:session_id" json:"session_id"`
	Page            string            `gorm:"column:page" json:"page"`
	CustomerID      uint              `gorm:"column:customer_id;index" json:"customer_id"`
	PolicyID        uint64            `gorm:"column:policy_id" json:"policy_id"`
	InteractionType string            `gorm:"column:interaction_type" json:"interaction_type"`
	Duration        float64           `gorm:"column:duration;type:numeric" json:"duration"`
	Query           string            `gorm:"column:query" json:"query"`
	Referrer        string            `gorm:"column:referrer" json:"referrer"`
	AdditionalData  datatypes.JSONMap `gorm:"column:additional_data;type:jsonb" json:"additional_data"`
}

func (TrackingEvent) TableName() string {
	return "tracking_events"
}
