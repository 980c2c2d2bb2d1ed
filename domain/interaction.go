package domain

import (
	"time"
)

// Interaction is one historical row of customer behavior against a policy.
// Purchases recorded at checkout land here too.
type Interaction struct {
	InteractionID   uint64    `gorm:"primaryKey;autoIncrement;column:interaction_id" json:"interaction_id"`
	CustomerID      uint      `gorm:"column:customer_id;not null;index" json:"customer_id"`
	PolicyID        uint64    `gorm:"column:policy_id" json:"policy_id"`
	Clicked         int       `gorm:"column:clicked" json:"clicked"`
	ViewedDuration  float64   `gorm:"column:viewed_duration;type:numeric" json:"viewed_duration"`
	ComparisonCount int       `gorm:"column:comparison_count" json:"comparison_count"`
	AbandonedCart   int       `gorm:"column:abandoned_cart" json:"abandoned_cart"`
	Purchased       bool      `gorm:"column:purchased;default:false" json:"purchased"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Interaction) TableName() string {
	return "interactions"
}

// InteractionContext is the behavioral signal fed into scoring. The zero
// value is the defined fallback for customers without any history.
type InteractionContext struct {
	Clicked         float64 `json:"clicked"`
	ViewedDuration  float64 `json:"viewed_duration"`
	ComparisonCount float64 `json:"comparison_count"`
	AbandonedCart   float64 `json:"abandoned_cart"`
}

func (i Interaction) Context() InteractionContext {
	return InteractionContext{
		Clicked:         float64(i.Clicked),
		ViewedDuration:  i.ViewedDuration,
		ComparisonCount: float64(i.ComparisonCount),
		AbandonedCart:   float64(i.AbandonedCart),
	}
}
