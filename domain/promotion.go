package domain

import (
	"time"
)

// CREATE TABLE public.promotions (
//     id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     policy_id  BIGINT NOT NULL,
//     name       TEXT NOT NULL,
//     tag        TEXT,
//     priority   INT NOT NULL DEFAULT 1,
//     start_date TIMESTAMPTZ NOT NULL,
//     end_date   TIMESTAMPTZ NOT NULL,
//     active     BOOLEAN NOT NULL DEFAULT TRUE,
//     created_at TIMESTAMPTZ DEFAULT NOW(),
//     updated_at TIMESTAMPTZ DEFAULT NOW()
// );

type Promotion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PolicyID  uint64    `gorm:"column:policy_id;not null;index" json:"policy_id"`
	Name      string    `gorm:"column:name;type:text;not null" json:"name"`
	Tag       string    `gorm:"column:tag;type:text" json:"tag"`
	Priority  int       `gorm:"column:priority;not null;default:1" json:"priority"`
	StartDate time.Time `gorm:"column:start_date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date;not null" json:"end_date"`
	Active    bool      `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Promotion) TableName() string {
	return "promotions"
}

// CurrentlyPromoted reports whether the record applies at the given instant.
func (p Promotion) CurrentlyPromoted(asOf time.Time) bool {
	if !p.Active {
		return false
	}
	return !asOf.Before(p.StartDate) && !asOf.After(p.EndDate)
}

// ActivePromotion is the slice of a Promotion the ranking engine consumes.
type ActivePromotion struct {
	Priority int    `json:"priority"`
	Tag      string `json:"tag"`
}
