package domain

import (
	"time"
)

// CREATE TABLE public.policies (
//     policy_id             BIGINT PRIMARY KEY,
//     policy_name           TEXT NOT NULL,
//     policy_type           TEXT,
//     description           TEXT,
//     keywords              TEXT,
//     sum_assured           TEXT,
//     premium_amount        TEXT,
//     policy_duration_years NUMERIC,
//     risk_category         TEXT,
//     customer_target_group TEXT,
//     created_at            TIMESTAMPTZ DEFAULT NOW()
// );

// Policy is one catalog entry. SumAssured and PremiumAmount are kept as the
// raw upstream strings ("12,500.00", "INR 50,000") and are only normalized
// inside the feature pipeline.
type Policy struct {
	PolicyID            uint64    `gorm:"primaryKey;column:policy_id" json:"policy_id"`
	PolicyName          string    `gorm:"column:policy_name;type:text;not null" json:"policy_name"`
	PolicyType          string    `gorm:"column:policy_type;type:text" json:"policy_type"`
	Description         string    `gorm:"column:description;type:text" json:"description"`
	Keywords            string    `gorm:"column:keywords;type:text" json:"keywords"`
	SumAssured          string    `gorm:"column:sum_assured;type:text" json:"sum_assured"`
	PremiumAmount       string    `gorm:"column:premium_amount;type:text" json:"premium_amount"`
	PolicyDurationYears float64   `gorm:"column:policy_duration_years;type:numeric" json:"policy_duration_years"`
	RiskCategory        string    `gorm:"column:risk_category;type:text" json:"risk_category"`
	CustomerTargetGroup string    `gorm:"column:customer_target_group;type:text" json:"customer_target_group"`
	CreatedAt           time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Policy) TableName() string {
	return "policies"
}
