package domain

import (
	"time"
)

// CREATE TABLE public.customers (
//     customer_id            BIGINT PRIMARY KEY,
//     name                   TEXT NOT NULL,
//     email                  TEXT,
//     age                    INT,
//     policy_ownership_count INT,
//     credit_score           INT,
//     gender                 TEXT,
//     income_bracket         TEXT,
//     employment_status      TEXT,
//     marital_status         TEXT,
//     location_city          TEXT,
//     preferred_policy_type  TEXT,
//     created_at             TIMESTAMPTZ DEFAULT NOW()
// );

type Customer struct {
	CustomerID           uint      `gorm:"primaryKey;column:customer_id" json:"customer_id"`
	Name                 string    `gorm:"column:name;type:text;not null" json:"name"`
	Email                string    `gorm:"column:email;type:text" json:"email"`
	Age                  int       `gorm:"column:age" json:"age"`
	PolicyOwnershipCount int       `gorm:"column:policy_ownership_count" json:"policy_ownership_count"`
	CreditScore          int       `gorm:"column:credit_score" json:"credit_score"`
	Gender               string    `gorm:"column:gender;type:text" json:"gender"`
	IncomeBracket        string    `gorm:"column:income_bracket;type:text" json:"income_bracket"`
	EmploymentStatus     string    `gorm:"column:employment_status;type:text" json:"employment_status"`
	MaritalStatus        string    `gorm:"column:marital_status;type:text" json:"marital_status"`
	LocationCity         string    `gorm:"column:location_city;type:text" json:"location_city"`
	PreferredPolicyType  string    `gorm:"column:preferred_policy_type;type:text" json:"preferred_policy_type"`
	CreatedAt            time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Customer) TableName() string {
	return "customers"
}
