package domain

import "time"

// Cart lives in redis, not postgres; items carry the premium already
// normalized so the reminder email does not re-parse catalog strings.
type CartItem struct {
	PolicyID      uint64  `json:"policy_id"`
	PolicyName    string  `json:"policy_name"`
	PremiumAmount float64 `json:"premium_amount"`
}

type Cart struct {
	CustomerID  uint       `json:"customer_id"`
	Items       []CartItem `json:"items"`
	LastUpdated time.Time  `json:"last_updated"`
}
