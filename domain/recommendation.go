package domain

// PolicyRecommendation is one ranked entry returned to the caller.
type PolicyRecommendation struct {
	Policy            Policy  `json:"policy"`
	Score             float64 `json:"score"`
	IsPromoted        bool    `json:"is_promoted"`
	PromotionTag      string  `json:"promotion_tag,omitempty"`
	PromotionPriority int     `json:"promotion_priority,omitempty"`
}
