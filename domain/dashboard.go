package domain

// AnalyticsReport is the aggregate payload behind the admin dashboard.
type AnalyticsReport struct {
	Metrics          DashboardMetrics `json:"metrics"`
	PolicyTypeCounts map[string]int   `json:"policy_type_counts"`
	AgeSegments      map[string]int   `json:"age_segments"`
	SalesTrend       []DailySales     `json:"sales_trend"`
	TopPolicies      []Policy         `json:"top_policies"`
	RecentActivities []RecentActivity `json:"recent_activities"`
}

type DashboardMetrics struct {
	TotalPolicies  int     `json:"total_policies"`
	TotalCustomers int     `json:"total_customers"`
	ConversionRate float64 `json:"conversion_rate"`
	AvgPremium     float64 `json:"avg_premium"`
}

type DailySales struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type RecentActivity struct {
	CustomerName string `json:"customer_name"`
	PolicyName   string `json:"policy_name"`
	Action       string `json:"action"`
	Timestamp    string `json:"timestamp"`
}
