package policy

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"policyAdvisor/domain"
	"policyAdvisor/pkg/logger"
)

// ImportCSV ingests a catalog export. The header row maps columns by name so
// exports with legacy headings like "sum_assured (INR)" still load; rows
// without a parseable policy_id are skipped, not fatal. Monetary columns are
// kept raw — cleansing happens in the feature pipeline.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[normalizeHeader(name)] = i
	}
	if _, ok := col["policy_id"]; !ok {
		return 0, fmt.Errorf("csv is missing a policy_id column")
	}

	var (
		policies []domain.Policy
		skipped  int
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read csv row: %w", err)
		}

		field := func(name string) string {
			if idx, ok := col[name]; ok && idx < len(record) {
				return strings.TrimSpace(record[idx])
			}
			return ""
		}

		id, err := strconv.ParseUint(field("policy_id"), 10, 64)
		if err != nil || id == 0 {
			skipped++
			continue
		}

		duration, _ := strconv.ParseFloat(field("policy_duration_years"), 64)

		policies = append(policies, domain.Policy{
			PolicyID:            id,
			PolicyName:          field("policy_name"),
			PolicyType:          field("policy_type"),
			Description:         field("description"),
			Keywords:            field("keywords"),
			SumAssured:          field("sum_assured"),
			PremiumAmount:       field("premium_amount"),
			PolicyDurationYears: duration,
			RiskCategory:        field("risk_category"),
			CustomerTargetGroup: field("customer_target_group"),
		})
	}

	if err := s.policyRepo.UpsertBatch(ctx, policies); err != nil {
		return 0, err
	}

	if skipped > 0 {
		logger.Warn("policy import skipped rows", "skipped", skipped, "imported", len(policies))
	}

	return len(policies), nil
}

// normalizeHeader folds "Sum_Assured (INR)" style headings onto the plain
// column name.
func normalizeHeader(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if i := strings.Index(s, "("); i > 0 {
		s = strings.TrimSpace(s[:i])
	}
	return strings.ReplaceAll(s, " ", "_")
}
