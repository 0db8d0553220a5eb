package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/flowdeck/flowdeck-server/internal/database"
	"github.com/flowdeck/flowdeck-server/internal/models"
)

type RuleRepository struct {
	db *database.DB
}

func NewRuleRepository(db *database.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

func (r *RuleRepository) Create(ctx context.Context, rule *models.RecurringRule) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO recurring_rules (user_id, title, start_time, duration_minutes, days, category, color, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING rule_id, created_at`,
		rule.UserID, rule.Title, rule.StartTime, rule.DurationMinutes,
		rule.Days[:], rule.Category, rule.Color, rule.Active,
	).Scan(&rule.RuleID, &rule.CreatedAt)
}

func (r *RuleRepository) GetByID(ctx context.Context, ruleID, userID uuid.UUID) (*models.RecurringRule, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT rule_id, user_id, title, start_time, duration_minutes, days, category, color, active, created_at
		 FROM recurring_rules WHERE rule_id = $1 AND user_id = $2`,
		ruleID, userID,
	)
	return scanRule(row)
}

func (r *RuleRepository) GetActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*models.RecurringRule, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT rule_id, user_id, title, start_time, duration_minutes, days, category, color, active, created_at
		 FROM recurring_rules WHERE user_id = $1 AND active
		 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRules(rows)
}

// GetAllActive returns every active rule across all users, for the nightly
// expansion job.
func (r *RuleRepository) GetAllActive(ctx context.Context) ([]*models.RecurringRule, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT rule_id, user_id, title, start_time, duration_minutes, days, category, color, active, created_at
		 FROM recurring_rules WHERE active
		 ORDER BY user_id, created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRules(rows)
}

func (r *RuleRepository) SetActive(ctx context.Context, ruleID, userID uuid.UUID, active bool) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE recurring_rules SET active = $1 WHERE rule_id = $2 AND user_id = $3`,
		active, ruleID, userID,
	)
	return err
}

// Delete removes the rule. Events it already generated keep their rows; the
// foreign key nulls their rule_id.
func (r *RuleRepository) Delete(ctx context.Context, ruleID, userID uuid.UUID) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM recurring_rules WHERE rule_id = $1 AND user_id = $2`,
		ruleID, userID,
	)
	return err
}

func scanRule(row pgx.Row) (*models.RecurringRule, error) {
	rule := &models.RecurringRule{}
	var days []bool
	err := row.Scan(&rule.RuleID, &rule.UserID, &rule.Title, &rule.StartTime,
		&rule.DurationMinutes, &days, &rule.Category, &rule.Color,
		&rule.Active, &rule.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(days) != 7 {
		return nil, fmt.Errorf("rule %s: days array has %d entries, want 7", rule.RuleID, len(days))
	}
	copy(rule.Days[:], days)
	return rule, nil
}

func scanRules(rows pgx.Rows) ([]*models.RecurringRule, error) {
	var rules []*models.RecurringRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}
