package goal

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/finance-tracker/goal-agent/internal/application/adapter"
	"github.com/finance-tracker/goal-agent/internal/domain/entity"
	domainerror "github.com/finance-tracker/goal-agent/internal/domain/error"
	"github.com/finance-tracker/goal-agent/internal/domain/valueobject"
)

// request is an agent payload after tolerant ingestion.
type request struct {
	userID    string
	goals     []*entity.SavingsGoal
	financial entity.FinancialContext
	guidance  entity.EmotionalGuidance
	now       time.Time
}

func loadRequest(payload map[string]any, clock adapter.Clock, logger *slog.Logger) (*request, error) {
	userID := strings.TrimSpace(valueobject.CoerceString(payload["user_id"]))
	if userID == "" {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeMissingUserID,
			"user_id required",
			domainerror.ErrMissingUserID,
		)
	}

	return &request{
		userID:    userID,
		goals:     LoadGoals(payload, logger.With("user_id", userID)),
		financial: LoadFinancialContext(payload),
		guidance:  LoadEmotionalGuidance(payload),
		now:       resolveNow(payload, clock),
	}, nil
}

// LoadGoals reads the goal list from goals, existing_goals or analysis_context.goals,
// whichever is the first non-empty list. Entries that are not objects or carry no
// integer id are skipped with a warning.
func LoadGoals(payload map[string]any, logger *slog.Logger) []*entity.SavingsGoal {
	raw := firstList(payload["goals"], payload["existing_goals"], lookup(payload, "analysis_context", "goals"))

	goals := make([]*entity.SavingsGoal, 0, len(raw))
	for i, item := range raw {
		record, ok := item.(map[string]any)
		if !ok {
			logger.Warn("Skipping goal that is not an object", "index", i)
			continue
		}

		g, err := goalFromRecord(record)
		if err != nil {
			logger.Warn("Skipping malformed goal", "index", i, "error", err)
			continue
		}
		goals = append(goals, g)
	}

	return goals
}

func goalFromRecord(record map[string]any) (*entity.SavingsGoal, error) {
	rawID, ok := record["id"]
	if !ok {
		rawID = record["goal_id"]
	}
	id, err := valueobject.CoerceGoalID(rawID)
	if err != nil {
		return nil, err
	}

	dueRaw, _ := record["due_date"].(string)

	return &entity.SavingsGoal{
		ID:           id,
		Name:         valueobject.CoerceString(record["name"]),
		SavedAmount:  valueobject.CoerceAmount(record["saved_amount"]),
		TargetAmount: valueobject.CoerceAmount(record["target_amount"]),
		CreatedAt:    valueobject.ParseTimestamp(record["created_at"]),
		DueDate:      valueobject.ParseTimestamp(record["due_date"]),
		DueDateRaw:   dueRaw,
		Priority:     valueobject.CoerceString(record["priority"]),
	}, nil
}

// LoadFinancialContext flattens the flat and nested financial_context shapes.
func LoadFinancialContext(payload map[string]any) entity.FinancialContext {
	raw, ok := payload["financial_context"].(map[string]any)
	if !ok {
		return entity.FinancialContext{}
	}

	return entity.FinancialContext{
		MonthlySurplus: firstNumber(
			lookup(raw, "surplus", "monthly"),
			raw["monthly_surplus"],
			raw["surplus_monthly"],
			scalar(raw["surplus"]),
		),
		MonthlyIncome: firstAmount(
			lookup(raw, "income", "monthly_average"),
			lookup(raw, "income", "monthly"),
			raw["monthly_income"],
			scalar(raw["income"]),
		),
		FixedExpenses: firstAmount(
			lookup(raw, "expenses", "fixed_monthly"),
			lookup(raw, "expenses", "fixed_expenses"),
			raw["fixed_expenses"],
		),
		VariableExpenses: firstAmount(
			lookup(raw, "expenses", "variable_monthly_avg"),
			lookup(raw, "expenses", "variable_expenses"),
			raw["variable_expenses"],
		),
		Savings: firstAmount(
			lookup(raw, "savings", "current_balance"),
			scalar(raw["savings"]),
		),
	}
}

// LoadEmotionalGuidance reads the preferred tone from semantic_memory.motivation_profile.
func LoadEmotionalGuidance(payload map[string]any) entity.EmotionalGuidance {
	tone, _ := lookup(payload, "semantic_memory", "motivation_profile", "preferred_tone").(string)
	return entity.NewEmotionalGuidance(strings.TrimSpace(tone))
}

// FindGoal returns the goal with the given id, or nil.
func FindGoal(goals []*entity.SavingsGoal, id int64) *entity.SavingsGoal {
	for _, g := range goals {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// resolveNow honours an explicit "now" on the request, otherwise asks the clock.
func resolveNow(payload map[string]any, clock adapter.Clock) time.Time {
	if t := valueobject.ParseTimestamp(payload["now"]); t != nil {
		return *t
	}
	return clock.Now().UTC()
}

// lookup walks nested objects and returns nil as soon as a key is missing.
func lookup(m map[string]any, keys ...string) any {
	var current any = m
	for _, key := range keys {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = obj[key]
	}
	return current
}

// scalar hides nested objects so they are not mistaken for a flat value.
func scalar(v any) any {
	if _, ok := v.(map[string]any); ok {
		return nil
	}
	return v
}

func firstList(candidates ...any) []any {
	for _, c := range candidates {
		if list, ok := c.([]any); ok && len(list) > 0 {
			return list
		}
	}
	return nil
}

// firstNumber returns the first candidate that coerces to a non-zero number.
func firstNumber(candidates ...any) float64 {
	for _, c := range candidates {
		if f := valueobject.CoerceSigned(c); f != 0 {
			return f
		}
	}
	return 0
}

func firstAmount(candidates ...any) float64 {
	return math.Max(0, firstNumber(candidates...))
}
