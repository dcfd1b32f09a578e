// Package cost prices skill activations, skill increases and attribute
// increases, and debits the calculation-point budgets.
package cost

import (
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/errors"
	"github.com/KirkDiggler/charsheet-api/internal/rules"
)

// Budget names used in errors and history records
const (
	BudgetAdventurePoints = "adventurePoints"
	BudgetAttributePoints = "attributePoints"
)

// Calculator prices changes against a cost table
type Calculator struct {
	table *rules.CostTable
}

// New creates a calculator over the rules' cost table
func New(r *rules.Rules) *Calculator {
	return &Calculator{table: r.Costs()}
}

func (c *Calculator) multiplier(method sheet.LearningMethod) (float64, error) {
	if method == "" {
		return 0, errors.InvalidArgument("learning method is required").
			WithMeta("reason", "InvalidLearningMethod")
	}
	m, ok := c.table.Multiplier(method)
	if !ok {
		return 0, errors.InvalidArgumentf("unknown learning method %q", method).
			WithMeta("reason", "InvalidLearningMethod")
	}
	return m, nil
}

// ActivationCost returns the fee for activating a skill with method
func (c *Calculator) ActivationCost(method sheet.LearningMethod) (float64, error) {
	m, err := c.multiplier(method)
	if err != nil {
		return 0, err
	}
	return c.table.ActivationFee * m, nil
}

// IncreaseCost returns the price of raising a skill from current by points.
// Each point is priced by the bracket its starting value falls in, so an
// increase crossing a bracket boundary pays both rates.
func (c *Calculator) IncreaseCost(
	current, points int,
	category sheet.CostCategory,
	method sheet.LearningMethod,
) (float64, error) {
	if points <= 0 {
		return 0, invalidPoints(points)
	}
	if category.Tier() < 0 {
		return 0, errors.Internalf("unknown cost category %q", category)
	}
	m, err := c.multiplier(method)
	if err != nil {
		return 0, err
	}

	var total float64
	for value := current; value < current+points; value++ {
		total += c.table.PricePerPoint(value, category)
	}
	return total * m, nil
}

// AttributeCost returns the attribute-point price of raising an attribute
func (c *Calculator) AttributeCost(points int) (float64, error) {
	if points <= 0 {
		return 0, invalidPoints(points)
	}
	return float64(points) * c.table.AttributePointPrice, nil
}

// ShiftCategory raises category by tiers. Shifting past the most expensive
// tier means the trait tables are inconsistent.
func ShiftCategory(category sheet.CostCategory, tiers int) (sheet.CostCategory, error) {
	tier := category.Tier()
	if tier < 0 {
		return "", errors.Internalf("unknown cost category %q", category)
	}
	all := sheet.CostCategories()
	if tier+tiers >= len(all) || tier+tiers < 0 {
		return "", errors.Internalf("cost category %s shifted by %d exceeds %s", category, tiers, all[len(all)-1])
	}
	return all[tier+tiers], nil
}

// Spend debits price from points. A shortfall is rejected without touching
// points; the budget is never clamped.
func Spend(points *sheet.Points, budget string, price float64) error {
	if price < 0 {
		return errors.Internalf("negative price %g for %s", price, budget)
	}
	if price > points.Available {
		return errors.InsufficientBudget(budget, price, points.Available)
	}
	points.Available -= price
	return nil
}

func invalidPoints(points int) error {
	return errors.InvalidArgumentf("increased points must be positive, got %d", points).
		WithMeta("reason", "InvalidPoints")
}
