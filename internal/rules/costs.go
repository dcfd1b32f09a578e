package rules

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/errors"
)

// CostTable prices skill activations and increases.
//
// Brackets partition the value range: the bracket with the greatest From not
// above a value prices the next point raised from that value. Prices are
// indexed by cost category tier.
type CostTable struct {
	ActivationFee       float64                          `yaml:"activation_fee"`
	AttributePointPrice float64                          `yaml:"attribute_point_price"`
	Multipliers         map[sheet.LearningMethod]float64 `yaml:"multipliers"`
	Brackets            []Bracket                        `yaml:"brackets"`
}

// Bracket is one value range of the cost schedule
type Bracket struct {
	From   int       `yaml:"from"`
	Prices []float64 `yaml:"prices"`
}

// DefaultCostTable returns the compiled cost schedule.
// Only the first bracket is pinned by play data; the rest is tunable through
// a YAML override.
func DefaultCostTable() *CostTable {
	return &CostTable{
		ActivationFee:       50,
		AttributePointPrice: 1,
		Multipliers: map[sheet.LearningMethod]float64{
			sheet.LearningMethodFree:      0,
			sheet.LearningMethodLowPriced: 0.5,
			sheet.LearningMethodNormal:    1,
			sheet.LearningMethodExpensive: 2,
		},
		Brackets: []Bracket{
			{From: 0, Prices: []float64{0.5, 1, 2, 3, 4}},
			{From: 50, Prices: []float64{1, 2, 3, 4, 6}},
			{From: 75, Prices: []float64{1.5, 3, 4, 6, 8}},
			{From: 100, Prices: []float64{2, 4, 6, 8, 12}},
			{From: 150, Prices: []float64{3, 6, 9, 12, 16}},
			{From: 200, Prices: []float64{4, 8, 12, 16, 24}},
		},
	}
}

// LoadCostTable reads a cost table from a YAML file. Keys missing from the
// file keep their default values.
func LoadCostTable(path string) (*CostTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read cost table %s", path)
	}

	table := DefaultCostTable()
	override := &CostTable{}
	if err := yaml.Unmarshal(data, override); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to parse cost table %s", path)
	}

	if override.ActivationFee != 0 {
		table.ActivationFee = override.ActivationFee
	}
	if override.AttributePointPrice != 0 {
		table.AttributePointPrice = override.AttributePointPrice
	}
	for method, multiplier := range override.Multipliers {
		table.Multipliers[method] = multiplier
	}
	if len(override.Brackets) > 0 {
		table.Brackets = override.Brackets
	}

	sort.SliceStable(table.Brackets, func(i, j int) bool {
		return table.Brackets[i].From < table.Brackets[j].From
	})

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Validate checks the table is complete and non-negative
func (t *CostTable) Validate() error {
	if t == nil {
		return errors.Internal("cost table is nil")
	}
	if t.ActivationFee < 0 {
		return errors.Internal("activation fee must not be negative")
	}
	if t.AttributePointPrice < 0 {
		return errors.Internal("attribute point price must not be negative")
	}
	for _, method := range LearningMethods() {
		multiplier, ok := t.Multipliers[method]
		if !ok {
			return errors.Internalf("missing multiplier for learning method %s", method)
		}
		if multiplier < 0 {
			return errors.Internalf("multiplier for %s must not be negative", method)
		}
	}
	if len(t.Brackets) == 0 || t.Brackets[0].From != 0 {
		return errors.Internal("first cost bracket must start at 0")
	}
	tiers := len(sheet.CostCategories())
	for i, bracket := range t.Brackets {
		if i > 0 && bracket.From <= t.Brackets[i-1].From {
			return errors.Internalf("cost brackets must be strictly ascending at index %d", i)
		}
		if len(bracket.Prices) != tiers {
			return errors.Internalf("cost bracket from %d needs %d prices, has %d", bracket.From, tiers, len(bracket.Prices))
		}
		for _, price := range bracket.Prices {
			if price < 0 {
				return errors.Internalf("cost bracket from %d has a negative price", bracket.From)
			}
		}
	}
	return nil
}

// PricePerPoint returns the base price of raising value by one point
func (t *CostTable) PricePerPoint(value int, category sheet.CostCategory) float64 {
	tier := category.Tier()
	if tier < 0 {
		return 0
	}
	price := t.Brackets[0].Prices[tier]
	for _, bracket := range t.Brackets {
		if value < bracket.From {
			break
		}
		price = bracket.Prices[tier]
	}
	return price
}

// Multiplier returns the learning-method multiplier
func (t *CostTable) Multiplier(method sheet.LearningMethod) (float64, bool) {
	m, ok := t.Multipliers[method]
	return m, ok
}

// LearningMethods lists every learning method
func LearningMethods() []sheet.LearningMethod {
	return []sheet.LearningMethod{
		sheet.LearningMethodFree,
		sheet.LearningMethodLowPriced,
		sheet.LearningMethodNormal,
		sheet.LearningMethodExpensive,
	}
}
