package sheet

import "encoding/json"

// HistoryRecord is one entry of a character's append-only audit log
type HistoryRecord struct {
	Type              HistoryRecordType `json:"type"`
	Name              string            `json:"name"`
	Number            int64             `json:"number"`
	ID                string            `json:"id"`
	Timestamp         int64             `json:"timestamp"`
	Data              Change            `json:"data"`
	CalculationPoints PointsChanges     `json:"calculationPoints"`
	LearningMethod    LearningMethod    `json:"learningMethod,omitempty"`
	Comment           string            `json:"comment,omitempty"`
}

// Change holds the encoded old and new state of every structure a mutation
// touched
type Change struct {
	Old json.RawMessage `json:"old"`
	New json.RawMessage `json:"new"`
}

// PointsChange is the before and after of one calculation-point budget
type PointsChange struct {
	Old Points `json:"old"`
	New Points `json:"new"`
}

// PointsChanges lists the budgets a mutation moved
type PointsChanges struct {
	AdventurePoints *PointsChange `json:"adventurePoints,omitempty"`
	AttributePoints *PointsChange `json:"attributePoints,omitempty"`
}

// Empty reports whether no budget moved
func (p PointsChanges) Empty() bool {
	return p.AdventurePoints == nil && p.AttributePoints == nil
}
