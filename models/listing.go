package models

import "time"

// Known listing conditions in best-to-worst order. Source data may carry
// other values; those still round-trip and sort deterministically.
const (
	ConditionNew     = "New"
	ConditionLikeNew = "Like New"
	ConditionGood    = "Good"
	ConditionFair    = "Fair"
	ConditionPoor    = "Poor"
)

// Conditions lists the known listing conditions.
var Conditions = []string{ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor}

// Listing is a single marketplace offering considered as a match candidate.
// Price is in whole currency units; Distance is miles from the searcher.
type Listing struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Price     int       `json:"price"`
	Location  string    `json:"location"`
	Distance  float64   `json:"distance"`
	Date      time.Time `json:"date"`
	Source    string    `json:"source"`
	Condition string    `json:"condition"`
}
