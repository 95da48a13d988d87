// Package filter turns the structured filter form into the flat query
// parameters understood by the Leads API /allquery endpoint.
package filter

import "strconv"

const (
	// DefaultLimit is emitted when the form leaves the limit untouched.
	DefaultLimit = "1000"
	// ClearedLimit is what the form's limit resets to on Clear.
	// It intentionally differs from DefaultLimit.
	ClearedLimit = "20"
)

// Criteria is the transient filter form. Empty strings mean "not set".
type Criteria struct {
	Search string `json:"search"`
	Status string `json:"status"`
	Source string `json:"source"`

	ScoreMin string `json:"scoreMin"`
	ScoreMax string `json:"scoreMax"`
	ValueMin string `json:"valueMin"`
	ValueMax string `json:"valueMax"`

	CreatedFrom      string `json:"createdFrom"`
	CreatedTo        string `json:"createdTo"`
	LastActivityFrom string `json:"lastActivityFrom"`
	LastActivityTo   string `json:"lastActivityTo"`

	IsQualified *bool `json:"isQualified"`

	Limit string `json:"limit"`
}

// New returns an empty form with the builder's default limit.
func New() Criteria {
	return Criteria{Limit: DefaultLimit}
}

// Cleared returns the form state after the user presses Clear.
func Cleared() Criteria {
	return Criteria{Limit: ClearedLimit}
}

// Build maps c to query parameters. Only set fields are present; limit is
// always present.
func Build(c Criteria) map[string]string {
	params := make(map[string]string)

	if c.Search != "" {
		params["search"] = c.Search
	}
	if c.Status != "" {
		params["status_equals"] = c.Status
	}
	if c.Source != "" {
		params["source_equals"] = c.Source
	}

	numericRange(params, "score", c.ScoreMin, c.ScoreMax)
	numericRange(params, "lead_value", c.ValueMin, c.ValueMax)
	dateRange(params, "created_at", c.CreatedFrom, c.CreatedTo)
	dateRange(params, "last_activity_at", c.LastActivityFrom, c.LastActivityTo)

	if c.IsQualified != nil {
		params["is_qualified_equals"] = strconv.FormatBool(*c.IsQualified)
	}

	params["limit"] = c.Limit
	if c.Limit == "" {
		params["limit"] = DefaultLimit
	}
	return params
}

func numericRange(params map[string]string, field, lo, hi string) {
	bounded(params, field, lo, hi, "_gt", "_lt")
}

func dateRange(params map[string]string, field, from, to string) {
	bounded(params, field, from, to, "_after", "_before")
}

// bounded emits either <field>_between or the one-sided forms, never both.
func bounded(params map[string]string, field, lo, hi, loSuffix, hiSuffix string) {
	if lo != "" && hi != "" {
		params[field+"_between"] = lo + "," + hi
		return
	}
	if lo != "" {
		params[field+loSuffix] = lo
	}
	if hi != "" {
		params[field+hiSuffix] = hi
	}
}
