package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildEmptyCriteriaOnlyLimit(t *testing.T) {
	assert.Equal(t, map[string]string{"limit": "1000"}, Build(Criteria{}))
	assert.Equal(t, map[string]string{"limit": "1000"}, Build(New()))
}

func TestBuildBetweenAndEquality(t *testing.T) {
	got := Build(Criteria{ScoreMin: "50", ScoreMax: "90", Status: "qualified"})
	assert.Equal(t, map[string]string{
		"score_between": "50,90",
		"status_equals": "qualified",
		"limit":         "1000",
	}, got)
}

func TestBuildOneSidedRange(t *testing.T) {
	assert.Equal(t, map[string]string{"score_gt": "50", "limit": "1000"}, Build(Criteria{ScoreMin: "50"}))
	assert.Equal(t, map[string]string{"lead_value_lt": "800", "limit": "1000"}, Build(Criteria{ValueMax: "800"}))
}

func TestBuildRangesNeverMixForms(t *testing.T) {
	cases := []struct {
		name   string
		c      Criteria
		field  string
		lo, hi string
	}{
		{"score", Criteria{ScoreMin: "1", ScoreMax: "2"}, "score", "_gt", "_lt"},
		{"lead value", Criteria{ValueMin: "1", ValueMax: "2"}, "lead_value", "_gt", "_lt"},
		{"created", Criteria{CreatedFrom: "2024-01-01", CreatedTo: "2024-02-01"}, "created_at", "_after", "_before"},
		{"activity", Criteria{LastActivityFrom: "2024-01-01", LastActivityTo: "2024-02-01"}, "last_activity_at", "_after", "_before"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Build(tc.c)
			assert.Contains(t, got, tc.field+"_between")
			assert.NotContains(t, got, tc.field+tc.lo)
			assert.NotContains(t, got, tc.field+tc.hi)
		})
	}
}

func TestBuildDateBounds(t *testing.T) {
	got := Build(Criteria{CreatedFrom: "2024-01-01", LastActivityTo: "2024-03-31", Limit: "50"})
	assert.Equal(t, map[string]string{
		"created_at_after":        "2024-01-01",
		"last_activity_at_before": "2024-03-31",
		"limit":                   "50",
	}, got)
}

func TestBuildQualifiedTriState(t *testing.T) {
	assert.NotContains(t, Build(Criteria{}), "is_qualified_equals")
	assert.Equal(t, "true", Build(Criteria{IsQualified: boolPtr(true)})["is_qualified_equals"])
	assert.Equal(t, "false", Build(Criteria{IsQualified: boolPtr(false)})["is_qualified_equals"])
}

func TestBuildIsIdempotent(t *testing.T) {
	c := Criteria{Search: "acme", Source: "website", ValueMin: "10", CreatedTo: "2024-05-01"}
	assert.Equal(t, Build(c), Build(c))
	for k, v := range Build(c) {
		assert.NotEmpty(t, v, k)
	}
}

func TestPanelLifecycle(t *testing.T) {
	var p Panel
	assert.False(t, p.State().Open)

	st := p.Open()
	require.True(t, st.Open)
	assert.Equal(t, DefaultLimit, st.Criteria.Limit)

	st = p.Set(Criteria{ScoreMin: "50", Limit: DefaultLimit})
	assert.Equal(t, map[string]string{"score_gt": "50", "limit": "1000"}, st.Preview)

	params := p.Apply()
	assert.Equal(t, map[string]string{"score_gt": "50", "limit": "1000"}, params)
	assert.False(t, p.State().Open)
}

func TestPanelClearResetsEverything(t *testing.T) {
	var p Panel
	p.Set(Criteria{Search: "x", Status: "won", ScoreMin: "1", ScoreMax: "9", IsQualified: boolPtr(true), Limit: "100"})

	params := p.Clear()
	assert.Empty(t, params)

	st := p.State()
	assert.False(t, st.Open)
	assert.Equal(t, Cleared(), st.Criteria)
	assert.Equal(t, map[string]string{"limit": "20"}, Build(st.Criteria))

	// reopening starts from a fresh form
	assert.Equal(t, New(), p.Open().Criteria)
}
