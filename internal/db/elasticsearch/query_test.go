package elasticsearch

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Talkback/internal/core/comments"
)

func querySource(t *testing.T, f comments.ThreadFilter) string {
	t.Helper()
	src, err := buildThreadQuery(f).Source()
	require.NoError(t, err)
	data, err := json.Marshal(src)
	require.NoError(t, err)
	return string(data)
}

func TestBuildThreadQuery_EmptyFilterMatchesAll(t *testing.T) {
	src := querySource(t, comments.ThreadFilter{})

	assert.JSONEq(t, `{"match_all":{}}`, src)
}

func TestBuildThreadQuery_PostIDsBecomeTermsFilter(t *testing.T) {
	src := querySource(t, comments.ThreadFilter{PostIDs: []string{"p1", "p2"}})

	assert.Contains(t, src, `"bool"`)
	assert.Contains(t, src, `"filter"`)
	assert.Contains(t, src, `"terms"`)
	assert.Contains(t, src, `"post_id"`)
	assert.Contains(t, src, `"p1"`)
	assert.Contains(t, src, `"p2"`)
}

func TestBuildThreadQuery_SinceBecomesRangeFilter(t *testing.T) {
	since := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	src := querySource(t, comments.ThreadFilter{Since: &since})

	assert.Contains(t, src, `"range"`)
	assert.Contains(t, src, `"published_at"`)
	assert.Contains(t, src, "2026-01-02T03:04:05Z")
}

func TestBuildThreadQuery_CombinedFilters(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	src := querySource(t, comments.ThreadFilter{
		PostIDs: []string{"p1"},
		Since:   &since,
	})

	assert.Contains(t, src, `"terms"`)
	assert.Contains(t, src, `"range"`)
}
