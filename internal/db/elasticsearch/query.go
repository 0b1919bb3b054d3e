package elasticsearch

import (
	"time"

	elastic "github.com/olivere/elastic/v7"

	"Talkback/internal/core/comments"
)

// buildThreadQuery translates a ThreadFilter into the bool filter shared by
// search, count, scan, delete-by-query and the aggregations. An empty
// filter matches everything.
func buildThreadQuery(f comments.ThreadFilter) elastic.Query {
	var clauses []elastic.Query

	if len(f.PostIDs) > 0 {
		ids := make([]interface{}, len(f.PostIDs))
		for i, id := range f.PostIDs {
			ids[i] = id
		}
		clauses = append(clauses, elastic.NewTermsQuery("post_id", ids...))
	}

	if f.Since != nil {
		clauses = append(clauses, elastic.NewRangeQuery("published_at").
			Gte(f.Since.UTC().Format(time.RFC3339)))
	}

	if len(clauses) == 0 {
		return elastic.NewMatchAllQuery()
	}
	return elastic.NewBoolQuery().Filter(clauses...)
}
