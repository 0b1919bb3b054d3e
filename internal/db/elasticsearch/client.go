package elasticsearch

import (
	"context"
	"fmt"

	elastic "github.com/olivere/elastic/v7"
)

// NewClient connects to the document store. Sniffing is disabled so the
// client works against single-node and containerized deployments.
func NewClient(url string) (*elastic.Client, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to elasticsearch at %s: %w", url, err)
	}
	return client, nil
}

// threadMapping is the comments index mapping. Only root-level fields are
// indexed; the embedded reply tree is stored verbatim but disabled for
// indexing, which is why counts and aggregations operate over thread root
// documents.
const threadMapping = `{
	"mappings": {
		"properties": {
			"comment_id":        {"type": "keyword"},
			"post_id":           {"type": "keyword"},
			"author": {
				"properties": {
					"name":    {"type": "text"},
					"email":   {"type": "keyword"},
					"website": {"type": "keyword"}
				}
			},
			"content":           {"type": "text"},
			"user_host_address": {"type": "keyword"},
			"user_agent":        {"type": "keyword"},
			"spam":              {"type": "boolean"},
			"approved":          {"type": "boolean"},
			"published_at":      {"type": "date"},
			"replies":           {"type": "object", "enabled": false}
		}
	}
}`

// EnsureIndex creates the comments index with its mapping when missing.
// Safe to call on every startup.
func EnsureIndex(ctx context.Context, client *elastic.Client, index string) error {
	exists, err := client.IndexExists(index).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check index %s: %w", index, err)
	}
	if exists {
		return nil
	}
	if _, err := client.CreateIndex(index).BodyString(threadMapping).Do(ctx); err != nil {
		return fmt.Errorf("failed to create index %s: %w", index, err)
	}
	return nil
}
