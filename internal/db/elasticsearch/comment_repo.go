package elasticsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	elastic "github.com/olivere/elastic/v7"

	"Talkback/internal/core/comments"
)

const (
	// scanPageSize bounds each scroll page
	scanPageSize = 100

	// scrollKeepAlive is the cursor validity window; the cursor renews on
	// every page, so only a stalled caller loses it
	scrollKeepAlive = "10s"

	// topPostsSize caps the most-commented term aggregation
	topPostsSize = 5

	topPostsAggName       = "top_posts"
	commentsByDateAggName = "comments_by_date"
)

type elasticCommentRepo struct {
	es    *elastic.Client
	index string
}

// NewCommentRepository creates an Elasticsearch-backed comment thread
// repository over the given index
func NewCommentRepository(client *elastic.Client, index string) comments.Repository {
	return &elasticCommentRepo{es: client, index: index}
}

// GetThread retrieves a thread document with its seq_no/primary_term tokens
func (r *elasticCommentRepo) GetThread(ctx context.Context, id string) (*comments.Thread, error) {
	res, err := r.es.Get().Index(r.index).Id(id).Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return nil, comments.ErrThreadNotFound
		}
		return nil, storeError("failed to get thread", err)
	}

	var root comments.Comment
	if err := json.Unmarshal(res.Source, &root); err != nil {
		return nil, fmt.Errorf("failed to decode thread %s: %w", id, err)
	}
	root.ID = res.Id

	return &comments.Thread{
		ID:          res.Id,
		Root:        &root,
		SeqNo:       res.SeqNo,
		PrimaryTerm: res.PrimaryTerm,
	}, nil
}

// CreateThread indexes a new root document with a store-assigned id.
// Refresh is requested so the write is searchable before the call returns.
func (r *elasticCommentRepo) CreateThread(ctx context.Context, root *comments.Comment) (string, error) {
	res, err := r.es.Index().
		Index(r.index).
		BodyJson(threadBody(root)).
		Refresh("true").
		Do(ctx)
	if err != nil {
		return "", storeError("failed to index thread", err)
	}
	return res.Id, nil
}

// ReplaceThread writes the whole document back, guarded by the tokens it
// was fetched with. A concurrent writer's replace bumps seq_no and turns
// this call into ErrConcurrentModification instead of a silent lost update.
func (r *elasticCommentRepo) ReplaceThread(ctx context.Context, t *comments.Thread) error {
	if t.SeqNo == nil || t.PrimaryTerm == nil {
		return fmt.Errorf("thread %s is missing concurrency tokens", t.ID)
	}

	_, err := r.es.Index().
		Index(r.index).
		Id(t.ID).
		BodyJson(threadBody(t.Root)).
		IfSeqNo(*t.SeqNo).
		IfPrimaryTerm(*t.PrimaryTerm).
		Refresh("true").
		Do(ctx)
	if err != nil {
		if elastic.IsConflict(err) {
			return comments.ErrConcurrentModification
		}
		return storeError("failed to replace thread", err)
	}
	return nil
}

// DeleteThread removes a thread document; every embedded reply goes with it
func (r *elasticCommentRepo) DeleteThread(ctx context.Context, id string) error {
	_, err := r.es.Delete().Index(r.index).Id(id).Refresh("true").Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return comments.ErrThreadNotFound
		}
		return storeError("failed to delete thread", err)
	}
	return nil
}

// DeleteByPostID removes every thread owned by a post. Deleting zero
// documents is not an error, which makes the operation idempotent.
func (r *elasticCommentRepo) DeleteByPostID(ctx context.Context, postID string) (int64, error) {
	res, err := r.es.DeleteByQuery(r.index).
		Query(elastic.NewTermQuery("post_id", postID)).
		Refresh("true").
		Do(ctx)
	if err != nil {
		return 0, storeError("failed to delete threads by post", err)
	}
	return res.Deleted, nil
}

// CountThreads counts thread documents matching the filter
func (r *elasticCommentRepo) CountThreads(ctx context.Context, f comments.ThreadFilter) (int64, error) {
	count, err := r.es.Count(r.index).Query(buildThreadQuery(f)).Do(ctx)
	if err != nil {
		return 0, storeError("failed to count threads", err)
	}
	return count, nil
}

// SearchThreads returns up to size matching threads sorted by published_at
func (r *elasticCommentRepo) SearchThreads(ctx context.Context, f comments.ThreadFilter, sortDesc bool, size int) ([]*comments.Thread, error) {
	res, err := r.es.Search(r.index).
		Query(buildThreadQuery(f)).
		Sort("published_at", !sortDesc).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, storeError("failed to search threads", err)
	}
	if res.Hits == nil {
		return []*comments.Thread{}, nil
	}

	threads := make([]*comments.Thread, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		thread, err := decodeThreadHit(hit)
		if err != nil {
			return nil, err
		}
		threads = append(threads, thread)
	}
	return threads, nil
}

// ScanThreads exhaustively retrieves every matching thread via scroll.
// Each page renews the cursor; the store signals exhaustion with io.EOF.
func (r *elasticCommentRepo) ScanThreads(ctx context.Context, f comments.ThreadFilter) ([]*comments.Thread, error) {
	scroll := r.es.Scroll(r.index).
		Query(buildThreadQuery(f)).
		Size(scanPageSize).
		KeepAlive(scrollKeepAlive)

	var threads []*comments.Thread
	for {
		page, err := scroll.Do(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, storeError("failed to scroll threads", err)
		}
		for _, hit := range page.Hits.Hits {
			thread, err := decodeThreadHit(hit)
			if err != nil {
				return nil, err
			}
			threads = append(threads, thread)
		}
	}

	// Release the server-side cursor early instead of waiting out the
	// keep-alive window
	_ = scroll.Clear(ctx)

	if threads == nil {
		threads = []*comments.Thread{}
	}
	return threads, nil
}

// AggregateStats runs the index-side aggregations in one search with no
// hits requested.
//
// Most-commented ties break deterministically: count descending, then post
// id (term key) ascending.
func (r *elasticCommentRepo) AggregateStats(ctx context.Context, f comments.ThreadFilter, interval string) (*comments.StatsBuckets, error) {
	topPosts := elastic.NewTermsAggregation().
		Field("post_id").
		Size(topPostsSize).
		OrderByCountDesc().
		OrderByKeyAsc()

	byDate := elastic.NewDateHistogramAggregation().
		Field("published_at").
		CalendarInterval(interval)

	res, err := r.es.Search(r.index).
		Query(buildThreadQuery(f)).
		Size(0).
		Aggregation(topPostsAggName, topPosts).
		Aggregation(commentsByDateAggName, byDate).
		Do(ctx)
	if err != nil {
		return nil, storeError("failed to aggregate threads", err)
	}

	buckets := &comments.StatsBuckets{
		ByDate:   []comments.DateBucket{},
		TopPosts: []comments.PostBucket{},
	}

	if terms, found := res.Aggregations.Terms(topPostsAggName); found {
		for _, b := range terms.Buckets {
			postID, ok := b.Key.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected term bucket key %v in %s", b.Key, topPostsAggName)
			}
			buckets.TopPosts = append(buckets.TopPosts, comments.PostBucket{
				PostID: postID,
				Count:  b.DocCount,
			})
		}
	}

	if hist, found := res.Aggregations.DateHistogram(commentsByDateAggName); found {
		for _, b := range hist.Buckets {
			buckets.ByDate = append(buckets.ByDate, comments.DateBucket{
				Date:  bucketTime(b.Key),
				Count: b.DocCount,
			})
		}
	}

	return buckets, nil
}

// threadBody strips the document id before persisting: _id is the store's
// identity for the thread and is never duplicated into the source
func threadBody(root *comments.Comment) *comments.Comment {
	body := *root
	body.ID = ""
	return &body
}

func decodeThreadHit(hit *elastic.SearchHit) (*comments.Thread, error) {
	var root comments.Comment
	if err := json.Unmarshal(hit.Source, &root); err != nil {
		return nil, fmt.Errorf("failed to decode thread %s: %w", hit.Id, err)
	}
	root.ID = hit.Id
	return &comments.Thread{ID: hit.Id, Root: &root}, nil
}

// bucketTime converts a histogram bucket key (epoch milliseconds) to UTC
func bucketTime(epochMillis float64) time.Time {
	return time.UnixMilli(int64(epochMillis)).UTC()
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, comments.ErrStoreUnavailable, err)
}
