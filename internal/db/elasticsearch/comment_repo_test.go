package elasticsearch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	elastic "github.com/olivere/elastic/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Talkback/internal/core/comments"
)

// scrollPage builds a scroll response body carrying the given cursor id and
// one hit per thread id
func scrollPage(scrollID string, ids ...string) string {
	hits := make([]string, 0, len(ids))
	for _, id := range ids {
		hits = append(hits, fmt.Sprintf(
			`{"_index":"comments","_id":"%s","_score":null,"_source":{"comment_id":"c-%s","post_id":"p1","content":"hi"}}`,
			id, id))
	}
	return fmt.Sprintf(`{
		"_scroll_id": "%s",
		"took": 1,
		"timed_out": false,
		"_shards": {"total":1,"successful":1,"skipped":0,"failed":0},
		"hits": {"total":{"value":3,"relation":"eq"},"max_score":null,"hits":[%s]}
	}`, scrollID, strings.Join(hits, ","))
}

// newScrollServer serves an initial search page, follow-up scroll pages in
// order, then an empty page, and records cursor DELETEs
func newScrollServer(t *testing.T, firstPage string, nextPages []string, cleared *bool) *httptest.Server {
	var scrollCalls int
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/_search/scroll":
			*cleared = true
			fmt.Fprint(w, `{"succeeded":true,"num_freed":1}`)

		case strings.HasSuffix(r.URL.Path, "/_search") && r.URL.Query().Get("scroll") != "":
			fmt.Fprint(w, firstPage)

		case r.URL.Path == "/_search/scroll":
			scrollCalls++
			if scrollCalls <= len(nextPages) {
				fmt.Fprint(w, nextPages[scrollCalls-1])
				return
			}
			fmt.Fprint(w, scrollPage(fmt.Sprintf("cursor-%d", scrollCalls)))

		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL)
			http.Error(w, "unexpected request", http.StatusInternalServerError)
		}
	}))
}

func newTestClient(t *testing.T, url string) *elastic.Client {
	t.Helper()
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	require.NoError(t, err)
	return client
}

func TestScanThreads_PaginatesUntilExhaustion(t *testing.T) {
	var cleared bool
	srv := newScrollServer(t,
		scrollPage("cursor-1", "t1", "t2"),
		[]string{scrollPage("cursor-2", "t3")},
		&cleared)
	defer srv.Close()

	repo := NewCommentRepository(newTestClient(t, srv.URL), "comments")

	threads, err := repo.ScanThreads(context.Background(), comments.ThreadFilter{})
	require.NoError(t, err)

	// Every document comes back exactly once, across page boundaries
	ids := make([]string, 0, len(threads))
	for _, thread := range threads {
		ids = append(ids, thread.ID)
	}
	assert.Equal(t, []string{"t1", "t2", "t3"}, ids)

	// The hit id is the thread's identity and is copied onto the root
	assert.Equal(t, "t1", threads[0].Root.ID)
	assert.Equal(t, "c-t1", threads[0].Root.CommentID)
}

func TestScanThreads_ClearsCursorWhenDone(t *testing.T) {
	var cleared bool
	srv := newScrollServer(t,
		scrollPage("cursor-1", "t1"),
		nil,
		&cleared)
	defer srv.Close()

	repo := NewCommentRepository(newTestClient(t, srv.URL), "comments")

	_, err := repo.ScanThreads(context.Background(), comments.ThreadFilter{})
	require.NoError(t, err)
	assert.True(t, cleared, "server-side cursor should be released after the final page")
}

func TestScanThreads_EmptyCorpusReturnsEmptySlice(t *testing.T) {
	var cleared bool
	srv := newScrollServer(t,
		scrollPage("cursor-1"),
		nil,
		&cleared)
	defer srv.Close()

	repo := NewCommentRepository(newTestClient(t, srv.URL), "comments")

	threads, err := repo.ScanThreads(context.Background(), comments.ThreadFilter{})
	require.NoError(t, err)
	require.NotNil(t, threads)
	assert.Empty(t, threads)
}
