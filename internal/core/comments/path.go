package comments

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ReplyPath addresses a single node inside a thread: the root document id
// followed by zero-based indices descending through each level's replies.
// An empty index list addresses the root comment itself.
//
// A path is a plain value with no ownership semantics. It is resolved
// freshly against a just-fetched document on every use and never cached
// across requests.
type ReplyPath struct {
	ThreadID string
	Indices  []int
}

// On the wire a reply path is a mixed JSON array: ["<threadID>", 0, 2, ...]

func (p ReplyPath) MarshalJSON() ([]byte, error) {
	parts := make([]any, 0, len(p.Indices)+1)
	parts = append(parts, p.ThreadID)
	for _, idx := range p.Indices {
		parts = append(parts, idx)
	}
	return json.Marshal(parts)
}

func (p *ReplyPath) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("reply path must be an array: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("reply path must not be empty")
	}
	if err := json.Unmarshal(raw[0], &p.ThreadID); err != nil {
		return fmt.Errorf("reply path root id must be a string: %w", err)
	}
	if p.ThreadID == "" {
		return errors.New("reply path root id must not be empty")
	}
	p.Indices = make([]int, 0, len(raw)-1)
	for i, elem := range raw[1:] {
		var idx int
		if err := json.Unmarshal(elem, &idx); err != nil {
			return fmt.Errorf("reply path index %d must be an integer: %w", i, err)
		}
		p.Indices = append(p.Indices, idx)
	}
	return nil
}

// ResolveReplyPath walks the thread's reply tree along the path's indices
// and returns the addressed node. The returned pointer aliases into the
// thread, so appending to its replies mutates the document in place.
//
// Out-of-range indices fail with ErrReplyPathOutOfRange. Under the
// append-only discipline positions never move, but the check is still
// required: the path was built by a client against an older read.
func ResolveReplyPath(t *Thread, path ReplyPath) (*Comment, error) {
	node := t.Root
	for depth, idx := range path.Indices {
		if idx < 0 || idx >= len(node.Replies) {
			return nil, fmt.Errorf("%w: index %d at depth %d, node has %d replies",
				ErrReplyPathOutOfRange, idx, depth, len(node.Replies))
		}
		node = node.Replies[idx]
	}
	return node, nil
}
