package comments

// FilterVisible prunes a comment tree down to publicly visible nodes.
// An unapproved node drops together with its entire subtree, even when a
// nested reply is itself approved. Order is preserved.
//
// The input tree is never mutated: survivors are shallow-copied with their
// replies replaced by the filtered result, so the same loaded documents can
// safely feed the unfiltered administrative export.
func FilterVisible(nodes []*Comment) []*Comment {
	visible := make([]*Comment, 0, len(nodes))
	for _, node := range nodes {
		if !node.Approved {
			continue
		}
		kept := *node
		kept.Replies = FilterVisible(node.Replies)
		visible = append(visible, &kept)
	}
	return visible
}
