// Package thread turns a post's comment list into a two-level tree and
// manages how much of it is shown and how new comments join it.
package thread

import "github.com/CrestNiraj12/termblog/domain"

// Classify picks the batch shape once, at the decode boundary. When the
// first record exposes a replies field the whole list is trusted as
// already nested.
func Classify(records []domain.Comment, firstHasReplies bool) domain.CommentBatch {
	if len(records) > 0 && firstHasReplies {
		return domain.NestedComments(records)
	}
	return domain.FlatComments(records)
}

// Build returns the root comments with their direct replies attached.
//
// Nested batches are returned unchanged. Flat batches are partitioned by
// ParentID; a reply whose parent is not a root of the same batch is dropped.
func Build(batch domain.CommentBatch) []domain.Comment {
	switch b := batch.(type) {
	case domain.NestedComments:
		return []domain.Comment(b)
	case domain.FlatComments:
		return buildFlat(b)
	}
	return nil
}

func buildFlat(records []domain.Comment) []domain.Comment {
	roots := make([]domain.Comment, 0, len(records))
	index := make(map[domain.ID]int, len(records))
	for _, c := range records {
		if !c.IsRoot() {
			continue
		}
		c.Replies = []domain.Comment{}
		index[c.ID] = len(roots)
		roots = append(roots, c)
	}
	for _, c := range records {
		if c.IsRoot() {
			continue
		}
		i, ok := index[c.ParentID]
		if !ok {
			continue
		}
		c.Replies = nil
		roots[i].Replies = append(roots[i].Replies, c)
	}
	return roots
}

// Count returns the number of roots plus replies in the tree.
func Count(roots []domain.Comment) int {
	n := len(roots)
	for _, r := range roots {
		n += len(r.Replies)
	}
	return n
}
