// Package comments handles topic discussion threads: assembling flat
// comment rows into a reply tree and applying mutations with a
// reload-after-write policy. Unlike sticky notes, comments are visible
// across users, so every mutation refetches the whole set instead of
// patching locally.
package comments

import "github.com/bine130/pe-subnote/internal/model"

// BuildTree nests a flat comment list by parent_comment_id. Roots are the
// comments with no parent; arrival order is preserved within each level. A
// comment pointing at a parent that is not in the list is kept as a root
// rather than dropped, so nothing the server sent disappears.
func BuildTree(flat []model.Comment) []model.Comment {
	known := make(map[int]bool, len(flat))
	for _, c := range flat {
		known[c.ID] = true
	}

	children := make(map[int][]model.Comment)
	var rootIDs []int
	byID := make(map[int]model.Comment, len(flat))
	for _, c := range flat {
		c.Replies = nil
		byID[c.ID] = c
		if c.ParentCommentID == nil || !known[*c.ParentCommentID] {
			rootIDs = append(rootIDs, c.ID)
			continue
		}
		children[*c.ParentCommentID] = append(children[*c.ParentCommentID], c)
	}

	var attach func(c model.Comment) model.Comment
	attach = func(c model.Comment) model.Comment {
		kids := children[c.ID]
		c.Replies = make([]model.Comment, 0, len(kids))
		for _, kid := range kids {
			c.Replies = append(c.Replies, attach(kid))
		}
		return c
	}

	roots := make([]model.Comment, 0, len(rootIDs))
	for _, id := range rootIDs {
		roots = append(roots, attach(byID[id]))
	}
	return roots
}

// flatten walks a nested tree back into one flat list, depth first, so a
// response can be rebuilt regardless of whether the server nested it.
func flatten(tree []model.Comment) []model.Comment {
	out := make([]model.Comment, 0, len(tree))
	for _, c := range tree {
		kids := c.Replies
		c.Replies = nil
		out = append(out, c)
		out = append(out, flatten(kids)...)
	}
	return out
}

// CountAll returns the number of comments in a tree, replies included.
func CountAll(tree []model.Comment) int {
	total := 0
	for _, c := range tree {
		total += 1 + CountAll(c.Replies)
	}
	return total
}
