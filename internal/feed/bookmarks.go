package feed

import "github.com/bine130/pe-subnote/internal/model"

// BookmarkSet is the viewer's bookmarked topic ids. Membership is boolean;
// the displayed count is the set's cardinality.
type BookmarkSet map[int]struct{}

// NewBookmarkSet builds the set from the bookmark listing.
func NewBookmarkSet(bookmarks []model.Bookmark) BookmarkSet {
	s := make(BookmarkSet, len(bookmarks))
	for _, b := range bookmarks {
		s[b.TopicID] = struct{}{}
	}
	return s
}

func (s BookmarkSet) Has(topicID int) bool {
	_, ok := s[topicID]
	return ok
}

func (s BookmarkSet) Len() int { return len(s) }

// Apply records the server-reported membership after a toggle.
func (s BookmarkSet) Apply(topicID int, bookmarked bool) {
	if bookmarked {
		s[topicID] = struct{}{}
	} else {
		delete(s, topicID)
	}
}
