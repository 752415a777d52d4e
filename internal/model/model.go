// Package model holds the wire types exchanged with the subnote API.
package model

// Roles and approval states as the API spells them.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"

	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// User is an account as returned by the auth and admin endpoints.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Cohort         int    `json:"cohort"`
	Role           string `json:"role"`
	ApprovalStatus string `json:"approval_status"`
}

// UserUpdate is a partial patch; nil fields are left unchanged.
type UserUpdate struct {
	Name           *string `json:"name,omitempty"`
	Cohort         *int    `json:"cohort,omitempty"`
	Role           *string `json:"role,omitempty"`
	ApprovalStatus *string `json:"approval_status,omitempty"`
}

// CategoryRef is the embedded category projection on topics.
type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Category is a flat category row.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    *int   `json:"parent_id"`
	OrderIndex  int    `json:"order_index"`
	CreatedAt   string `json:"created_at"`
}

// CategoryNode is a category with its nested children, as returned by the
// public tree endpoint.
type CategoryNode struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	ParentID    *int           `json:"parent_id"`
	OrderIndex  int            `json:"order_index"`
	CreatedAt   string         `json:"created_at"`
	Children    []CategoryNode `json:"children"`
}

type CategoryCreate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    *int   `json:"parent_id,omitempty"`
	OrderIndex  int    `json:"order_index,omitempty"`
}

type CategoryUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ParentID    *int    `json:"parent_id,omitempty"`
	OrderIndex  *int    `json:"order_index,omitempty"`
}

// CategoryReorder moves one category to a new parent/position.
type CategoryReorder struct {
	ID         int  `json:"id"`
	ParentID   *int `json:"parent_id,omitempty"`
	OrderIndex int  `json:"order_index"`
}

// FindCategoryName resolves a category id anywhere in the tree.
func FindCategoryName(nodes []CategoryNode, id int) (string, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n.Name, true
		}
		if name, ok := FindCategoryName(n.Children, id); ok {
			return name, true
		}
	}
	return "", false
}

// Topic is the full topic row, including its markdown body.
type Topic struct {
	ID              int          `json:"id"`
	Title           string       `json:"title"`
	Content         string       `json:"content"`
	Keywords        string       `json:"keywords"`
	Mnemonic        string       `json:"mnemonic"`
	CategoryID      *int         `json:"category_id"`
	Category        *CategoryRef `json:"category"`
	IsPublished     bool         `json:"is_published"`
	OrderIndex      int          `json:"order_index"`
	ViewCount       int          `json:"view_count"`
	ImportanceLevel int          `json:"importance_level"`
	CreatedAt       string       `json:"created_at"`
	UpdatedAt       string       `json:"updated_at"`
}

// TopicSummary is the list projection of a topic. It never carries the body.
type TopicSummary struct {
	ID              int          `json:"id"`
	Title           string       `json:"title"`
	Keywords        string       `json:"keywords"`
	Mnemonic        string       `json:"mnemonic"`
	CategoryID      *int         `json:"category_id"`
	Category        *CategoryRef `json:"category"`
	IsPublished     bool         `json:"is_published"`
	ViewCount       int          `json:"view_count"`
	ImportanceLevel int          `json:"importance_level"`
	CommentsCount   int          `json:"comments_count"`
	CreatedAt       string       `json:"created_at"`
	UpdatedAt       string       `json:"updated_at"`
}

type TopicCreate struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	Keywords        string `json:"keywords,omitempty"`
	Mnemonic        string `json:"mnemonic,omitempty"`
	CategoryID      *int   `json:"category_id,omitempty"`
	IsPublished     bool   `json:"is_published"`
	OrderIndex      int    `json:"order_index,omitempty"`
	ImportanceLevel int    `json:"importance_level"`
}

type TopicUpdate struct {
	Title           *string `json:"title,omitempty"`
	Content         *string `json:"content,omitempty"`
	Keywords        *string `json:"keywords,omitempty"`
	Mnemonic        *string `json:"mnemonic,omitempty"`
	CategoryID      *int    `json:"category_id,omitempty"`
	IsPublished     *bool   `json:"is_published,omitempty"`
	OrderIndex      *int    `json:"order_index,omitempty"`
	ImportanceLevel *int    `json:"importance_level,omitempty"`
}

// CommentUser is the author projection embedded in each comment.
type CommentUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Cohort int    `json:"cohort"`
	Role   string `json:"role"`
}

// Comment is one comment with its nested replies. ParentCommentID nil means
// top-level.
type Comment struct {
	ID              int         `json:"id"`
	TopicID         int         `json:"topic_id"`
	UserID          string      `json:"user_id"`
	ParentCommentID *int        `json:"parent_comment_id"`
	Content         string      `json:"content"`
	LikesCount      int         `json:"likes_count"`
	CreatedAt       string      `json:"created_at"`
	UpdatedAt       string      `json:"updated_at"`
	User            CommentUser `json:"user"`
	Replies         []Comment   `json:"replies"`
	IsLiked         bool        `json:"is_liked"`
}

type CommentCreate struct {
	Content         string `json:"content"`
	ParentCommentID *int   `json:"parent_comment_id,omitempty"`
}

type CommentUpdate struct {
	Content string `json:"content"`
}

// Note is a sticky annotation pinned to a topic by one user.
type Note struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	TopicID   int     `json:"topic_id"`
	Content   string  `json:"content"`
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Color     string  `json:"color"`
	Opacity   float64 `json:"opacity"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type NoteCreate struct {
	TopicID   int     `json:"topic_id"`
	Content   string  `json:"content"`
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
	Color     string  `json:"color"`
	Opacity   float64 `json:"opacity"`
}

// NoteUpdate is a partial patch; nil fields are left unchanged on the server.
type NoteUpdate struct {
	Content   *string  `json:"content,omitempty"`
	PositionX *float64 `json:"position_x,omitempty"`
	PositionY *float64 `json:"position_y,omitempty"`
	Width     *float64 `json:"width,omitempty"`
	Height    *float64 `json:"height,omitempty"`
	Color     *string  `json:"color,omitempty"`
	Opacity   *float64 `json:"opacity,omitempty"`
}

// IsZero reports whether the patch carries no field at all.
func (u NoteUpdate) IsZero() bool {
	return u.Content == nil && u.PositionX == nil && u.PositionY == nil &&
		u.Width == nil && u.Height == nil && u.Color == nil && u.Opacity == nil
}

// Bookmark membership is the pair (user, topic).
type Bookmark struct {
	UserID    string `json:"user_id"`
	TopicID   int    `json:"topic_id"`
	CreatedAt string `json:"created_at"`
}

// ReadCount tracks how many times a user marked a topic as read.
type ReadCount struct {
	UserID     string `json:"user_id"`
	TopicID    int    `json:"topic_id"`
	Count      int    `json:"count"`
	LastReadAt string `json:"last_read_at"`
	CreatedAt  string `json:"created_at"`
}

// Template is a reusable topic skeleton managed in the admin console.
type Template struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content"`
	Category    string `json:"category,omitempty"`
	CreatedBy   string `json:"created_by,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// TemplateSummary is the list projection of a template (no body).
type TemplateSummary struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type TemplateCreate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content"`
	Category    string `json:"category,omitempty"`
}

type TemplateUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Content     *string `json:"content,omitempty"`
	Category    *string `json:"category,omitempty"`
}
