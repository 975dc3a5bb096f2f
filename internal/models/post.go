package models

import "time"

// Author is the owner information joined onto a listed post.
type Author struct {
	Username string `bson:"username" json:"username"`
}

// Post is a blog entry owned by exactly one user.
type Post struct {
	ID        string    `bson:"_id" db:"id" json:"id"`
	Title     string    `bson:"title" db:"title" json:"title"`
	Content   string    `bson:"content" db:"content" json:"content"`
	UserID    string    `bson:"user_id" db:"user_id" json:"userId"`
	CreatedAt time.Time `bson:"created_at" db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" db:"updated_at" json:"updatedAt"`
	Author    *Author   `bson:"author,omitempty" db:"-" json:"author,omitempty"`
}

// NewPost creates a post owned by userID.
func NewPost(title, content, userID string) *Post {
	return &Post{
		Title:   title,
		Content: content,
		UserID:  userID,
	}
}

// BeforeCreate stamps the creation and update times when unset.
func (p *Post) BeforeCreate(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
}

// Stats aggregates post counts for the stats page.
type Stats struct {
	TotalPosts  int64  `json:"totalPosts"`
	UserPosts   int64  `json:"userPosts"`
	RecentPosts []Post `json:"recentPosts"`
}
