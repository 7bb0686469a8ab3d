package models

import "time"

// PostStatus defines the moderation state of a post.
type PostStatus string

const (
	// PostStatusPending indicates a post is awaiting club-owner approval.
	PostStatusPending PostStatus = "pending"
	// PostStatusApproved indicates a post is visible to members.
	PostStatusApproved PostStatus = "approved"
	// PostStatusRejected indicates a post was declined by the owner.
	PostStatusRejected PostStatus = "rejected"
)

// Post is a member submission inside a club. Reads return nested Club and
// Author objects; creation goes through CreatePostInput with raw ids.
type Post struct {
	ID           uint        `json:"id_post"`
	Title        string      `json:"title"`
	Content      string      `json:"content"`
	ImageURL     string      `json:"image_url,omitempty"`
	Club         Club        `json:"club"`
	Author       UserProfile `json:"author"`
	Status       PostStatus  `json:"status"`
	CreationDate time.Time   `json:"creation_date"`
}

// CreatePostInput is the payload for submitting a post. Status is always
// "pending"; approval is the club owner's call.
type CreatePostInput struct {
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	ImageURL string     `json:"image_url,omitempty"`
	ClubID   uint       `json:"club"`
	AuthorID uint       `json:"author"`
	Status   PostStatus `json:"status"`
}
