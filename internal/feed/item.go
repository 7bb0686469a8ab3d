// Package feed merges membership requests, pending posts and notifications
// into one time-ordered list for the signed-in viewer.
package feed

import (
	"fmt"
	"time"

	"yalah/internal/models"
)

// ItemType discriminates the three kinds of feed entries.
type ItemType string

const (
	// ItemMembershipRequest is a join request (pending for owners, own
	// history for regular members).
	ItemMembershipRequest ItemType = "membership_request"
	// ItemPendingPost is a post awaiting the viewer's approval.
	ItemPendingPost ItemType = "pending_post"
	// ItemNotification is a generic notification addressed to the viewer.
	ItemNotification ItemType = "notification"
)

// Item is one normalized feed entry. Exactly one of Request, Post and
// Notification is set, matching Type. Items are rebuilt on every refresh
// and never persisted.
type Item struct {
	ID           string
	Type         ItemType
	Date         time.Time
	Request      *models.MembershipRequest
	Post         *models.Post
	Notification *models.Notification
}

func requestItem(req models.MembershipRequest) Item {
	return Item{
		ID:      fmt.Sprintf("request-%d", req.ID),
		Type:    ItemMembershipRequest,
		Date:    req.RequestDate,
		Request: &req,
	}
}

func postItem(post models.Post) Item {
	return Item{
		ID:   fmt.Sprintf("post-%d", post.ID),
		Type: ItemPendingPost,
		Date: post.CreationDate,
		Post: &post,
	}
}

func notificationItem(n models.Notification) Item {
	return Item{
		ID:           fmt.Sprintf("notification-%d", n.ID),
		Type:         ItemNotification,
		Date:         n.SentDate,
		Notification: &n,
	}
}
