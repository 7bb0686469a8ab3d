package models

import "time"

// Notification types emitted by the client when moderating content.
const (
	// NotificationTypePostResponse tells an author their post was reviewed.
	NotificationTypePostResponse = "post_response"
	// NotificationTypePostApproval asks a club owner to review a new post.
	NotificationTypePostApproval = "post_approval_request"
)

// Notification is a generic message addressed to one user about one club.
type Notification struct {
	ID       uint        `json:"notification_id"`
	User     UserProfile `json:"user"`
	Club     Club        `json:"club"`
	Message  string      `json:"message"`
	Type     string      `json:"notification_type"`
	SentDate time.Time   `json:"sent_date"`
}

// CreateNotificationInput is the payload for posting a notification; the
// backend expects raw ids here, not nested objects.
type CreateNotificationInput struct {
	UserID  uint   `json:"user"`
	ClubID  uint   `json:"club"`
	Message string `json:"message"`
	Type    string `json:"notification_type"`
}
