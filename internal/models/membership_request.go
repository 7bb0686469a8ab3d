package models

import "time"

// RequestStatus defines lifecycle states for club membership requests.
type RequestStatus string

const (
	// RequestStatusPending indicates the request is awaiting the owner's review.
	RequestStatusPending RequestStatus = "pending"
	// RequestStatusAccepted indicates the request was accepted.
	RequestStatusAccepted RequestStatus = "accepted"
	// RequestStatusRejected indicates the request was declined.
	RequestStatusRejected RequestStatus = "rejected"
)

// RequestAction is the verb sent when responding to a membership request.
type RequestAction string

const (
	// RequestActionAccept approves the request.
	RequestActionAccept RequestAction = "accept"
	// RequestActionReject declines the request.
	RequestActionReject RequestAction = "reject"
)

// MembershipRequest is a user's request to join a club.
type MembershipRequest struct {
	ID           uint          `json:"request_id"`
	User         UserProfile   `json:"user"`
	Club         Club          `json:"club"`
	Status       RequestStatus `json:"status"`
	RequestDate  time.Time     `json:"request_date"`
	ResponseDate *time.Time    `json:"response_date,omitempty"`
}
