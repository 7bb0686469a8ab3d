package models

import "time"

// Club represents a community a user can create or join.
type Club struct {
	ID           uint        `json:"club_id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Category     string      `json:"category"`
	City         string      `json:"city"`
	CreationDate time.Time   `json:"creation_date"`
	ImageURL     string      `json:"image_url"`
	Creator      UserProfile `json:"creator"`
}

// OwnedBy reports whether the club was created by the given user.
func (c Club) OwnedBy(userID uint) bool {
	return c.Creator.ID == userID
}

// ClubMembership is one member record inside a club's member list.
type ClubMembership struct {
	User     UserProfile `json:"user"`
	JoinDate time.Time   `json:"join_date"`
}

// ClubWithMembers is the batched shape returned by /all-clubs-members/.
type ClubWithMembers struct {
	ID      uint             `json:"club_id"`
	Name    string           `json:"name"`
	Members []ClubMembership `json:"members"`
}

// HasMember reports whether the given user appears in the member list.
func (c ClubWithMembers) HasMember(userID uint) bool {
	for _, m := range c.Members {
		if m.User.ID == userID {
			return true
		}
	}
	return false
}

// UserClub is a join record from /userclubs/; Club is the club's numeric id.
type UserClub struct {
	User     uint      `json:"user"`
	Club     uint      `json:"club"`
	JoinDate time.Time `json:"join_date"`
}
