// Package shell holds the authenticated area's navigation state: which
// section is visible and which club thread is open. Switching is local and
// synchronous; there is no history stack or URL routing inside this area.
package shell

import (
	"sync"

	"yalah/internal/badge"
	"yalah/internal/featureflags"
)

// Section is a view key, one per page-level component.
type Section string

// The known sections. Unknown keys fall back to SectionHome.
const (
	SectionHome          Section = "home"
	SectionMyClubs       Section = "myClubs"
	SectionCreatedClubs  Section = "createdClubs"
	SectionExplore       Section = "explore"
	SectionProfile       Section = "profile"
	SectionSettings      Section = "settings"
	SectionNotifications Section = "notifications"
	SectionMessages      Section = "messagerie"
)

// FlagMessageBadge gates the local reset of the message badge on section
// entry. On by default when no flag list is configured.
const FlagMessageBadge = "message_badge"

var known = map[Section]bool{
	SectionHome:          true,
	SectionMyClubs:       true,
	SectionCreatedClubs:  true,
	SectionExplore:       true,
	SectionProfile:       true,
	SectionSettings:      true,
	SectionNotifications: true,
	SectionMessages:      true,
}

// BadgeResetter is the slice of the badge poller the shell touches.
type BadgeResetter interface {
	ResetMessages()
}

// Viewer supplies the signed-in user's id for flag evaluation.
type Viewer interface {
	UserID() (uint, bool)
}

// Shell is the minimal view-shell contract: active section plus the club id
// used when drilling into one club's message thread.
type Shell struct {
	mu      sync.Mutex
	active  Section
	clubID  uint
	badges  BadgeResetter
	flags   *featureflags.Manager
	viewer  Viewer
	hasFlag bool
}

// New creates a Shell starting at SectionHome. badges and flags may be nil.
func New(badges BadgeResetter, flags *featureflags.Manager, viewer Viewer) *Shell {
	return &Shell{
		active:  SectionHome,
		badges:  badges,
		flags:   flags,
		viewer:  viewer,
		hasFlag: flags != nil,
	}
}

// Activate switches the visible section. Unknown keys fall back to home,
// mirroring the default arm of the page switch. Entering the messages
// section zeroes the message badge locally; the next poll tick may restore
// it from server truth.
func (s *Shell) Activate(section Section) {
	if !known[section] {
		section = SectionHome
	}

	s.mu.Lock()
	s.active = section
	if section != SectionMessages {
		s.clubID = 0
	}
	badges := s.badges
	s.mu.Unlock()

	if section == SectionMessages && badges != nil && s.messageBadgeEnabled() {
		badges.ResetMessages()
	}
}

// OpenClubThread activates the messages section with one club's thread open.
func (s *Shell) OpenClubThread(clubID uint) {
	s.Activate(SectionMessages)
	s.mu.Lock()
	s.clubID = clubID
	s.mu.Unlock()
}

// Active returns the visible section and the selected club id (zero when no
// thread is open).
func (s *Shell) Active() (Section, uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.clubID
}

func (s *Shell) messageBadgeEnabled() bool {
	// The flag is a kill switch: the reset stays on unless message_badge is
	// explicitly configured and evaluates to off for this user.
	if !s.hasFlag || !s.flags.Defined(FlagMessageBadge) {
		return true
	}
	var userID uint
	if s.viewer != nil {
		userID, _ = s.viewer.UserID()
	}
	return s.flags.Enabled(FlagMessageBadge, userID)
}

var _ BadgeResetter = (*badge.Poller)(nil)
