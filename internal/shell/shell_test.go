package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yalah/internal/featureflags"
)

type resetterStub struct {
	resets int
}

func (r *resetterStub) ResetMessages() { r.resets++ }

type viewerStub struct {
	id uint
}

func (v viewerStub) UserID() (uint, bool) { return v.id, v.id != 0 }

func TestShell_StartsAtHome(t *testing.T) {
	sh := New(nil, nil, nil)
	active, clubID := sh.Active()
	assert.Equal(t, SectionHome, active)
	assert.Zero(t, clubID)
}

func TestShell_UnknownSectionFallsBackToHome(t *testing.T) {
	sh := New(nil, nil, nil)
	sh.Activate(SectionSettings)
	sh.Activate(Section("bogus"))

	active, _ := sh.Active()
	assert.Equal(t, SectionHome, active)
}

func TestShell_MessagesSectionResetsBadge(t *testing.T) {
	badges := &resetterStub{}
	sh := New(badges, nil, nil)

	sh.Activate(SectionMessages)
	assert.Equal(t, 1, badges.resets)

	sh.Activate(SectionNotifications)
	assert.Equal(t, 1, badges.resets, "only the messages section resets")
}

func TestShell_OpenClubThread(t *testing.T) {
	badges := &resetterStub{}
	sh := New(badges, nil, nil)

	sh.OpenClubThread(3)
	active, clubID := sh.Active()
	assert.Equal(t, SectionMessages, active)
	assert.Equal(t, uint(3), clubID)
	assert.Equal(t, 1, badges.resets)

	// Leaving the thread clears the selection.
	sh.Activate(SectionHome)
	_, clubID = sh.Active()
	assert.Zero(t, clubID)
}

func TestShell_MessageBadgeFlagIsKillSwitch(t *testing.T) {
	t.Run("flag absent keeps reset on", func(t *testing.T) {
		badges := &resetterStub{}
		sh := New(badges, featureflags.NewManager("other=on"), viewerStub{id: 7})
		sh.Activate(SectionMessages)
		assert.Equal(t, 1, badges.resets)
	})

	t.Run("flag off disables reset", func(t *testing.T) {
		badges := &resetterStub{}
		sh := New(badges, featureflags.NewManager("message_badge=off"), viewerStub{id: 7})
		sh.Activate(SectionMessages)
		assert.Zero(t, badges.resets)
	})

	t.Run("uid allowlist", func(t *testing.T) {
		badges := &resetterStub{}
		sh := New(badges, featureflags.NewManager("message_badge=uid:7"), viewerStub{id: 7})
		sh.Activate(SectionMessages)
		assert.Equal(t, 1, badges.resets)
	})
}
