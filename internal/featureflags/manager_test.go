package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_Enabled(t *testing.T) {
	m := NewManager("message_badge=on, owner_feed=off, beta=uid:3|7, rollout=50%, full=100%, none=0%")

	tests := []struct {
		name   string
		flag   string
		userID uint
		want   bool
	}{
		{"on flag", "message_badge", 1, true},
		{"off flag", "owner_feed", 1, false},
		{"unknown flag", "does_not_exist", 1, false},
		{"uid list hit", "beta", 7, true},
		{"uid list other hit", "beta", 3, true},
		{"uid list miss", "beta", 4, false},
		{"full rollout", "full", 1, true},
		{"zero rollout", "none", 1, false},
		{"rollout anonymous user", "rollout", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Enabled(tt.flag, tt.userID))
		})
	}
}

func TestManager_RolloutIsDeterministic(t *testing.T) {
	m := NewManager("rollout=50%")
	first := m.Enabled("rollout", 7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.Enabled("rollout", 7))
	}
}

func TestManager_CaseAndWhitespaceNormalized(t *testing.T) {
	m := NewManager("  Message_Badge = ON ")
	assert.True(t, m.Enabled("message_badge", 1))
	assert.True(t, m.Enabled("MESSAGE_BADGE", 1))
}

func TestManager_MalformedPairsDropped(t *testing.T) {
	m := NewManager("novalue,=noname,ok=on,garbage")
	assert.True(t, m.Enabled("ok", 1))
	assert.False(t, m.Defined("novalue"))
	assert.False(t, m.Defined("garbage"))
}

func TestManager_Defined(t *testing.T) {
	m := NewManager("a=off")
	assert.True(t, m.Defined("a"))
	assert.False(t, m.Defined("b"))

	var nilManager *Manager
	assert.False(t, nilManager.Defined("a"))
	assert.False(t, nilManager.Enabled("a", 1))
}

func TestManager_Snapshot(t *testing.T) {
	m := NewManager("a=on,b=off")
	snap := m.Snapshot(1)
	assert.Equal(t, map[string]bool{"a": true, "b": false}, snap)
}
