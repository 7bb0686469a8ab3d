package statusapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yalah/internal/badge"
	"yalah/internal/featureflags"
	"yalah/internal/models"
	"yalah/internal/session"
	"yalah/internal/shell"
)

type backendStub struct{}

func (backendStub) ListClubs(context.Context) ([]models.Club, error) { return nil, nil }
func (backendStub) ClubRequests(context.Context, uint) ([]models.MembershipRequest, error) {
	return nil, nil
}
func (backendStub) ListNotifications(context.Context) ([]models.Notification, error) {
	return nil, nil
}
func (backendStub) AllClubsMembers(context.Context) ([]models.ClubWithMembers, error) {
	return nil, nil
}
func (backendStub) ClubMessages(context.Context, uint) ([]models.Message, error) { return nil, nil }

func newTestServer(t *testing.T) (*Server, *session.Store) {
	t.Helper()
	ctx := context.Background()

	vault := session.NewFileVault(filepath.Join(t.TempDir(), "session.json"))
	sessions := session.NewStore(ctx, vault)
	poller := badge.NewPoller(backendStub{}, sessions, time.Minute, time.Minute)
	flags := featureflags.NewManager("message_badge=on")
	sh := shell.New(poller, flags, sessions)

	return NewServer(sessions, poller, sh, flags), sessions
}

func TestServer_Healthz(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_StatusLoggedOut(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["logged_in"])
	assert.Equal(t, string(shell.SectionHome), body["active_section"])
	assert.NotContains(t, body, "user")
}

func TestServer_StatusLoggedIn(t *testing.T) {
	srv, sessions := newTestServer(t)
	require.NoError(t, sessions.Login(context.Background(),
		models.UserProfile{ID: 7, Username: "amina"},
		models.Tokens{Access: "acc", Refresh: "ref"},
	))

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, true, body["logged_in"])
	user := body["user"].(map[string]any)
	assert.Equal(t, float64(7), user["id"])
	assert.Equal(t, "amina", user["username"])

	badges := body["badges"].(map[string]any)
	assert.Equal(t, float64(0), badges["pending_requests"])
	assert.Equal(t, float64(0), badges["unread_messages"])

	flags := body["flags"].(map[string]any)
	assert.Equal(t, true, flags["message_badge"])
}

func TestServer_Metrics(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
