// Package api is the typed HTTP client for the yalah backend contract.
// Every call attaches the session's bearer token; no timeout is set beyond
// the injected http.Client's own, and no retry or token refresh happens here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"yalah/internal/models"
	"yalah/internal/observability"
)

// TokenSource supplies the bearer credential for authenticated calls.
// internal/session.Store satisfies this.
type TokenSource interface {
	AccessToken() string
}

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewClient creates a backend client. httpClient may be nil, in which case
// http.DefaultClient is used. tokens may be nil for unauthenticated use
// (login and register only).
func NewClient(baseURL string, httpClient *http.Client, tokens TokenSource) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
	}
}

// do issues one JSON request and decodes the response into out (if non-nil).
// endpoint is a stable label for metrics, not the concrete path.
func (c *Client) do(ctx context.Context, method, path, endpoint string, body, out any) error {
	start := time.Now()
	err := c.doOnce(ctx, method, path, body, out)
	observability.ObserveAPIRequest(endpoint, err, start)
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.NewNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return models.NewUnauthorizedError("token rejected by backend")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return models.NewAPIError(resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return models.NewDecodeError(err)
	}
	return nil
}

// loginResponse mirrors the /login/ payload.
type loginResponse struct {
	User   models.UserProfile `json:"user"`
	Tokens models.Tokens      `json:"tokens"`
}

// Login exchanges credentials for a profile and token pair.
func (c *Client) Login(ctx context.Context, username, password string) (*models.UserProfile, *models.Tokens, error) {
	body := map[string]string{"username": username, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/login/", "login", body, &resp); err != nil {
		return nil, nil, err
	}
	return &resp.User, &resp.Tokens, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, in models.RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/register/", "register", in, nil)
}

// ListClubs returns every club on the platform.
func (c *Client) ListClubs(ctx context.Context) ([]models.Club, error) {
	var clubs []models.Club
	if err := c.do(ctx, http.MethodGet, "/clubs/", "list_clubs", nil, &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

// GetClub returns one club by id.
func (c *Client) GetClub(ctx context.Context, clubID uint) (*models.Club, error) {
	var club models.Club
	path := fmt.Sprintf("/clubs/%d/", clubID)
	if err := c.do(ctx, http.MethodGet, path, "get_club", nil, &club); err != nil {
		return nil, err
	}
	return &club, nil
}

// ClubMembers returns the membership records of one club.
func (c *Client) ClubMembers(ctx context.Context, clubID uint) ([]models.ClubMembership, error) {
	var members []models.ClubMembership
	path := fmt.Sprintf("/clubs/%d/members/", clubID)
	if err := c.do(ctx, http.MethodGet, path, "club_members", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// AllClubsMembers returns every club with its member list in one call,
// the batched alternative to per-club ClubMembers.
func (c *Client) AllClubsMembers(ctx context.Context) ([]models.ClubWithMembers, error) {
	var clubs []models.ClubWithMembers
	if err := c.do(ctx, http.MethodGet, "/all-clubs-members/", "all_clubs_members", nil, &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

// ClubRequests returns the pending membership requests of one club.
func (c *Client) ClubRequests(ctx context.Context, clubID uint) ([]models.MembershipRequest, error) {
	var requests []models.MembershipRequest
	path := fmt.Sprintf("/clubs/%d/requests/", clubID)
	if err := c.do(ctx, http.MethodGet, path, "club_requests", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// RespondRequest accepts or rejects a membership request.
func (c *Client) RespondRequest(ctx context.Context, requestID uint, action models.RequestAction) error {
	path := fmt.Sprintf("/membership-requests/%d/respond/", requestID)
	body := map[string]models.RequestAction{"action": action}
	return c.do(ctx, http.MethodPatch, path, "respond_request", body, nil)
}

// CreateJoinRequest asks to join a club.
func (c *Client) CreateJoinRequest(ctx context.Context, clubID uint) error {
	body := map[string]uint{"club_id": clubID}
	return c.do(ctx, http.MethodPost, "/membership-requests/", "create_join_request", body, nil)
}

// MyRequests returns the viewer's own membership-request history, all statuses.
func (c *Client) MyRequests(ctx context.Context) ([]models.MembershipRequest, error) {
	var requests []models.MembershipRequest
	if err := c.do(ctx, http.MethodGet, "/my-membership-requests/", "my_requests", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// UserClubs returns the viewer's join records.
func (c *Client) UserClubs(ctx context.Context) ([]models.UserClub, error) {
	var records []models.UserClub
	if err := c.do(ctx, http.MethodGet, "/userclubs/", "user_clubs", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListPosts returns every post visible to the viewer.
func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, "/posts/", "list_posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost submits a post for owner approval. The status field is forced
// to pending regardless of input.
func (c *Client) CreatePost(ctx context.Context, in models.CreatePostInput) (*models.Post, error) {
	in.Status = models.PostStatusPending
	var post models.Post
	if err := c.do(ctx, http.MethodPost, "/posts/", "create_post", in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// PatchPostStatus sets a post's moderation status.
func (c *Client) PatchPostStatus(ctx context.Context, postID uint, status models.PostStatus) error {
	path := fmt.Sprintf("/posts/%d/", postID)
	body := map[string]models.PostStatus{"status": status}
	return c.do(ctx, http.MethodPatch, path, "patch_post_status", body, nil)
}

// ListNotifications returns every notification the backend exposes to the
// viewer. Callers filter by user id; the endpoint is not scoped server-side.
func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications/", "list_notifications", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// CreateNotification posts a notification addressed to one user.
func (c *Client) CreateNotification(ctx context.Context, in models.CreateNotificationInput) error {
	return c.do(ctx, http.MethodPost, "/notifications/", "create_notification", in, nil)
}

// ClubMessages returns the message thread of one club.
func (c *Client) ClubMessages(ctx context.Context, clubID uint) ([]models.Message, error) {
	var messages []models.Message
	path := fmt.Sprintf("/clubs/%d/messages/", clubID)
	if err := c.do(ctx, http.MethodGet, path, "club_messages", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage posts a message to a club's thread.
func (c *Client) SendMessage(ctx context.Context, clubID uint, content string) (*models.Message, error) {
	var msg models.Message
	path := fmt.Sprintf("/clubs/%d/messages/", clubID)
	body := models.SendMessageInput{Content: content, Club: clubID}
	if err := c.do(ctx, http.MethodPost, path, "send_message", body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// UpdateUser saves profile edits.
func (c *Client) UpdateUser(ctx context.Context, userID uint, in models.UpdateUserInput) (*models.UserProfile, error) {
	var user models.UserProfile
	path := fmt.Sprintf("/users/%d/", userID)
	if err := c.do(ctx, http.MethodPut, path, "update_user", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
