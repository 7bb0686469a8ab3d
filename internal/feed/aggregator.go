package feed

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"yalah/internal/models"
	"yalah/internal/observability"
)

// Backend is the slice of the API client the aggregator needs.
type Backend interface {
	ListClubs(ctx context.Context) ([]models.Club, error)
	ClubRequests(ctx context.Context, clubID uint) ([]models.MembershipRequest, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	MyRequests(ctx context.Context) ([]models.MembershipRequest, error)
	ListNotifications(ctx context.Context) ([]models.Notification, error)
	RespondRequest(ctx context.Context, requestID uint, action models.RequestAction) error
	PatchPostStatus(ctx context.Context, postID uint, status models.PostStatus) error
	CreateNotification(ctx context.Context, in models.CreateNotificationInput) error
}

// Viewer supplies the signed-in user's id. session.Store satisfies this.
type Viewer interface {
	UserID() (uint, bool)
}

// Aggregator builds the unified pending-action feed. Club owners see their
// clubs' pending membership requests and posts awaiting approval; everyone
// else sees their own request history and notifications addressed to them.
type Aggregator struct {
	backend Backend
	viewer  Viewer
	log     *observability.FetchLogger

	mu    sync.Mutex
	items []Item
}

// NewAggregator creates an Aggregator bound to a backend and viewer.
func NewAggregator(backend Backend, viewer Viewer) *Aggregator {
	return &Aggregator{
		backend: backend,
		viewer:  viewer,
		log:     observability.NewFetchLogger("feed"),
	}
}

// Build fetches all sources and replaces the current feed. A logged-out
// viewer yields an empty feed without error. Per-club fetch failures are
// skipped so one broken club cannot blank the whole feed; only a failure of
// the initial club listing is returned as an error.
func (a *Aggregator) Build(ctx context.Context) ([]Item, error) {
	ctx = observability.WithCorrelationID(ctx, observability.GenerateCorrelationID())
	done := observability.TrackFeedBuild()

	viewerID, ok := a.viewer.UserID()
	if !ok {
		a.replace(nil)
		done(0)
		return nil, nil
	}

	a.log.LogCycleStart(ctx, map[string]interface{}{"viewer_id": viewerID})

	clubs, err := a.backend.ListClubs(ctx)
	if err != nil {
		a.log.LogError(ctx, err, "list_clubs")
		done(0)
		return nil, err
	}

	var owned []models.Club
	for _, club := range clubs {
		if club.OwnedBy(viewerID) {
			owned = append(owned, club)
		}
	}

	var items []Item
	if len(owned) > 0 {
		items = a.buildOwnerFeed(ctx, owned)
	} else {
		items = a.buildMemberFeed(ctx, viewerID)
	}

	// Date-descending; the stable sort keeps fetch order for equal dates.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})

	a.replace(items)
	a.log.LogCycleEnd(ctx, map[string]interface{}{"viewer_id": viewerID, "items": len(items)})
	done(len(items))
	return items, nil
}

// buildOwnerFeed collects pending membership requests across every owned
// club plus pending posts in those clubs. Request fetches fan out
// concurrently; results are flattened in club order so the merge stays
// deterministic regardless of completion timing.
func (a *Aggregator) buildOwnerFeed(ctx context.Context, owned []models.Club) []Item {
	perClub := make([][]models.MembershipRequest, len(owned))

	var wg sync.WaitGroup
	for i, club := range owned {
		wg.Add(1)
		go func(i int, club models.Club) {
			defer wg.Done()
			requests, err := a.backend.ClubRequests(ctx, club.ID)
			if err != nil {
				a.log.LogSourceSkipped(ctx, fmt.Sprintf("club %d requests", club.ID), err)
				observability.SourceSkips.WithLabelValues("feed").Inc()
				return
			}
			perClub[i] = requests
		}(i, club)
	}
	wg.Wait()

	var items []Item
	for _, requests := range perClub {
		for _, req := range requests {
			items = append(items, requestItem(req))
		}
	}

	posts, err := a.backend.ListPosts(ctx)
	if err != nil {
		a.log.LogSourceSkipped(ctx, "posts", err)
		observability.SourceSkips.WithLabelValues("feed").Inc()
		return items
	}

	ownedIDs := make(map[uint]bool, len(owned))
	for _, club := range owned {
		ownedIDs[club.ID] = true
	}
	for _, post := range posts {
		if post.Status == models.PostStatusPending && ownedIDs[post.Club.ID] {
			items = append(items, postItem(post))
		}
	}
	return items
}

// buildMemberFeed collects the viewer's own request history (all statuses)
// and notifications addressed to them. Each source degrades independently.
func (a *Aggregator) buildMemberFeed(ctx context.Context, viewerID uint) []Item {
	var items []Item

	requests, err := a.backend.MyRequests(ctx)
	if err != nil {
		a.log.LogSourceSkipped(ctx, "my requests", err)
		observability.SourceSkips.WithLabelValues("feed").Inc()
	} else {
		for _, req := range requests {
			items = append(items, requestItem(req))
		}
	}

	notifications, err := a.backend.ListNotifications(ctx)
	if err != nil {
		a.log.LogSourceSkipped(ctx, "notifications", err)
		observability.SourceSkips.WithLabelValues("feed").Inc()
	} else {
		for _, n := range notifications {
			if n.User.ID == viewerID {
				items = append(items, notificationItem(n))
			}
		}
	}
	return items
}

// Items returns a snapshot of the current feed.
func (a *Aggregator) Items() []Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Item, len(a.items))
	copy(out, a.items)
	return out
}

func (a *Aggregator) replace(items []Item) {
	a.mu.Lock()
	a.items = items
	a.mu.Unlock()
}

func (a *Aggregator) removeItem(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	kept := a.items[:0]
	for _, item := range a.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	a.items = kept
}

// RespondRequest accepts or rejects a membership request and, on success,
// removes it from the feed without waiting for the next Build. On failure
// the feed is left untouched and the error is returned to the caller.
func (a *Aggregator) RespondRequest(ctx context.Context, requestID uint, action models.RequestAction) error {
	if action != models.RequestActionAccept && action != models.RequestActionReject {
		return models.NewValidationError("action must be accept or reject")
	}
	if err := a.backend.RespondRequest(ctx, requestID, action); err != nil {
		return err
	}
	a.removeItem(fmt.Sprintf("request-%d", requestID))
	return nil
}

// ReviewPost approves or rejects a pending post. On success the author is
// notified best-effort (a failed notification is logged, not returned) and
// the post leaves the feed immediately.
func (a *Aggregator) ReviewPost(ctx context.Context, post models.Post, approve bool) error {
	status := models.PostStatusRejected
	verb := "rejected"
	if approve {
		status = models.PostStatusApproved
		verb = "approved"
	}
	if err := a.backend.PatchPostStatus(ctx, post.ID, status); err != nil {
		return err
	}

	notify := models.CreateNotificationInput{
		UserID:  post.Author.ID,
		ClubID:  post.Club.ID,
		Message: fmt.Sprintf("Your post %q has been %s by the club creator.", post.Title, verb),
		Type:    models.NotificationTypePostResponse,
	}
	if err := a.backend.CreateNotification(ctx, notify); err != nil {
		a.log.LogSourceSkipped(ctx, "author notification", err)
	}

	a.removeItem(fmt.Sprintf("post-%d", post.ID))
	return nil
}
