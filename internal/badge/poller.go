// Package badge maintains the two live counters behind the navbar badges:
// pending requests for club owners and unread club messages. Counts come
// from timer-driven polling, not push; the cadence is part of the observable
// behavior and is kept configurable rather than replaced with a stream.
package badge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"yalah/internal/models"
	"yalah/internal/observability"
)

// unreadWindow is how far back a message still counts as unread. Only
// messages newer than now-unreadWindow from other users are counted; there
// is no per-message read state on the backend.
const unreadWindow = 24 * time.Hour

// Backend is the slice of the API client the poller needs.
type Backend interface {
	ListClubs(ctx context.Context) ([]models.Club, error)
	ClubRequests(ctx context.Context, clubID uint) ([]models.MembershipRequest, error)
	ListNotifications(ctx context.Context) ([]models.Notification, error)
	AllClubsMembers(ctx context.Context) ([]models.ClubWithMembers, error)
	ClubMessages(ctx context.Context, clubID uint) ([]models.Message, error)
}

// Viewer supplies the signed-in user's id. session.Store satisfies this.
type Viewer interface {
	UserID() (uint, bool)
}

// Counts is a snapshot of both badge values.
type Counts struct {
	PendingRequests int
	UnreadMessages  int
}

// Poller recomputes badge counts on two independent tickers. A refresh that
// fails at the top level keeps the previous counts; a single club failing
// inside a refresh is skipped without zeroing the rest.
type Poller struct {
	backend          Backend
	viewer           Viewer
	requestsInterval time.Duration
	messagesInterval time.Duration
	now              func() time.Time
	log              *observability.FetchLogger

	mu       sync.Mutex
	counts   Counts
	onChange func(Counts)
}

// NewPoller creates a Poller with the given refresh cadences.
func NewPoller(backend Backend, viewer Viewer, requestsInterval, messagesInterval time.Duration) *Poller {
	return &Poller{
		backend:          backend,
		viewer:           viewer,
		requestsInterval: requestsInterval,
		messagesInterval: messagesInterval,
		now:              time.Now,
		log:              observability.NewFetchLogger("badge"),
	}
}

// OnChange registers a callback fired whenever either count changes. Only
// one callback is supported; it runs on the polling goroutine.
func (p *Poller) OnChange(fn func(Counts)) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

// Start refreshes both counters once immediately, then keeps them fresh on
// their tickers until ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	p.RefreshRequests(ctx)
	p.RefreshMessages(ctx)

	go p.loop(ctx, "requests", p.requestsInterval, p.RefreshRequests)
	go p.loop(ctx, "messages", p.messagesInterval, p.RefreshMessages)
}

func (p *Poller) loop(ctx context.Context, name string, interval time.Duration, refresh func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			observability.PollTicks.WithLabelValues(name).Inc()
			refresh(ctx)
		}
	}
}

// RefreshRequests recomputes the pending-request badge: the sum of pending
// request counts across every owned club plus notifications addressed to
// the viewer.
func (p *Poller) RefreshRequests(ctx context.Context) {
	ctx = observability.WithCorrelationID(ctx, observability.GenerateCorrelationID())

	viewerID, ok := p.viewer.UserID()
	if !ok {
		return
	}

	clubs, err := p.backend.ListClubs(ctx)
	if err != nil {
		p.log.LogError(ctx, err, "list_clubs")
		return
	}

	var owned []models.Club
	for _, club := range clubs {
		if club.OwnedBy(viewerID) {
			owned = append(owned, club)
		}
	}

	total := p.sumOwnedRequests(ctx, owned)

	notifications, err := p.backend.ListNotifications(ctx)
	if err != nil {
		p.log.LogSourceSkipped(ctx, "notifications", err)
		observability.SourceSkips.WithLabelValues("badge").Inc()
	} else {
		for _, n := range notifications {
			if n.User.ID == viewerID {
				total++
			}
		}
	}

	p.setRequests(total)
}

// sumOwnedRequests fans out one request fetch per owned club and sums the
// counts, skipping clubs that fail.
func (p *Poller) sumOwnedRequests(ctx context.Context, owned []models.Club) int {
	perClub := make([]int, len(owned))

	var wg sync.WaitGroup
	for i, club := range owned {
		wg.Add(1)
		go func(i int, club models.Club) {
			defer wg.Done()
			requests, err := p.backend.ClubRequests(ctx, club.ID)
			if err != nil {
				p.log.LogSourceSkipped(ctx, fmt.Sprintf("club %d requests", club.ID), err)
				observability.SourceSkips.WithLabelValues("badge").Inc()
				return
			}
			perClub[i] = len(requests)
		}(i, club)
	}
	wg.Wait()

	total := 0
	for _, n := range perClub {
		total += n
	}
	return total
}

// RefreshMessages recomputes the unread-message badge: for every club the
// viewer belongs to, messages from other users newer than the unread window.
func (p *Poller) RefreshMessages(ctx context.Context) {
	ctx = observability.WithCorrelationID(ctx, observability.GenerateCorrelationID())

	viewerID, ok := p.viewer.UserID()
	if !ok {
		return
	}

	clubs, err := p.backend.AllClubsMembers(ctx)
	if err != nil {
		p.log.LogError(ctx, err, "all_clubs_members")
		return
	}

	var joined []models.ClubWithMembers
	for _, club := range clubs {
		if club.HasMember(viewerID) {
			joined = append(joined, club)
		}
	}

	cutoff := p.now().Add(-unreadWindow)
	perClub := make([]int, len(joined))

	var wg sync.WaitGroup
	for i, club := range joined {
		wg.Add(1)
		go func(i int, club models.ClubWithMembers) {
			defer wg.Done()
			messages, err := p.backend.ClubMessages(ctx, club.ID)
			if err != nil {
				p.log.LogSourceSkipped(ctx, fmt.Sprintf("club %d messages", club.ID), err)
				observability.SourceSkips.WithLabelValues("badge").Inc()
				return
			}
			count := 0
			for _, msg := range messages {
				if msg.CreatedAt.After(cutoff) && msg.Sender.ID != viewerID {
					count++
				}
			}
			perClub[i] = count
		}(i, club)
	}
	wg.Wait()

	total := 0
	for _, n := range perClub {
		total += n
	}
	p.setMessages(total)
}

// ResetMessages zeroes the unread-message badge locally, the way opening
// the messages section does. Nothing is marked read on the backend, so the
// next poll tick recomputes server truth and may bring the count back.
func (p *Poller) ResetMessages() {
	p.setMessages(0)
}

// Counts returns a snapshot of both badge values.
func (p *Poller) Counts() Counts {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts
}

func (p *Poller) setRequests(n int) {
	p.mu.Lock()
	changed := p.counts.PendingRequests != n
	p.counts.PendingRequests = n
	snapshot := p.counts
	fn := p.onChange
	p.mu.Unlock()

	observability.BadgeCount.WithLabelValues("requests").Set(float64(n))
	if changed && fn != nil {
		fn(snapshot)
	}
}

func (p *Poller) setMessages(n int) {
	p.mu.Lock()
	changed := p.counts.UnreadMessages != n
	p.counts.UnreadMessages = n
	snapshot := p.counts
	fn := p.onChange
	p.mu.Unlock()

	observability.BadgeCount.WithLabelValues("messages").Set(float64(n))
	if changed && fn != nil {
		fn(snapshot)
	}
}
