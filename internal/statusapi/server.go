// Package statusapi exposes a small local HTTP surface for the daemon:
// liveness, a JSON snapshot of session and badge state, and Prometheus
// metrics. It binds to localhost by default and serves no club data of its
// own; the backend remains the only source of truth.
package statusapi

import (
	"context"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"yalah/internal/badge"
	"yalah/internal/featureflags"
	"yalah/internal/session"
	"yalah/internal/shell"
)

// Server wires the daemon's state into HTTP handlers.
type Server struct {
	sessions *session.Store
	badges   *badge.Poller
	sh       *shell.Shell
	flags    *featureflags.Manager
	app      *fiber.App
}

// NewServer creates the status server. flags may be nil.
func NewServer(sessions *session.Store, badges *badge.Poller, sh *shell.Shell, flags *featureflags.Manager) *Server {
	s := &Server{
		sessions: sessions,
		badges:   badges,
		sh:       sh,
		flags:    flags,
	}

	app := fiber.New(fiber.Config{
		AppName:               "yalah status",
		DisableStartupMessage: true,
	})
	app.Get("/healthz", s.handleHealth)
	app.Get("/api/status", s.handleStatus)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	s.app = app
	return s
}

// App returns the underlying Fiber app; used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	current := s.sessions.Current()
	counts := s.badges.Counts()
	active, clubID := s.sh.Active()

	status := fiber.Map{
		"logged_in":      current.LoggedIn(),
		"active_section": active,
		"badges": fiber.Map{
			"pending_requests": counts.PendingRequests,
			"unread_messages":  counts.UnreadMessages,
		},
	}
	if clubID != 0 {
		status["club_id"] = clubID
	}
	if current.LoggedIn() {
		status["user"] = fiber.Map{
			"id":       current.User.ID,
			"username": current.User.Username,
		}
		status["flags"] = s.flags.Snapshot(current.User.ID)
	}
	return c.JSON(status)
}
