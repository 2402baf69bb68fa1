package notify

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"
)

// sendTimeout bounds a single notification so a hung tool never blocks watch.
const sendTimeout = 5 * time.Second

// Handler decides whether notifications may be shown and dispatches them.
// Notifications are skipped in CI and in non-interactive sessions.
type Handler struct {
	sender      Sender
	logger      *slog.Logger
	interactive func() bool
}

// NewHandler creates a handler using the platform sender.
func NewHandler(logger *slog.Logger) *Handler {
	return NewHandlerWithSender(NewSender(), logger)
}

// NewHandlerWithSender creates a handler with a custom sender (for testing).
func NewHandlerWithSender(sender Sender, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		sender:      sender,
		logger:      logger.With("component", "notify"),
		interactive: isInteractive,
	}
}

// Enabled reports whether Notify will actually show anything.
func (h *Handler) Enabled() bool {
	switch {
	case isCI():
		h.logger.Debug("notifications skipped, running in CI")
		return false
	case !h.interactive():
		h.logger.Debug("notifications skipped, no TTY")
		return false
	case !h.sender.Available():
		h.logger.Debug("notifications skipped, no notification tool installed")
		return false
	}
	return true
}

// Notify shows n. Failures are logged, never returned: a missed desktop
// notification must not stop the watcher.
func (h *Handler) Notify(ctx context.Context, n Notification) {
	if !h.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := h.sender.Send(ctx, n); err != nil {
		h.logger.Warn("sending notification failed", "error", err)
		return
	}
	h.logger.Debug("notification sent", "message", n.Message)
}

// isCI checks for common CI environment variables.
// Returns true if any CI-related environment variable is set.
func isCI() bool {
	ciVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"TRAVIS",
		"JENKINS_URL",
		"BUILDKITE",
		"TF_BUILD", // Azure DevOps
	}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// isInteractive checks if the session is interactive (has TTY).
// Checks stdout rather than stdin because CLI tools often have stdin piped
// while stdout remains connected to the terminal.
func isInteractive() bool {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return true
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
