package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Sender defines the interface for platform-specific notification senders
type Sender interface {
	// Send shows n through the OS notification system
	Send(ctx context.Context, n Notification) error

	// Available returns true if the platform tool is installed
	Available() bool
}

// NewSender creates a platform-specific notification sender based on the current OS.
// It returns a sender appropriate for darwin (macOS) or linux.
// For unsupported platforms, it returns a no-op sender.
func NewSender() Sender {
	switch runtime.GOOS {
	case "darwin":
		return &commandSender{tool: "osascript", args: darwinArgs}
	case "linux":
		return &commandSender{tool: "notify-send", args: linuxArgs}
	default:
		return &noopSender{}
	}
}

// commandSender shells out to a notification tool.
type commandSender struct {
	tool string
	args func(Notification) []string
}

func (s *commandSender) Send(ctx context.Context, n Notification) error {
	cmd := exec.CommandContext(ctx, s.tool, s.args(n)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", s.tool, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (s *commandSender) Available() bool {
	return toolAvailable(s.tool)
}

func linuxArgs(n Notification) []string {
	return []string{"--app-name=whatsnew", n.Title, n.Message}
}

func darwinArgs(n Notification) []string {
	script := fmt.Sprintf("display notification %s with title %s",
		appleScriptString(n.Message), appleScriptString(n.Title))
	return []string{"-e", script}
}

// appleScriptString quotes s as an AppleScript string literal.
func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// toolAvailable checks if a command-line tool is available in PATH
func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// noopSender is a sender that does nothing (for unsupported platforms)
type noopSender struct{}

func (s *noopSender) Send(context.Context, Notification) error { return nil }
func (s *noopSender) Available() bool                          { return false }
