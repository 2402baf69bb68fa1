// Package notify sends desktop notifications when a new changelog version
// is published while 'whatsnew watch' is running.
package notify

import "fmt"

// Notification represents a single notification event to dispatch
type Notification struct {
	// Title is the notification title (e.g., "whatsnew")
	Title string

	// Message is the notification body text
	Message string
}

// NewRelease builds the notification announcing that version is out and
// how many versions are now unread.
func NewRelease(version string, unread int) Notification {
	msg := fmt.Sprintf("Version %s is out", version)
	if unread > 1 {
		msg = fmt.Sprintf("Version %s is out (%d new versions)", version, unread)
	}
	return Notification{
		Title:   "What's new",
		Message: msg + ". Run 'whatsnew open' to read it.",
	}
}
