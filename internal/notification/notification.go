// Package notification sends desktop notifications through beeep.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/zhubert/nftdesk/internal/logger"
)

// AppName is the notification title.
const AppName = "nftdesk"

var notify = beeep.Notify

// SetNotifier replaces the function used to deliver notifications.
func SetNotifier(fn func(title, message string, icon any) error) {
	notify = fn
}

// ResetNotifier restores beeep.Notify.
func ResetNotifier() {
	notify = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending notification", "title", title, "message", message)
	// Empty icon: beeep picks the platform default
	if err := notify(title, message, ""); err != nil {
		log.Warn("notification failed", "error", err)
		return err
	}
	return nil
}

// TransferSimulated announces a completed transfer simulation.
func TransferSimulated(collection, tokenID string) error {
	return Send(AppName, fmt.Sprintf("Transfer of %s #%s simulated", collection, tokenID))
}
