package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/sleuth-io/razordiag/internal/logger"
)

// Title is shown on every notification.
const Title = "Razor Diagnostics"

const (
	successMessage = "Razor diagnostics information has been printed to the output.\n" +
		"Open the output to read and copy the text."
	failureFormat = "Something went wrong while attempting to output Razor diagnostics information\n\n" +
		"Error message: %s\n\n" +
		"Check the output for details."
)

func init() {
	// Set the app name for notifications
	beeep.AppName = "Razor Diagnostics"
}

// send is replaced in tests.
var send = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Send sends a desktop notification
// Falls back gracefully if notifications aren't available
func Send(title, message string) {
	log := logger.Get()

	if err := send(title, message); err != nil {
		log.Debug("failed to send desktop notification", "error", err, "title", title)
	} else {
		log.Debug("desktop notification sent", "title", title)
	}
}

// SuccessMessage is the text shown after the report was written.
func SuccessMessage() string {
	return successMessage
}

// FailureMessage is the text shown when collection failed.
func FailureMessage(err error) string {
	return fmt.Sprintf(failureFormat, err)
}

// ReportSuccess tells the user the report is ready.
func ReportSuccess() {
	Send(Title, SuccessMessage())
}

// ReportFailure tells the user collection failed.
func ReportFailure(err error) {
	Send(Title, FailureMessage(err))
}
