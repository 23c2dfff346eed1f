package notify

import (
	"context"
	"fmt"
	"strings"

	"feedback-survey/internal/models"
)

// Notifier publishes a message about newly submitted feedback.
type Notifier interface {
	Publish(ctx context.Context, subject, message string) error
}

// FormatFeedback renders a short plain-text summary of a submission.
func FormatFeedback(f *models.Feedback) (subject, body string) {
	who := f.Name
	if who == "" {
		who = "anonymous"
	}
	if f.Email != "" {
		who += " <" + f.Email + ">"
	}
	subject = fmt.Sprintf("New feedback: %d/5 (%s)", f.Rating, f.Category)
	body = "New feedback received\n" +
		"From: " + who + "\n" +
		"Rating: " + strings.Repeat("*", f.Rating) + "\n" +
		"Category: " + f.Category + "\n" +
		"Recommend: " + f.Recommend + "\n" +
		"Message: " + f.Message
	return subject, body
}
