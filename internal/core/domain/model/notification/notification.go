// Package notification holds the push message sent to customers when their order moves.
package notification

import (
	"errors"
	"strings"

	"momoadmin/internal/pkg/errs"
)

// Notification is the payload handed to the dispatcher: who to notify and what to show.
type Notification struct {
	UserID string `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// New validates that every field is present.
func New(userID, title, body string) (Notification, error) {
	var problems []error
	if strings.TrimSpace(userID) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("user id"))
	}
	if strings.TrimSpace(title) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("title"))
	}
	if strings.TrimSpace(body) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("body"))
	}
	if err := errors.Join(problems...); err != nil {
		return Notification{}, err
	}
	return Notification{UserID: userID, Title: title, Body: body}, nil
}
