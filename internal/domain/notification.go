package domain

import "time"

// NotificationLevel classifies a user-visible notice.
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
	NotificationInfo    NotificationLevel = "info"
)

// Notification is a transient message the presentation layer shows the user.
type Notification struct {
	ID      string            `json:"id"`
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
	At      time.Time         `json:"at"`
}

// Notifier is the output channel the workflows emit notices on.
type Notifier interface {
	Notify(level NotificationLevel, message string)
}

// Navigator moves the user to another view.
type Navigator interface {
	Navigate(path string)
}
