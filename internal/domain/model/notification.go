package model

import "time"

// NotificationField represents a titled section within a notification payload.
type NotificationField struct {
	Name   string
	Value  string
	Inline bool
}

// Notification is a transport-agnostic rich message for downstream notifiers.
type Notification struct {
	Title       string
	Description string
	Timestamp   time.Time
	Color       int
	Author      string
	Fields      []NotificationField
	Footer      string
}
