package model

import "time"

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notice is a transient message shown to the user until it expires.
type Notice struct {
	ID        string
	Kind      Kind
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (n Notice) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}
