package service

import (
	"time"
)

// SetClock replaces the time source of a Notification built by New.
func SetClock(n Notification, now func() time.Time) {
	n.(*serviceImpl).now = now
}
