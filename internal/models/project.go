package models

import (
	"fmt"
	"time"
)

// Project is a client project tracked on a user's dashboard
type Project struct {
	ID         int64
	UserID     int64
	Name       string
	ClientName string
	CreatedAt  time.Time
}

// TimeEntry is one logged block of work, optionally tied to a project
type TimeEntry struct {
	ID          int64
	UserID      int64
	ProjectID   *int64
	ProjectName string
	StartTime   time.Time
	EndTime     time.Time
	Description string
	CreatedAt   time.Time
}

// Duration returns the length of the entry
func (e *TimeEntry) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// DurationDisplay formats the entry length as "3h 25m"
func (e *TimeEntry) DurationDisplay() string {
	totalMinutes := int(e.Duration().Minutes())
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	return fmt.Sprintf("%dh %dm", totalMinutes/60, totalMinutes%60)
}
