package swap

import (
	"time"

	"skillswap-cli/internal/domain/skill"
	"skillswap-cli/internal/domain/user"
)

// Status values of a swap request. The client may only move a request from
// pending to accepted or rejected; completed and cancelled are reachable
// through the platform alone.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Session durations a requester can propose.
const (
	Duration30Min    = "30min"
	Duration1Hour    = "1hour"
	Duration90Min    = "1.5hours"
	Duration2Hours   = "2hours"
	DurationFlexible = "flexible"
)

// Preferred time slots.
const (
	TimeWeekdayMorning   = "weekday-morning"
	TimeWeekdayAfternoon = "weekday-afternoon"
	TimeWeekdayEvening   = "weekday-evening"
	TimeWeekendMorning   = "weekend-morning"
	TimeWeekendAfternoon = "weekend-afternoon"
	TimeWeekendEvening   = "weekend-evening"
	TimeFlexible         = "flexible"
)

// Request is a swap proposal between two users. Immutable once created
// except for status, which only the recipient changes.
type Request struct {
	ID            int64       `json:"id"`
	FromUser      user.User   `json:"from_user"`
	ToUser        user.User   `json:"to_user"`
	SkillOffered  skill.Skill `json:"skill_offered"`
	SkillWanted   skill.Skill `json:"skill_wanted"`
	Message       string      `json:"message"`
	Duration      string      `json:"duration"`
	PreferredTime string      `json:"preferred_time"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Pending reports whether the recipient can still act on the request.
func (r *Request) Pending() bool {
	return r.Status == StatusPending
}

// CanTransition reports whether a client-side transition to status is legal.
// Only pending requests transition, and only to accepted or rejected.
func (r *Request) CanTransition(status string) bool {
	if r.Status != StatusPending {
		return false
	}
	return status == StatusAccepted || status == StatusRejected
}

// Terminal reports whether the status can no longer change from the client.
func Terminal(status string) bool {
	switch status {
	case StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
