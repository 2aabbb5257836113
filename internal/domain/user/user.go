package user

import (
	"strings"
	"time"
)

// Availability buckets a user can pick for their profile.
const (
	AvailabilityWeekdays = "weekdays"
	AvailabilityWeekends = "weekends"
	AvailabilityEvenings = "evenings"
	AvailabilityMornings = "mornings"
	AvailabilityFlexible = "flexible"
)

// Experience levels.
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
	ExperienceExpert       = "expert"
)

// Response-time buckets.
const (
	ResponseWithin1Hour  = "1hour"
	ResponseWithin3Hours = "3hours"
	ResponseWithin24     = "24hours"
	ResponseWithin3Days  = "2-3days"
)

// Roles returned by the API.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a marketplace member as returned by the API. Profile attributes
// are mutated only through profile update; identity and stats are read-only.
type User struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Bio             string    `json:"bio"`
	Location        string    `json:"location"`
	Avatar          string    `json:"avatar"`
	Availability    string    `json:"availability"`
	ExperienceLevel string    `json:"experience_level"`
	ResponseTime    string    `json:"response_time"`
	Rating          float64   `json:"rating"`
	CompletedSwaps  int       `json:"completed_swaps"`
	SkillsOffered   []string  `json:"skills_offered"`
	SkillsWanted    []string  `json:"skills_wanted"`
	IsAdmin         bool      `json:"is_admin"`
	IsStaff         bool      `json:"is_staff"`
	IsSuperuser     bool      `json:"is_superuser"`
	IsBanned        bool      `json:"is_banned"`
	Role            string    `json:"role"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Identity is the authenticated session identity. Administrator is computed
// once at login and reused everywhere instead of re-reading the raw flags.
type Identity struct {
	User          *User
	Administrator bool
}

// IsAdministrator collapses the ad hoc role flags the API returns into a
// single authorization predicate.
func IsAdministrator(u *User) bool {
	if u == nil {
		return false
	}
	return u.Role == RoleAdmin || u.IsAdmin || u.IsStaff || u.IsSuperuser
}

// NewIdentity builds a session identity from an authenticated user.
func NewIdentity(u *User) *Identity {
	return &Identity{
		User:          u,
		Administrator: IsAdministrator(u),
	}
}
