package skill

import "time"

// Catalog categories.
const (
	CategoryProgramming = "programming"
	CategoryDesign      = "design"
	CategoryMarketing   = "marketing"
	CategoryBusiness    = "business"
	CategoryData        = "data"
	CategoryMobile      = "mobile"
	CategoryOther       = "other"
)

// Roles a skill can play on a profile.
const (
	RoleOffered = "offered"
	RoleWanted  = "wanted"
)

// Moderation states for a user skill.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Skill is a catalog entry. Read-only from the client's perspective.
type Skill struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// UserSkill joins a user to a catalog skill with a role tag.
// A (user, skill, role) triple is unique on the server.
type UserSkill struct {
	ID               int64     `json:"id"`
	SkillID          int64     `json:"skill"`
	SkillName        string    `json:"skill_name"`
	SkillCategory    string    `json:"skill_category"`
	SkillType        string    `json:"skill_type"`
	ProficiencyLevel string    `json:"proficiency_level"`
	Status           string    `json:"status,omitempty"`
	RejectionReason  string    `json:"rejection_reason,omitempty"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
}

// ValidRole reports whether role is one of the two profile roles.
func ValidRole(role string) bool {
	return role == RoleOffered || role == RoleWanted
}
