package interfaces

import (
	"context"

	"skillswap-cli/internal/domain/message"
	"skillswap-cli/internal/domain/skill"
	"skillswap-cli/internal/domain/swap"
	"skillswap-cli/internal/domain/user"
)

// Paged is the count/next/previous/results envelope paginated endpoints use.
type Paged[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
	Results  []T    `json:"results"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Username        string `json:"username" validate:"required,min=3,max=50"`
	FirstName       string `json:"first_name" validate:"required,max=50"`
	LastName        string `json:"last_name" validate:"required,max=50"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

// LoginRequest authenticates with the API. The declared role never goes on
// the wire; the auth service compares it against the server-returned role.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthCheck is the GET /auth/check response.
type AuthCheck struct {
	Authenticated bool       `json:"authenticated"`
	User          *user.User `json:"user,omitempty"`
}

// ProfileUpdate is a partial profile edit; nil fields are left untouched.
type ProfileUpdate struct {
	Username        *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	FirstName       *string `json:"first_name,omitempty" validate:"omitempty,max=50"`
	LastName        *string `json:"last_name,omitempty" validate:"omitempty,max=50"`
	Bio             *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Location        *string `json:"location,omitempty" validate:"omitempty,max=100"`
	Availability    *string `json:"availability,omitempty" validate:"omitempty,oneof=weekdays weekends evenings mornings flexible"`
	ExperienceLevel *string `json:"experience_level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	ResponseTime    *string `json:"response_time,omitempty" validate:"omitempty,oneof=1hour 3hours 24hours 2-3days"`
}

// AddUserSkillRequest attaches a catalog skill to the current profile.
type AddUserSkillRequest struct {
	SkillName        string `json:"skill_name" validate:"required"`
	SkillType        string `json:"skill_type" validate:"required,oneof=offered wanted"`
	ProficiencyLevel string `json:"proficiency_level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced expert"`
}

// CreateSwapRequest proposes a swap to another user.
type CreateSwapRequest struct {
	ToUserID       int64  `json:"to_user_id" validate:"required,gt=0"`
	SkillOfferedID int64  `json:"skill_offered_id" validate:"required,gt=0"`
	SkillWantedID  int64  `json:"skill_wanted_id" validate:"required,gt=0"`
	Message        string `json:"message" validate:"required"`
	Duration       string `json:"duration" validate:"required,oneof=30min 1hour 1.5hours 2hours flexible"`
	PreferredTime  string `json:"preferred_time" validate:"required,oneof=weekday-morning weekday-afternoon weekday-evening weekend-morning weekend-afternoon weekend-evening flexible"`
}

// PlatformMessageRequest creates or updates a platform announcement.
type PlatformMessageRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Body     string `json:"body" validate:"required"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// AuthAPI covers registration, session lifecycle and the current profile.
type AuthAPI interface {
	Register(ctx context.Context, req RegisterRequest) (*user.User, error)
	Login(ctx context.Context, req LoginRequest) (*user.User, error)
	Logout(ctx context.Context) error
	CheckAuth(ctx context.Context) (*AuthCheck, error)
	Profile(ctx context.Context) (*user.User, error)
	UpdateProfile(ctx context.Context, req ProfileUpdate) (*user.User, error)
	UploadAvatar(ctx context.Context, fileName string, content []byte) (string, error)
	DeleteAvatar(ctx context.Context) error
}

// UserAPI browses other members.
type UserAPI interface {
	Users(ctx context.Context, search string, page int) (*Paged[user.User], error)
	UserDetail(ctx context.Context, id int64) (*user.User, error)
}

// SkillAPI covers the catalog and the current user's attached skills.
type SkillAPI interface {
	Skills(ctx context.Context) ([]skill.Skill, error)
	UserSkills(ctx context.Context) ([]skill.UserSkill, error)
	AddUserSkill(ctx context.Context, req AddUserSkillRequest) (*skill.UserSkill, error)
	DeleteUserSkill(ctx context.Context, id int64) error
}

// SwapAPI covers the swap request lifecycle.
type SwapAPI interface {
	SwapRequests(ctx context.Context, status string) ([]swap.Request, error)
	CreateSwapRequest(ctx context.Context, req CreateSwapRequest) (*swap.Request, error)
	ReceivedRequests(ctx context.Context, status string) ([]swap.Request, error)
	UpdateRequestStatus(ctx context.Context, id int64, status string) (*swap.Request, error)
}

// AdminAPI is the moderation namespace.
type AdminAPI interface {
	AdminUsers(ctx context.Context) ([]user.User, error)
	BanUser(ctx context.Context, id int64) error
	UnbanUser(ctx context.Context, id int64) error
	AdminUserSkills(ctx context.Context) ([]skill.UserSkill, error)
	ApproveUserSkill(ctx context.Context, id int64) error
	RejectUserSkill(ctx context.Context, id int64, reason string) error
	AdminSwaps(ctx context.Context) ([]swap.Request, error)
	PlatformMessages(ctx context.Context) ([]message.PlatformMessage, error)
	CreatePlatformMessage(ctx context.Context, req PlatformMessageRequest) (*message.PlatformMessage, error)
	UpdatePlatformMessage(ctx context.Context, id int64, req PlatformMessageRequest) (*message.PlatformMessage, error)
	ExportCSV(ctx context.Context, kind string) ([]byte, string, error)
}
