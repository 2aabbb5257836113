package service

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"skillswap-cli/internal/api"
	"skillswap-cli/internal/domain/message"
	"skillswap-cli/internal/domain/skill"
	"skillswap-cli/internal/domain/swap"
	"skillswap-cli/internal/domain/user"
	interfaces "skillswap-cli/internal/interfaces/api"
	"skillswap-cli/internal/querycache"
	"skillswap-cli/pkg/logger"
	"skillswap-cli/pkg/validator"
)

// Cache key namespaces owned by the admin service.
const (
	adminUsersKey    = "admin:users"
	adminSkillsKey   = "admin:user-skills"
	adminSwapsKey    = "admin:swaps"
	adminMessagesKey = "admin:messages"
)

// AdminService is the moderation surface: user bans, skill approval,
// platform announcements and CSV exports. Every entry point goes through
// the single administrator predicate on the auth service.
type AdminService struct {
	api   interfaces.AdminAPI
	auth  *AuthService
	cache *querycache.Cache
}

func NewAdminService(apiClient interfaces.AdminAPI, auth *AuthService, cache *querycache.Cache) *AdminService {
	return &AdminService{api: apiClient, auth: auth, cache: cache}
}

// Users lists every member for moderation.
func (s *AdminService) Users(ctx context.Context) ([]user.User, error) {
	if _, err := s.auth.RequireAdministrator(ctx); err != nil {
		return nil, err
	}
	return querycache.Get(ctx, s.cache, adminUsersKey, s.api.AdminUsers)
}

// SetBanned bans or unbans a member.
func (s *AdminService) SetBanned(ctx context.Context, id int64, banned bool) error {
	if _, err := s.auth.RequireAdministrator(ctx); err != nil {
		return err
	}
	_, err := s.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		if banned {
			return nil, s.api.BanUser(ctx, id)
		}
		return nil, s.api.UnbanUser(ctx, id)
	}, adminUsersKey)
	if err != nil {
		return err
	}
	logger.Info("User %d banned=%t", id, banned)
	return nil
}

// UserSkills lists user skills for moderation.
func (s *AdminService) UserSkills(ctx context.Context) ([]skill.UserSkill, error) {
	if _, err := s.auth.RequireAdministrator(ctx); err != nil {
		return nil, err
	}
	return querycache.Get(ctx, s.cache, adminSkillsKey, s.api.AdminUserSkills)
}

// ApproveSkill approves a pending user skill.
func (s *AdminService) ApproveSkill(ctx context.Context, id int64) error {
	if _, err := s.auth.RequireAdministrator(ctx); err != nil {
		return err
	}
	_, err := s.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return nil, s.api.ApproveUserSkill(ctx, id)
	}, adminSkillsKey)
	return err
}

// RejectSkill rejects a pending user skill. A rejection reason is required
// and checked before any call goes out.
func (s *AdminService) RejectSkill(ctx context.Context, id int64, reason string) error {
	if _, err := s.auth.RequireAdministrator(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return &api.ValidationError{
			StatusCode: http.StatusBadRequest,
			Fields:     map[string]string{"rejection_reason": "rejection reason is required"},
		}
	}
	_, err := s.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return nil, s.api.RejectUserSkill(ctx, id, reason)
	}, adminSkillsKey)
	return err
}

// Swaps lists every swap request on the platform.
func (s *AdminService) Swaps(ctx context.Context) ([]swap.Request, error) {
	if _, err := s.auth.RequireAdministrator(ctx); err != nil {
		return nil, err
	}
	return querycache.Get(ctx, s.cache, adminSwapsKey, s.api.AdminSwaps)
}

// Messages lists platform announcements.
func (s *AdminService) Messages(ctx context.Context) ([]message.PlatformMessage, error) {
	if _, err := s.auth.RequireAdministrator(ctx); err != nil {
		return nil, err
	}
	return querycache.Get(ctx, s.cache, adminMessagesKey, s.api.PlatformMessages)
}

// PublishMessage creates a platform announcement.
func (s *AdminService) PublishMessage(ctx context.Context, req interfaces.PlatformMessageRequest) (*message.PlatformMessage, error) {
	if _, err := s.auth.RequireAdministrator(ctx); err != nil {
		return nil, err
	}
	if err := validator.ValidateStruct(req); err != nil {
		return nil, &api.ValidationError{
			StatusCode: http.StatusBadRequest,
			Fields:     validator.FieldMap(err),
		}
	}
	created, err := s.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return s.api.CreatePlatformMessage(ctx, req)
	}, adminMessagesKey)
	if err != nil {
		return nil, err
	}
	return created.(*message.PlatformMessage), nil
}

// UpdateMessage edits a platform announcement.
func (s *AdminService) UpdateMessage(ctx context.Context, id int64, req interfaces.PlatformMessageRequest) (*message.PlatformMessage, error) {
	if _, err := s.auth.RequireAdministrator(ctx); err != nil {
		return nil, err
	}
	if err := validator.ValidateStruct(req); err != nil {
		return nil, &api.ValidationError{
			StatusCode: http.StatusBadRequest,
			Fields:     validator.FieldMap(err),
		}
	}
	updated, err := s.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return s.api.UpdatePlatformMessage(ctx, id, req)
	}, adminMessagesKey)
	if err != nil {
		return nil, err
	}
	return updated.(*message.PlatformMessage), nil
}

// Export downloads one of the CSV exports and writes it next to the given
// directory. Returns the written file path.
func (s *AdminService) Export(ctx context.Context, kind, dir string) (string, error) {
	if _, err := s.auth.RequireAdministrator(ctx); err != nil {
		return "", err
	}
	data, name, err := s.api.ExportCSV(ctx, kind)
	if err != nil {
		return "", fmt.Errorf("export %s failed: %w", kind, err)
	}

	if dir == "" {
		dir = "."
	}
	path := dir + string(os.PathSeparator) + name
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("Exported %s to %s (%d bytes)", kind, path, len(data))
	return path, nil
}
