package service

import (
	"context"
	"fmt"
	"strings"

	"skillswap-cli/internal/domain/skill"
	interfaces "skillswap-cli/internal/interfaces/api"
	"skillswap-cli/internal/querycache"
	"skillswap-cli/pkg/logger"
)

// Cache key namespaces owned by the skill set editor.
const (
	skillCatalogKey = "skills:catalog"
	userSkillsKey   = "skills:mine"
)

// SkillSetService manages the offered/wanted skill collections attached to
// the current profile. Adds deduplicate against what is already attached in
// that role, so a (user, skill, role) triple never appears twice and a
// duplicate add issues no network call.
type SkillSetService struct {
	api   interfaces.SkillAPI
	cache *querycache.Cache

	attached []skill.UserSkill
	loaded   bool
}

func NewSkillSetService(apiClient interfaces.SkillAPI, cache *querycache.Cache) *SkillSetService {
	return &SkillSetService{api: apiClient, cache: cache}
}

// Catalog returns the full skill catalog through the cache.
func (s *SkillSetService) Catalog(ctx context.Context) ([]skill.Skill, error) {
	skills, err := querycache.Get(ctx, s.cache, skillCatalogKey, s.api.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to load skill catalog: %w", err)
	}
	return skills, nil
}

// Attached returns the current user's skills, loading them on first use.
func (s *SkillSetService) Attached(ctx context.Context) ([]skill.UserSkill, error) {
	if s.loaded {
		return s.attached, nil
	}
	attached, err := querycache.Get(ctx, s.cache, userSkillsKey, s.api.UserSkills)
	if err != nil {
		return nil, fmt.Errorf("failed to load your skills: %w", err)
	}
	s.attached = attached
	s.loaded = true
	return s.attached, nil
}

// Has reports whether a skill is already attached in the given role.
func (s *SkillSetService) Has(name, role string) bool {
	for _, us := range s.attached {
		if us.SkillType == role && strings.EqualFold(us.SkillName, name) {
			return true
		}
	}
	return false
}

// Add attaches a skill in the given role. Adding a skill already present in
// that role is a silent no-op: no duplicate entry, no network call. On
// success the new entry is appended to local state and the cached skill
// lists are invalidated.
func (s *SkillSetService) Add(ctx context.Context, name, role, proficiency string) (*skill.UserSkill, error) {
	if !skill.ValidRole(role) {
		return nil, fmt.Errorf("invalid skill role %q", role)
	}
	if _, err := s.Attached(ctx); err != nil {
		return nil, err
	}
	if s.Has(name, role) {
		logger.Debug("Skill %q already attached as %s, skipping", name, role)
		return nil, nil
	}

	created, err := s.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return s.api.AddUserSkill(ctx, interfaces.AddUserSkillRequest{
			SkillName:        name,
			SkillType:        role,
			ProficiencyLevel: proficiency,
		})
	}, userSkillsKey, authProfileKey)
	if err != nil {
		return nil, err
	}

	us := created.(*skill.UserSkill)
	s.attached = append(s.attached, *us)
	logger.Info("Attached skill %q as %s", name, role)
	return us, nil
}

// Remove detaches a user skill by id. Local state drops the entry only
// after the server confirms the delete.
func (s *SkillSetService) Remove(ctx context.Context, userSkillID int64) error {
	if _, err := s.Attached(ctx); err != nil {
		return err
	}

	_, err := s.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return nil, s.api.DeleteUserSkill(ctx, userSkillID)
	}, userSkillsKey, authProfileKey)
	if err != nil {
		return err
	}

	kept := s.attached[:0]
	for _, us := range s.attached {
		if us.ID != userSkillID {
			kept = append(kept, us)
		}
	}
	s.attached = kept
	logger.Info("Removed user skill %d", userSkillID)
	return nil
}

// Available returns the catalog minus whatever is already attached in the
// given role. Recomputed from current state on every call, so it tracks
// both catalog and attachment changes.
func (s *SkillSetService) Available(ctx context.Context, role string) ([]skill.Skill, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.Attached(ctx); err != nil {
		return nil, err
	}

	out := make([]skill.Skill, 0, len(catalog))
	for _, sk := range catalog {
		if !s.Has(sk.Name, role) {
			out = append(out, sk)
		}
	}
	return out, nil
}

// CountByRole tallies attached skills per role, used by the profile form's
// at-least-one-of-each rule.
func (s *SkillSetService) CountByRole(ctx context.Context) (offered, wanted int, err error) {
	attached, err := s.Attached(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, us := range attached {
		switch us.SkillType {
		case skill.RoleOffered:
			offered++
		case skill.RoleWanted:
			wanted++
		}
	}
	return offered, wanted, nil
}
