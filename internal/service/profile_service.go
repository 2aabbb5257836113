package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"skillswap-cli/internal/domain/user"
	"skillswap-cli/internal/form"
	interfaces "skillswap-cli/internal/interfaces/api"
	"skillswap-cli/internal/querycache"
	"skillswap-cli/pkg/logger"
)

// ProfileService reads and edits the current user's profile through the
// form controller, so local rule failures and server field rejections render
// the same way.
type ProfileService struct {
	api    interfaces.AuthAPI
	skills *SkillSetService
	cache  *querycache.Cache
}

func NewProfileService(apiClient interfaces.AuthAPI, skills *SkillSetService, cache *querycache.Cache) *ProfileService {
	return &ProfileService{api: apiClient, skills: skills, cache: cache}
}

// Get fetches the current profile through the cache.
func (s *ProfileService) Get(ctx context.Context) (*user.User, error) {
	u, err := querycache.Get(ctx, s.cache, authProfileKey, s.api.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return u, nil
}

// EditForm builds an edit form seeded with the current profile values.
func (s *ProfileService) EditForm(u *user.User) *form.Form {
	return form.NewWith(map[string]string{
		"username":         u.Username,
		"first_name":       u.FirstName,
		"last_name":        u.LastName,
		"bio":              u.Bio,
		"location":         u.Location,
		"availability":     u.Availability,
		"experience_level": u.ExperienceLevel,
		"response_time":    u.ResponseTime,
	})
}

// Submit validates the edit form and applies it. A profile must keep at
// least one offered and one wanted skill to stay discoverable; that rule is
// checked against the attached skill collections, and its failure shows up
// inline like any other field error.
func (s *ProfileService) Submit(ctx context.Context, f *form.Form) (*user.User, error) {
	ok := f.Validate(
		form.Required("first_name", "first name is required"),
		form.Required("last_name", "last name is required"),
	)

	offered, wanted, err := s.skills.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	if offered == 0 {
		f.SetError("skills_offered", "At least one skill offered is required")
		ok = false
	}
	if wanted == 0 {
		f.SetError("skills_wanted", "At least one skill wanted is required")
		ok = false
	}
	if !ok {
		return nil, errors.New("profile form has errors")
	}

	update := interfaces.ProfileUpdate{
		Username:        optional(f, "username"),
		FirstName:       optional(f, "first_name"),
		LastName:        optional(f, "last_name"),
		Bio:             optional(f, "bio"),
		Location:        optional(f, "location"),
		Availability:    optional(f, "availability"),
		ExperienceLevel: optional(f, "experience_level"),
		ResponseTime:    optional(f, "response_time"),
	}
	if !f.ValidateStruct(update) {
		return nil, errors.New("profile form has errors")
	}

	f.BeginSubmit()
	defer f.EndSubmit()

	updated, err := s.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return s.api.UpdateProfile(ctx, update)
	}, authProfileKey, authCheckKey)
	if err != nil {
		f.MergeServerErrors(err)
		return nil, err
	}

	logger.Info("Profile updated")
	return updated.(*user.User), nil
}

// UploadAvatar reads an image from disk and uploads it as the new avatar.
// Size and type limits are enforced before any call goes out.
func (s *ProfileService) UploadAvatar(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	url, err := s.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return s.api.UploadAvatar(ctx, filepath.Base(path), content)
	}, authProfileKey)
	if err != nil {
		return "", err
	}

	logger.Info("Avatar updated")
	return url.(string), nil
}

// RemoveAvatar deletes the current avatar.
func (s *ProfileService) RemoveAvatar(ctx context.Context) error {
	_, err := s.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return nil, s.api.DeleteAvatar(ctx)
	}, authProfileKey)
	return err
}

func optional(f *form.Form, name string) *string {
	v := f.Value(name)
	if v == "" {
		return nil
	}
	return &v
}
