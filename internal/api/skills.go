package api

import (
	"context"
	"fmt"
	"net/http"

	"skillswap-cli/internal/domain/skill"
	interfaces "skillswap-cli/internal/interfaces/api"
)

var _ interfaces.SkillAPI = (*Client)(nil)

// Skills fetches the skill catalog.
func (c *Client) Skills(ctx context.Context) ([]skill.Skill, error) {
	var out []skill.Skill
	if err := c.do(ctx, http.MethodGet, "/skills/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UserSkills fetches the current user's attached skills, both roles.
func (c *Client) UserSkills(ctx context.Context) ([]skill.UserSkill, error) {
	var out []skill.UserSkill
	if err := c.do(ctx, http.MethodGet, "/skills/user-skills/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddUserSkill attaches a skill to the current profile in the given role.
func (c *Client) AddUserSkill(ctx context.Context, req interfaces.AddUserSkillRequest) (*skill.UserSkill, error) {
	var out skill.UserSkill
	if err := c.do(ctx, http.MethodPost, "/skills/user-skills/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUserSkill detaches a skill from the current profile.
func (c *Client) DeleteUserSkill(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/skills/user-skills/%d/delete/", id), nil, nil, nil)
}
