package mock

import (
	"context"
	"fmt"

	"skillswap-cli/internal/domain/message"
	"skillswap-cli/internal/domain/skill"
	"skillswap-cli/internal/domain/swap"
	"skillswap-cli/internal/domain/user"
	interfaces "skillswap-cli/internal/interfaces/api"
)

// Client is an in-memory stand-in for the real API client. Every call is
// counted by method name, and Fail can force the next calls to error, which
// is how the rollback paths get exercised.
type Client struct {
	LoginUser   *user.User
	ProfileUser *user.User
	UsersPage   interfaces.Paged[user.User]
	Catalog     []skill.Skill
	Mine        []skill.UserSkill
	Sent        []swap.Request
	Received    []swap.Request
	Messages    []message.PlatformMessage

	Fail  error
	Calls map[string]int

	nextID int64
}

var (
	_ interfaces.AuthAPI  = (*Client)(nil)
	_ interfaces.UserAPI  = (*Client)(nil)
	_ interfaces.SkillAPI = (*Client)(nil)
	_ interfaces.SwapAPI  = (*Client)(nil)
	_ interfaces.AdminAPI = (*Client)(nil)
)

func NewClient() *Client {
	return &Client{Calls: make(map[string]int), nextID: 1000}
}

func (c *Client) record(method string) error {
	c.Calls[method]++
	return c.Fail
}

// CallCount reports how many times a method was invoked.
func (c *Client) CallCount(method string) int {
	return c.Calls[method]
}

// ClearSession satisfies the session-resetter wiring; it only counts the call.
func (c *Client) ClearSession() error {
	c.Calls["ClearSession"]++
	return nil
}

// TotalCalls reports how many API calls were issued in total.
func (c *Client) TotalCalls() int {
	total := 0
	for _, n := range c.Calls {
		total += n
	}
	return total
}

func (c *Client) Register(_ context.Context, req interfaces.RegisterRequest) (*user.User, error) {
	if err := c.record("Register"); err != nil {
		return nil, err
	}
	c.nextID++
	return &user.User{ID: c.nextID, Email: req.Email, Username: req.Username,
		FirstName: req.FirstName, LastName: req.LastName, Role: user.RoleUser}, nil
}

func (c *Client) Login(_ context.Context, req interfaces.LoginRequest) (*user.User, error) {
	if err := c.record("Login"); err != nil {
		return nil, err
	}
	if c.LoginUser == nil || c.LoginUser.Email != req.Email {
		return nil, fmt.Errorf("invalid credentials")
	}
	u := *c.LoginUser
	return &u, nil
}

func (c *Client) Logout(_ context.Context) error {
	return c.record("Logout")
}

func (c *Client) CheckAuth(_ context.Context) (*interfaces.AuthCheck, error) {
	if err := c.record("CheckAuth"); err != nil {
		return nil, err
	}
	if c.LoginUser == nil {
		return &interfaces.AuthCheck{}, nil
	}
	u := *c.LoginUser
	return &interfaces.AuthCheck{Authenticated: true, User: &u}, nil
}

func (c *Client) Profile(_ context.Context) (*user.User, error) {
	if err := c.record("Profile"); err != nil {
		return nil, err
	}
	if c.ProfileUser == nil {
		c.ProfileUser = c.LoginUser
	}
	u := *c.ProfileUser
	return &u, nil
}

func (c *Client) UpdateProfile(_ context.Context, req interfaces.ProfileUpdate) (*user.User, error) {
	if err := c.record("UpdateProfile"); err != nil {
		return nil, err
	}
	u := *c.ProfileUser
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Location != nil {
		u.Location = *req.Location
	}
	c.ProfileUser = &u
	return &u, nil
}

func (c *Client) UploadAvatar(_ context.Context, fileName string, _ []byte) (string, error) {
	if err := c.record("UploadAvatar"); err != nil {
		return "", err
	}
	return "/media/avatars/" + fileName, nil
}

func (c *Client) DeleteAvatar(_ context.Context) error {
	return c.record("DeleteAvatar")
}

func (c *Client) Users(_ context.Context, search string, page int) (*interfaces.Paged[user.User], error) {
	if err := c.record("Users"); err != nil {
		return nil, err
	}
	p := c.UsersPage
	return &p, nil
}

func (c *Client) UserDetail(_ context.Context, id int64) (*user.User, error) {
	if err := c.record("UserDetail"); err != nil {
		return nil, err
	}
	for i := range c.UsersPage.Results {
		if c.UsersPage.Results[i].ID == id {
			u := c.UsersPage.Results[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %d not found", id)
}

func (c *Client) Skills(_ context.Context) ([]skill.Skill, error) {
	if err := c.record("Skills"); err != nil {
		return nil, err
	}
	return append([]skill.Skill(nil), c.Catalog...), nil
}

func (c *Client) UserSkills(_ context.Context) ([]skill.UserSkill, error) {
	if err := c.record("UserSkills"); err != nil {
		return nil, err
	}
	return append([]skill.UserSkill(nil), c.Mine...), nil
}

func (c *Client) AddUserSkill(_ context.Context, req interfaces.AddUserSkillRequest) (*skill.UserSkill, error) {
	if err := c.record("AddUserSkill"); err != nil {
		return nil, err
	}
	c.nextID++
	us := skill.UserSkill{
		ID:               c.nextID,
		SkillName:        req.SkillName,
		SkillType:        req.SkillType,
		ProficiencyLevel: req.ProficiencyLevel,
		Status:           skill.StatusPending,
	}
	c.Mine = append(c.Mine, us)
	return &us, nil
}

func (c *Client) DeleteUserSkill(_ context.Context, id int64) error {
	if err := c.record("DeleteUserSkill"); err != nil {
		return err
	}
	kept := c.Mine[:0]
	for _, us := range c.Mine {
		if us.ID != id {
			kept = append(kept, us)
		}
	}
	c.Mine = kept
	return nil
}

func (c *Client) SwapRequests(_ context.Context, status string) ([]swap.Request, error) {
	if err := c.record("SwapRequests"); err != nil {
		return nil, err
	}
	return filterByStatus(c.Sent, status), nil
}

func (c *Client) CreateSwapRequest(_ context.Context, req interfaces.CreateSwapRequest) (*swap.Request, error) {
	if err := c.record("CreateSwapRequest"); err != nil {
		return nil, err
	}
	c.nextID++
	r := swap.Request{
		ID:            c.nextID,
		ToUser:        user.User{ID: req.ToUserID},
		Message:       req.Message,
		Duration:      req.Duration,
		PreferredTime: req.PreferredTime,
		Status:        swap.StatusPending,
	}
	c.Sent = append(c.Sent, r)
	return &r, nil
}

func (c *Client) ReceivedRequests(_ context.Context, status string) ([]swap.Request, error) {
	if err := c.record("ReceivedRequests"); err != nil {
		return nil, err
	}
	return filterByStatus(c.Received, status), nil
}

func (c *Client) UpdateRequestStatus(_ context.Context, id int64, status string) (*swap.Request, error) {
	if err := c.record("UpdateRequestStatus"); err != nil {
		return nil, err
	}
	for i := range c.Received {
		if c.Received[i].ID == id {
			c.Received[i].Status = status
			r := c.Received[i]
			return &r, nil
		}
	}
	return nil, fmt.Errorf("request %d not found", id)
}

func (c *Client) AdminUsers(_ context.Context) ([]user.User, error) {
	if err := c.record("AdminUsers"); err != nil {
		return nil, err
	}
	return append([]user.User(nil), c.UsersPage.Results...), nil
}

func (c *Client) BanUser(_ context.Context, id int64) error {
	return c.record("BanUser")
}

func (c *Client) UnbanUser(_ context.Context, id int64) error {
	return c.record("UnbanUser")
}

func (c *Client) AdminUserSkills(_ context.Context) ([]skill.UserSkill, error) {
	if err := c.record("AdminUserSkills"); err != nil {
		return nil, err
	}
	return append([]skill.UserSkill(nil), c.Mine...), nil
}

func (c *Client) ApproveUserSkill(_ context.Context, id int64) error {
	return c.record("ApproveUserSkill")
}

func (c *Client) RejectUserSkill(_ context.Context, id int64, reason string) error {
	return c.record("RejectUserSkill")
}

func (c *Client) AdminSwaps(_ context.Context) ([]swap.Request, error) {
	if err := c.record("AdminSwaps"); err != nil {
		return nil, err
	}
	return append([]swap.Request(nil), c.Received...), nil
}

func (c *Client) PlatformMessages(_ context.Context) ([]message.PlatformMessage, error) {
	if err := c.record("PlatformMessages"); err != nil {
		return nil, err
	}
	return append([]message.PlatformMessage(nil), c.Messages...), nil
}

func (c *Client) CreatePlatformMessage(_ context.Context, req interfaces.PlatformMessageRequest) (*message.PlatformMessage, error) {
	if err := c.record("CreatePlatformMessage"); err != nil {
		return nil, err
	}
	c.nextID++
	m := message.PlatformMessage{ID: c.nextID, Title: req.Title, Body: req.Body, IsActive: true}
	c.Messages = append(c.Messages, m)
	return &m, nil
}

func (c *Client) UpdatePlatformMessage(_ context.Context, id int64, req interfaces.PlatformMessageRequest) (*message.PlatformMessage, error) {
	if err := c.record("UpdatePlatformMessage"); err != nil {
		return nil, err
	}
	for i := range c.Messages {
		if c.Messages[i].ID == id {
			c.Messages[i].Title = req.Title
			c.Messages[i].Body = req.Body
			m := c.Messages[i]
			return &m, nil
		}
	}
	return nil, fmt.Errorf("message %d not found", id)
}

func (c *Client) ExportCSV(_ context.Context, kind string) ([]byte, string, error) {
	if err := c.record("ExportCSV"); err != nil {
		return nil, "", err
	}
	return []byte("id,name\n"), kind + ".csv", nil
}

func filterByStatus(reqs []swap.Request, status string) []swap.Request {
	if status == "" {
		return append([]swap.Request(nil), reqs...)
	}
	out := make([]swap.Request, 0, len(reqs))
	for _, r := range reqs {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}
