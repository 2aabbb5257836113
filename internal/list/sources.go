package list

import (
	"context"
	"fmt"

	"skillswap-cli/internal/domain/user"
	interfaces "skillswap-cli/internal/interfaces/api"
	"skillswap-cli/internal/querycache"
)

// LocalSource filters and pages a full in-memory member list. Used where a
// page already holds the whole result set.
type LocalSource struct {
	users []user.User
}

func NewLocalSource(users []user.User) *LocalSource {
	return &LocalSource{users: users}
}

func (s *LocalSource) Page(_ context.Context, term string, page, pageSize int) ([]user.User, int, error) {
	filtered := make([]user.User, 0, len(s.users))
	for i := range s.users {
		if Matches(&s.users[i], term) {
			filtered = append(filtered, s.users[i])
		}
	}

	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return nil, len(filtered), nil
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], len(filtered), nil
}

// RemoteSource delegates search and paging to the user-list endpoint,
// reading through the query cache so repeat views of one page coalesce and
// reuse fresh results.
type RemoteSource struct {
	api   interfaces.UserAPI
	cache *querycache.Cache
}

func NewRemoteSource(api interfaces.UserAPI, cache *querycache.Cache) *RemoteSource {
	return &RemoteSource{api: api, cache: cache}
}

type userPageParams struct {
	Search string `json:"search"`
	Page   int    `json:"page"`
}

// UsersKeyPrefix is the cache namespace for browse pages.
const UsersKeyPrefix = "users"

func (s *RemoteSource) Page(ctx context.Context, term string, page, pageSize int) ([]user.User, int, error) {
	key := querycache.Key(UsersKeyPrefix, userPageParams{Search: term, Page: page})
	paged, err := querycache.Get(ctx, s.cache, key, func(ctx context.Context) (*interfaces.Paged[user.User], error) {
		return s.api.Users(ctx, term, page)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load members: %w", err)
	}
	return paged.Results, paged.Count, nil
}
