package cmd

import (
	"errors"
	"fmt"

	"skillswap-cli/internal/api"
	"skillswap-cli/internal/config"
	"skillswap-cli/internal/querycache"
	"skillswap-cli/internal/service"
	"skillswap-cli/internal/session"
	"skillswap-cli/pkg/logger"
)

// App wires the client, cache and services together and is passed explicitly
// to everything that needs to touch cached identity. Nothing reaches into
// ambient global state.
type App struct {
	Client  *api.Client
	Cache   *querycache.Cache
	Auth    *service.AuthService
	Profile *service.ProfileService
	Skills  *service.SkillSetService
	Swaps   *service.SwapService
	Admin   *service.AdminService
}

func newApp() (*App, error) {
	cfg := config.Get()

	store := session.NewStore(cfg.Session.File)
	client, err := api.NewClient(api.Options{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout(),
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
		Session:           store,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build API client: %w", err)
	}

	cache := querycache.New(querycache.Options{
		StaleAfter:   cfg.Cache.StaleAfter(),
		EvictAfter:   cfg.Cache.EvictAfter(),
		RetryCount:   cfg.Cache.RetryCount,
		RetryBackoff: cfg.Cache.RetryBackoff(),
		Retryable:    api.IsRetryable,
	})

	auth := service.NewAuthService(client, cache, client)
	skills := service.NewSkillSetService(client, cache)

	return &App{
		Client:  client,
		Cache:   cache,
		Auth:    auth,
		Profile: service.NewProfileService(client, skills, cache),
		Skills:  skills,
		Swaps:   service.NewSwapService(client, cache),
		Admin:   service.NewAdminService(client, auth, cache),
	}, nil
}

func (a *App) Close() {
	a.Cache.Close()
}

// renderError turns the error taxonomy into what the user sees. Pages never
// crash on a failed load; they fall back to a retry hint.
func (a *App) renderError(what string, err error) {
	var ve *api.ValidationError
	var ae *api.AuthError
	var ne *api.NetworkError
	var se *api.ServerError

	switch {
	case errors.As(err, &ve):
		for field, msg := range ve.Fields {
			fmt.Printf("  %s: %s\n", field, msg)
		}
	case errors.As(err, &ae):
		if a.Auth.HandleAuthError(err) {
			fmt.Println("Your session has expired. Please sign in again with 'skillswap auth login'.")
		} else {
			fmt.Println("You do not have permission to do that.")
		}
	case errors.As(err, &ne):
		fmt.Printf("Network problem while %s. Check your connection and try again.\n", what)
	case errors.As(err, &se):
		logger.Error("Server error while %s: %v", what, err)
		fmt.Printf("Something went wrong while %s. Please try again later.\n", what)
	default:
		fmt.Printf("Error %s: %v\n", what, err)
	}
}
