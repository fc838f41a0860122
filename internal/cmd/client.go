package cmd

import (
	"errors"
	"fmt"

	"ledgerdesk/internal/api"
	"ledgerdesk/internal/config"
	"ledgerdesk/internal/session"
)

// errNotLoggedIn is returned by commands that need a stored token.
var errNotLoggedIn = errors.New("not logged in: run `ledgerdesk login` first")

// newClient builds an API client that reads the token from store on every
// request.
func newClient(cfg *config.Config, store *session.Store) (*api.Client, error) {
	opts := []api.Option{api.WithTimeout(cfg.RequestTimeout())}
	if store != nil {
		opts = append(opts, api.WithTokenSource(store))
	}
	client, err := api.New(cfg.API.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}
	return client, nil
}

// loggedInClient is newClient for commands that cannot run without a
// session.
func loggedInClient(cfg *config.Config) (*api.Client, error) {
	store := session.NewStore(cfg.API.TokenFile)
	if _, err := store.Load(); err != nil {
		if errors.Is(err, session.ErrNoToken) {
			return nil, errNotLoggedIn
		}
		return nil, err
	}
	return newClient(cfg, store)
}
