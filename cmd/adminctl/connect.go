package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/unifiedui/admin-gateway/internal/config"
	"github.com/unifiedui/admin-gateway/internal/core/vault"
	dotenvvault "github.com/unifiedui/admin-gateway/internal/infrastructure/vault/dotenv"
	"github.com/unifiedui/admin-gateway/internal/pkg/logging"
	"github.com/unifiedui/admin-gateway/internal/services/calllog"
	"github.com/unifiedui/admin-gateway/internal/services/gateway"
)

type connectOptions struct {
	adminURL     string
	dashboardURL string
	username     string
	passwordRef  string
	logLevel     string
}

// session is a signed-in gateway for one command run.
type session struct {
	gateway  *gateway.Gateway
	client   calllog.Client
	pageSize int
	logger   zerolog.Logger
}

// connect resolves settings from flags over the environment, then signs in.
func connect(ctx context.Context, opts *connectOptions, logOut io.Writer) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	upstream := cfg.Upstream
	if opts.adminURL != "" {
		upstream.AdminURL = opts.adminURL
	}
	if opts.dashboardURL != "" {
		upstream.DashboardURL = opts.dashboardURL
	}
	if opts.username != "" {
		upstream.Username = opts.username
	}
	if opts.passwordRef != "" {
		upstream.PasswordRef = opts.passwordRef
	}

	logger := logging.SetupWithWriter(logging.Config{Level: opts.logLevel, Format: "console"}, logOut)

	gw, err := gateway.New(&gateway.Config{
		AdminURL:     upstream.AdminURL,
		DashboardURL: upstream.DashboardURL,
		RefreshPath:  upstream.RefreshPath,
		LoginPath:    upstream.LoginPath,
		LogoutPath:   upstream.LogoutPath,
		MePath:       upstream.MePath,
		Timeout:      upstream.Timeout,
		Logger:       &logger,
	})
	if err != nil {
		return nil, err
	}

	creds, err := vault.ResolveCredentials(ctx, dotenvvault.NewVault(nil), upstream.Username, upstream.PasswordRef)
	if err != nil {
		return nil, err
	}
	if _, err := gw.Login(ctx, creds); err != nil {
		return nil, fmt.Errorf("failed to sign in as %s: %w", creds.Username, err)
	}

	client, err := calllog.NewClient(gw)
	if err != nil {
		return nil, err
	}

	return &session{
		gateway:  gw,
		client:   client,
		pageSize: cfg.Views.PageSize,
		logger:   logger,
	}, nil
}

// close ends the upstream session.
func (s *session) close(ctx context.Context) {
	if err := s.gateway.Logout(ctx); err != nil {
		s.logger.Debug().Err(err).Msg("logout failed")
	}
}
