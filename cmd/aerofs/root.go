package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Ning0612/aerofs-go/internal/config"
	"github.com/Ning0612/aerofs-go/internal/domain"
	"github.com/Ning0612/aerofs-go/internal/logger"
	"github.com/Ning0612/aerofs-go/internal/state"
	"github.com/Ning0612/aerofs-go/pkg/api"
	"github.com/Ning0612/aerofs-go/pkg/auth"
)

// app carries what every command needs once the config is loaded
type app struct {
	cfgPath  string
	logLevel string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "aerofs",
		Short:         "Command-line client for an AeroFS appliance",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgPath, "config", "c", "", "config file (default: search ./, ./configs, user config dir)")
	flags.StringVar(&a.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	root.AddCommand(
		newAuthCmd(a),
		newUserCmd(a),
		newFolderCmd(a),
		newFileCmd(a),
		newHistoryCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	lc, err := cfg.ToLoggerConfig()
	if err != nil {
		return err
	}
	if err := logger.Init(lc); err != nil {
		return err
	}
	a.cfg = cfg
	logger.Get().Debug("config loaded", "hostname", cfg.Hostname, "api_version", cfg.APIVersion)
	return nil
}

func (a *app) tokenStore() *auth.FileStore {
	return auth.NewFileStore(config.ExpandPath(a.cfg.TokenPath))
}

// accessToken prefers the configured token over the saved one
func (a *app) accessToken() (string, error) {
	if a.cfg.AccessToken != "" {
		return a.cfg.AccessToken, nil
	}
	tok, err := a.tokenStore().Load()
	if errors.Is(err, auth.ErrNoToken) {
		return "", fmt.Errorf("not signed in: run 'aerofs auth exchange CODE' or set %s_ACCESS_TOKEN", config.EnvPrefix)
	}
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

func (a *app) apiClient() (*api.Client, error) {
	token, err := a.accessToken()
	if err != nil {
		return nil, err
	}
	return api.NewClient(api.Config{
		Hostname:    a.cfg.Hostname,
		AccessToken: token,
		APIVersion:  a.cfg.APIVersion,
		Scheme:      a.cfg.Scheme,
		Timeout:     a.cfg.Timeout,
	})
}

func (a *app) authClient() (*auth.Client, error) {
	if !a.cfg.HasApp() {
		return nil, fmt.Errorf("%w: app.client_id, app.client_secret and app.redirect_uri are required", domain.ErrConfigInvalid)
	}
	return auth.New(auth.Config{
		Hostname:     a.cfg.Hostname,
		ClientID:     a.cfg.App.ClientID,
		ClientSecret: a.cfg.App.ClientSecret,
		RedirectURI:  a.cfg.App.RedirectURI,
		Scheme:       a.cfg.Scheme,
	})
}

func (a *app) journal() (*state.Manager, error) {
	return state.NewManager(filepath.Clean(config.ExpandPath(a.cfg.StateDir)))
}
