package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/Ning0612/aerofs-go/pkg/auth"
)

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Obtain, inspect and revoke access tokens",
	}
	cmd.AddCommand(newAuthURLCmd(a), newAuthExchangeCmd(a), newAuthRevokeCmd(a), newAuthInfoCmd(a))
	return cmd
}

func newAuthURLCmd(a *app) *cobra.Command {
	var open bool
	var stateParam string

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the authorization page for this app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authClient()
			if err != nil {
				return err
			}
			if stateParam == "" {
				stateParam = randomState()
			}
			u := c.AuthorizationURL(a.cfg.App.Scopes, stateParam)
			fmt.Fprintln(cmd.OutOrStdout(), u)

			if open {
				if err := browser.OpenURL(u); err != nil {
					return fmt.Errorf("failed to open browser: %w", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "open the page in a browser")
	cmd.Flags().StringVar(&stateParam, "state", "", "state parameter echoed back to the redirect URI (random by default)")
	return cmd
}

func randomState() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "aerofs"
	}
	return hex.EncodeToString(b)
}

func newAuthExchangeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exchange CODE",
		Short: "Trade an authorization code for a token and save it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authClient()
			if err != nil {
				return err
			}
			tok, err := c.Exchange(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if tok == nil {
				return errors.New("authorization code rejected by the server")
			}

			store := a.tokenStore()
			if err := store.Save(tok); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Token saved to %s\n", store.Path())
			return nil
		},
	}
}

// tokenArg returns the explicit token or the saved one
func (a *app) tokenArg(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return a.accessToken()
}

func newAuthRevokeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke [TOKEN]",
		Short: "Revoke a token (the saved one by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authClient()
			if err != nil {
				return err
			}
			token, err := a.tokenArg(args)
			if err != nil {
				return err
			}
			if err := c.Revoke(cmd.Context(), token); err != nil {
				return err
			}

			if len(args) == 0 {
				if err := a.tokenStore().Delete(); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token revoked")
			return nil
		},
	}
}

func newAuthInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info [TOKEN]",
		Short: "Show what a token grants",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authClient()
			if err != nil {
				return err
			}
			token, err := a.tokenArg(args)
			if err != nil {
				return err
			}
			info, err := c.Introspect(cmd.Context(), token)
			if err != nil {
				return err
			}
			printTokenInfo(cmd, info)
			return nil
		},
	}
}

func printTokenInfo(cmd *cobra.Command, info *auth.TokenInfo) {
	mdid := info.MDID
	if mdid == "" {
		mdid = "-"
	}
	keyValues(cmd.OutOrStdout(), [][2]any{
		{"Principal", info.Principal.Name},
		{"Scopes", strings.Join(info.Scopes, ", ")},
		{"Expires in", fmt.Sprintf("%ds", info.ExpiresIn)},
		{"Device", mdid},
	})
}
