package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Ning0612/aerofs-go/pkg/sdk"
)

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Inspect user accounts",
	}
	cmd.AddCommand(newUserShowCmd(a))
	return cmd
}

func newUserShowCmd(a *app) *cobra.Command {
	var devices bool

	cmd := &cobra.Command{
		Use:   "show EMAIL",
		Short: "Show a user's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.apiClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			u := sdk.NewUser(client, args[0])

			if err := u.Load(ctx); err != nil {
				return err
			}
			first, _ := u.FirstName(ctx)
			last, _ := u.LastName(ctx)
			shares, sharesErr := u.Shares(ctx)

			keyValues(cmd.OutOrStdout(), [][2]any{
				{"Email", u.Email()},
				{"Name", fmt.Sprintf("%s %s", first, last)},
				{"Shares", valueOr(len(shares), sharesErr)},
			})

			if !devices {
				return nil
			}
			list, err := u.Devices(ctx)
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout(), "ID", "Name", "OS", "Installed")
			for _, d := range list {
				name, _ := d.Name(ctx)
				osFamily, _ := d.OSFamily(ctx)
				installed, _ := d.InstallDate(ctx)
				t.AppendRow(table.Row{d.ID(), name, osFamily, formatTime(installed)})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&devices, "devices", false, "also list the user's devices")
	return cmd
}
