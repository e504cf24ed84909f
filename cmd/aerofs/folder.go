package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Ning0612/aerofs-go/internal/progress"
	"github.com/Ning0612/aerofs-go/pkg/sdk"
)

func newFolderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "List and create folders",
	}
	cmd.AddCommand(newFolderListCmd(a), newFolderMkdirCmd(a))
	return cmd
}

func newFolderListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "ls [ID]",
		Short:   "List the content of a folder (the root by default)",
		Aliases: []string{"list"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.apiClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			id := "root"
			if len(args) == 1 {
				id = args[0]
			}
			children, err := sdk.NewFolder(client, id).Children(ctx)
			if err != nil {
				return err
			}

			t := newTable(cmd.OutOrStdout(), "Type", "ID", "Name", "Size", "Modified")
			for _, f := range children.Folders() {
				name, _ := f.Name(ctx)
				kind := "dir"
				if shared, _ := f.IsShared(ctx); shared {
					kind = "shared"
				}
				t.AppendRow(table.Row{kind, f.ID(), name + "/", "", ""})
			}
			for _, f := range children.Files() {
				name, _ := f.Name(ctx)
				size, _ := f.Size(ctx)
				modified, err := f.LastModified(ctx)
				t.AppendRow(table.Row{"file", f.ID(), name, progress.FormatBytes(size), valueOr(formatTime(modified), err)})
			}
			t.Render()
			return nil
		},
	}
}

func newFolderMkdirCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir PARENT NAME",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.apiClient()
			if err != nil {
				return err
			}
			f, err := sdk.CreateFolder(cmd.Context(), client, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.ID())
			return nil
		},
	}
}
