package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Ning0612/aerofs-go/internal/progress"
	"github.com/Ning0612/aerofs-go/internal/state"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	var fileID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show journaled uploads and downloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			journal, err := a.journal()
			if err != nil {
				return err
			}
			defer journal.Close()

			var records []state.TransferRecord
			if fileID != "" {
				records, err = journal.GetHistory(cmd.Context(), fileID, limit)
			} else {
				records, err = journal.GetAllHistory(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			t := newTable(cmd.OutOrStdout(), "When", "File", "Name", "Direction", "Size", "Status", "Error")
			for _, r := range records {
				t.AppendRow(table.Row{
					formatTime(r.StartTime), r.FileID, r.Name, r.Direction,
					progress.FormatBytes(r.Bytes), r.Status, r.Error,
				})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries")
	cmd.Flags().StringVar(&fileID, "file", "", "only show transfers of this file id")
	return cmd
}
