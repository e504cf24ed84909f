package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ning0612/aerofs-go/internal/checksum"
	"github.com/Ning0612/aerofs-go/internal/logger"
	"github.com/Ning0612/aerofs-go/internal/progress"
	"github.com/Ning0612/aerofs-go/internal/state"
	"github.com/Ning0612/aerofs-go/pkg/api"
	"github.com/Ning0612/aerofs-go/pkg/sdk"
)

func newFileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Inspect, upload and download files",
	}
	cmd.AddCommand(newFileStatCmd(a), newFileUploadCmd(a), newFileDownloadCmd(a))
	return cmd
}

func newFileStatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stat ID",
		Short: "Show file metadata and the last successful transfer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.apiClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			f := sdk.NewFile(client, args[0])
			if err := f.Load(ctx); err != nil {
				return err
			}

			name, _ := f.Name(ctx)
			size, _ := f.Size(ctx)
			mime, _ := f.MimeType(ctx)
			contentState, _ := f.ContentState(ctx)
			modified, modErr := f.LastModified(ctx)

			rows := [][2]any{
				{"ID", f.ID()},
				{"Name", name},
				{"Size", progress.FormatBytes(size)},
				{"MIME type", mime},
				{"Modified", valueOr(formatTime(modified), modErr)},
				{"Content", contentState},
				{"ETag", strings.Join(f.ETags(), ", ")},
			}

			journal, err := a.journal()
			if err != nil {
				return err
			}
			defer journal.Close()
			last, err := journal.GetLastSuccess(ctx, f.ID())
			if err != nil {
				return err
			}
			if last != nil {
				rows = append(rows,
					[2]any{"Last transfer", fmt.Sprintf("%s %s at %s", last.Direction, progress.FormatBytes(last.Bytes), formatTime(last.EndTime))},
					[2]any{"Checksum", last.Checksum},
				)
			}

			keyValues(cmd.OutOrStdout(), rows)
			return nil
		},
	}
}

func newFileUploadCmd(a *app) *cobra.Command {
	var match, skipUnchanged bool

	cmd := &cobra.Command{
		Use:   "upload ID PATH",
		Short: "Replace the content of a file with a local file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.apiClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			sum, err := checksum.File(ctx, args[1], checksum.SHA256)
			if err != nil {
				return err
			}

			f := sdk.NewFile(client, args[0])
			if skipUnchanged {
				same, err := a.uploadedAlready(ctx, f, sum)
				if err != nil {
					return err
				}
				if same {
					fmt.Fprintln(cmd.OutOrStdout(), "unchanged since the last upload, skipped")
					return nil
				}
			}

			src, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer src.Close()

			if match {
				// capture the current ETag
				if err := f.Load(ctx); err != nil {
					return err
				}
			}

			rec := state.TransferRecord{
				FileID:    f.ID(),
				Name:      filepath.Base(args[1]),
				Direction: state.Upload,
				Checksum:  sum,
				StartTime: time.Now(),
			}
			counter := progress.NewProgressReader(src, progress.NullReporter{})
			err = f.UploadContent(ctx, counter, match, api.WithProgress(consoleReporter()))
			rec.Bytes = counter.Transferred()
			return a.finishTransfer(ctx, f, rec, err)
		},
	}
	cmd.Flags().BoolVar(&match, "match", false, "fail if the file changed remotely since it was last read")
	cmd.Flags().BoolVar(&skipUnchanged, "skip-unchanged", false, "do nothing if this content was the last upload and the remote copy is untouched")
	return cmd
}

// uploadedAlready reports whether sum is the checksum of the last successful
// upload of f and the remote ETag has not moved since.
func (a *app) uploadedAlready(ctx context.Context, f *sdk.File, sum string) (bool, error) {
	journal, err := a.journal()
	if err != nil {
		return false, err
	}
	defer journal.Close()

	last, err := journal.GetLastSuccess(ctx, f.ID())
	if err != nil || last == nil {
		return false, err
	}
	if last.Direction != state.Upload || !checksum.Equal(last.Checksum, sum) || last.ETag == "" {
		return false, nil
	}
	if err := f.Load(ctx); err != nil {
		return false, err
	}
	return strings.Join(f.ETags(), ", ") == last.ETag, nil
}

func newFileDownloadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "download ID OUT",
		Short: "Save the content of a file locally",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.apiClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			dest := args[1]
			out, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.part")
			if err != nil {
				return err
			}
			// removes the partial file unless it was renamed into place
			defer os.Remove(out.Name())
			defer out.Close()

			f := sdk.NewFile(client, args[0])
			rec := state.TransferRecord{
				FileID:    f.ID(),
				Name:      filepath.Base(dest),
				Direction: state.Download,
				StartTime: time.Now(),
			}
			n, err := f.DownloadContent(ctx, out, api.WithProgress(consoleReporter()))
			rec.Bytes = n
			if err == nil {
				err = out.Sync()
			}
			if err == nil {
				err = out.Close()
			}
			if err == nil {
				err = os.Rename(out.Name(), dest)
			}
			if err == nil {
				rec.Checksum, err = checksum.File(ctx, dest, checksum.SHA256)
			}
			return a.finishTransfer(ctx, f, rec, err)
		},
	}
}

// finishTransfer journals the outcome of a transfer and returns its error
func (a *app) finishTransfer(ctx context.Context, f *sdk.File, rec state.TransferRecord, transferErr error) error {
	log := logger.With("file", rec.FileID, "direction", rec.Direction)

	rec.EndTime = time.Now()
	rec.Status = state.StatusSuccess
	if transferErr != nil {
		rec.Status = state.StatusFailed
		rec.Error = transferErr.Error()
	} else {
		rec.ETag = strings.Join(f.ETags(), ", ")
	}

	journal, err := a.journal()
	if err != nil {
		log.Warn("transfer journal unavailable", "error", err)
		return transferErr
	}
	defer journal.Close()

	if _, err := journal.SaveTransfer(ctx, rec); err != nil {
		log.Warn("failed to journal transfer", "error", err)
	}
	if transferErr == nil {
		log.Info("transfer complete", "bytes", rec.Bytes, "duration", rec.Duration())
	}
	return transferErr
}
