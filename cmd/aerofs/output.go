package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Ning0612/aerofs-go/internal/progress"
)

func newTable(w io.Writer, header ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row(header))
	return t
}

// keyValues renders a two-column table
func keyValues(w io.Writer, rows [][2]any) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	for _, r := range rows {
		t.AppendRow(table.Row{r[0], r[1]})
	}
	t.Render()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

// valueOr renders v, or a dash when err is set
func valueOr[T any](v T, err error) any {
	if err != nil {
		return "-"
	}
	return v
}

// consoleReporter draws a progress line on stderr
func consoleReporter() progress.Reporter {
	return progress.NewCallbackReporter(func(ev progress.Event) {
		switch ev.Kind {
		case progress.KindProgress:
			fmt.Fprintf(os.Stderr, "\r%s %s  %s",
				ev.Name,
				progress.FormatProgress(ev.Bytes, ev.Total, 30),
				progress.FormatSpeed(ev.BytesPerSecond))
		case progress.KindComplete:
			fmt.Fprintf(os.Stderr, "\r%s done, %s in %s%s\n",
				ev.Name, progress.FormatBytes(ev.Bytes), ev.Elapsed.Round(time.Millisecond), strings.Repeat(" ", 20))
		case progress.KindError:
			fmt.Fprintln(os.Stderr)
		}
	})
}
