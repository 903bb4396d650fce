package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zenibako/autocue/cue"
	"github.com/zenibako/autocue/export"
)

func printReport(cmd *cobra.Command, report export.Report, artifact string) {
	out := cmd.OutOrStdout()

	rows := make([][]string, 0, len(report.Records))
	for i, rec := range report.Records {
		drop := "-"
		if rec.Drop != nil {
			drop = cue.FormatTime(*rec.Drop)
		}
		note := rec.Reason
		if note == "" && len(rec.Warnings) > 0 {
			note = rec.Warnings[0]
			if len(rec.Warnings) > 1 {
				note += fmt.Sprintf(" (+%d more)", len(rec.Warnings)-1)
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			rec.Track,
			string(rec.Status),
			drop,
			strconv.Itoa(len(rec.Cues)),
			note,
		})
	}
	writeTable(out, []column{
		{title: "#", numeric: true},
		{title: "Track"},
		{title: "Status"},
		{title: "Drop", numeric: true},
		{title: "Cues", numeric: true},
		{title: "Note"},
	}, rows)

	s := report.Summary()
	fmt.Fprintf(out, "%d exported, %d invalidated, %d skipped, %d cues\n", s.Exported, s.Invalidated, s.Skipped, s.Cues)
	if artifact != "" {
		fmt.Fprintf(out, "Wrote %s\n", artifact)
	}
	if !report.Complete {
		fmt.Fprintln(out, "Session ended early; undecided tracks were skipped")
	}
}
