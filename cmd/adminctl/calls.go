package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/unifiedui/admin-gateway/internal/services/calllog"
	"github.com/unifiedui/admin-gateway/internal/services/filters"
)

func newCallsCmd(opts *connectOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calls",
		Short: "Browse call logs",
	}
	cmd.AddCommand(newCallsListCmd(opts))
	cmd.AddCommand(newCallsShowCmd(opts))
	cmd.AddCommand(newCallsExportCmd(opts))
	return cmd
}

// filterFlags binds one flag per filter key.
type filterFlags map[filters.Key]*string

func bindFilterFlags(cmd *cobra.Command) filterFlags {
	usage := map[filters.Key]string{
		filters.KeySearch:      "free-text search within the fetched page",
		filters.KeyStatus:      "call status",
		filters.KeyAgent:       "agent id",
		filters.KeyPhone:       "phone number",
		filters.KeyMinDuration: "minimum duration in seconds",
		filters.KeyMaxDuration: "maximum duration in seconds",
		filters.KeyDateFrom:    "start date (YYYY-MM-DD)",
		filters.KeyDateTo:      "end date (YYYY-MM-DD)",
	}
	ff := make(filterFlags, len(filters.Keys))
	for _, k := range filters.Keys {
		ff[k] = cmd.Flags().String(string(k), "", usage[k])
	}
	return ff
}

func (ff filterFlags) set() filters.Set {
	var s filters.Set
	for _, k := range filters.Keys {
		if v := ff[k]; v != nil {
			s = s.With(k, *v)
		}
	}
	return s
}

func newCallsListCmd(opts *connectOptions) *cobra.Command {
	var (
		page   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List calls matching the given filters",
		Long:  "Stages the filter flags, applies them and prints the requested page. Free-text search and duration bounds are evaluated on the fetched page only.",
	}
	ff := bindFilterFlags(cmd)
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		staged := ff.set()
		if err := staged.Gates().Err(); err != nil {
			return err
		}

		ctx := cmd.Context()
		s, err := connect(ctx, opts, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer s.close(ctx)

		p, err := filters.NewPipeline(&filters.Config[calllog.Call]{
			Fetcher:  filters.FetcherFunc[calllog.Call](s.client.ListCalls),
			Refine:   calllog.Refine,
			PageSize: s.pageSize,
			Logger:   &s.logger,
		})
		if err != nil {
			return err
		}

		p.StageSet(staged)
		if err := p.Apply(ctx); err != nil {
			return err
		}
		if page > 1 {
			if err := p.SetPage(ctx, page); err != nil {
				return err
			}
		}

		snap := p.Snapshot()
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		}
		printCalls(cmd.OutOrStdout(), snap)
		return nil
	}
	return cmd
}

func printCalls(out io.Writer, snap filters.View[calllog.Call]) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tPHONE\tAGENT\tSTATUS\tDURATION")
	for _, c := range snap.Visible {
		started := "-"
		if c.StartedAt != nil {
			started = c.StartedAt.Local().Format(time.DateTime)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%ss\n",
			c.ID, started, c.Phone, c.AgentName, c.Status,
			strconv.FormatFloat(c.DurationSec, 'f', -1, 64))
	}
	_ = tw.Flush()

	total := 0
	if snap.Result != nil {
		total = snap.Result.Total
	}
	fmt.Fprintf(out, "page %d/%d, %d shown, %d total\n", snap.Page, snap.TotalPages, len(snap.Visible), total)
}

func newCallsShowCmd(opts *connectOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the transcript of a call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := connect(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close(ctx)

			transcript, err := s.client.GetTranscript(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(transcript)
			}
			fmt.Fprintf(out, "call %s\n", transcript.CallID)
			if transcript.Summary != "" {
				fmt.Fprintf(out, "summary: %s\n", transcript.Summary)
			}
			for _, turn := range transcript.Turns {
				fmt.Fprintf(out, "[%6.1fs] %-8s %s\n", turn.OffsetSec, turn.Speaker, turn.Text)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newCallsExportCmd(opts *connectOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export calls matching the given filters as CSV",
	}
	ff := bindFilterFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: the server-suggested file name, - for stdout)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		applied, err := filters.Promote(ff.set())
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		s, err := connect(ctx, opts, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer s.close(ctx)

		blob, err := s.client.ExportCalls(ctx, applied)
		if err != nil {
			return err
		}

		if output == "-" {
			_, err := cmd.OutOrStdout().Write(blob.Data)
			return err
		}
		if output == "" {
			output = blob.Filename
		}
		if err := os.WriteFile(output, blob.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s\n", len(blob.Data), output)
		return nil
	}
	return cmd
}
