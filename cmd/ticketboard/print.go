package main

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/nhle/ticketboard/internal/board"
	"github.com/nhle/ticketboard/internal/model"
	"github.com/nhle/ticketboard/internal/ui/kanban"
)

type printOptions struct {
	json    bool
	plain   bool
	width   int
	verbose bool
}

func newPrintCmd(root *rootOptions) *cobra.Command {
	opts := &printOptions{}

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Fetch once and print the arranged board",
		Example: `  ticketboard print --group user --sort title
  ticketboard print --json
  ticketboard print --file testdata/board.json --plain`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd, root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print the arrangement as JSON")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print one tab-separated line per ticket")
	cmd.Flags().IntVar(&opts.width, "width", 0, "wrap columns to this many cells (0 prints every column)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log fetch details to stderr")
	cmd.MarkFlagsMutuallyExclusive("json", "plain")
	return cmd
}

func runPrint(cmd *cobra.Command, root *rootOptions, opts *printOptions) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	log, err := stderrLogger(cfg, opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	fetcher, closeFn, err := openFetcher(cfg, log)
	if err != nil {
		return err
	}
	defer closeFn()

	res := fetcher.Run(cmd.Context())
	groupBy, sortBy := arrangeKeys(cfg, log)
	arr := board.Arrange(res.Snapshot.Tickets, res.Snapshot.Users, groupBy, sortBy)

	out := cmd.OutOrStdout()
	switch {
	case opts.json:
		err = writeJSON(out, arr, res.Snapshot.FetchedAt)
	case opts.plain:
		err = writePlain(out, arr)
	default:
		_, err = fmt.Fprintln(out, kanban.Render(arr, opts.width, 0))
	}
	if err != nil {
		return err
	}

	if res.Err != nil {
		return fmt.Errorf("fetch failed, printed an empty board: %w", res.Err)
	}
	return nil
}

type jsonGroup struct {
	Label   string         `json:"label"`
	Count   int            `json:"count"`
	Tickets []model.Ticket `json:"tickets"`
}

type jsonBoard struct {
	GroupBy   board.GroupKey `json:"groupBy"`
	SortBy    board.SortKey  `json:"sortBy"`
	FetchedAt *time.Time     `json:"fetchedAt,omitempty"`
	Groups    []jsonGroup    `json:"groups"`
}

func writeJSON(w io.Writer, arr board.Arrangement, fetchedAt time.Time) error {
	doc := jsonBoard{
		GroupBy: arr.GroupBy,
		SortBy:  arr.SortBy,
		Groups:  make([]jsonGroup, 0, len(arr.Groups)),
	}
	if !fetchedAt.IsZero() {
		doc.FetchedAt = &fetchedAt
	}
	for _, g := range arr.Groups {
		doc.Groups = append(doc.Groups, jsonGroup{Label: g.Label, Count: len(g.Tickets), Tickets: g.Tickets})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding board: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writePlain(w io.Writer, arr board.Arrangement) error {
	for _, g := range arr.Groups {
		for _, t := range g.Tickets {
			name := t.Priority.Name()
			if name == "" {
				name = fmt.Sprintf("P%d", t.Priority)
			}
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				g.Label, t.ID, name, t.Status, t.Title); err != nil {
				return err
			}
		}
	}
	return nil
}
