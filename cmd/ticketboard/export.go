package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/ticketboard/internal/store"
)

type exportOptions struct {
	out     string
	verbose bool
}

func newExportCmd(root *rootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch once and save the snapshot to a SQLite file",
		Long: `Export fetches the configured source once and writes tickets and users to a
SQLite file. The file can be viewed later with --db or source.type: sqlite.
An existing export at the same path is replaced.`,
		Example: `  ticketboard export --out board.db
  ticketboard --db board.db print`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "SQLite file to write")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log fetch details to stderr")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func runExport(cmd *cobra.Command, root *rootOptions, opts *exportOptions) error {
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
	if res.Err != nil {
		return fmt.Errorf("nothing exported: %w", res.Err)
	}

	s, err := store.NewSQLiteStore(opts.out)
	if err != nil {
		return fmt.Errorf("opening %s: %w", opts.out, err)
	}
	defer s.Close()

	origin := fetcher.Status().Location
	if err := s.SaveSnapshot(cmd.Context(), res.Snapshot, origin); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	log.Info("snapshot exported",
		zap.String("path", opts.out),
		zap.String("origin", origin),
		zap.Duration("fetch", res.Duration),
	)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved %d tickets and %d users to %s\n",
		len(res.Snapshot.Tickets), len(res.Snapshot.Users), opts.out)
	return err
}
