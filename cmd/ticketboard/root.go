package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/ticketboard/internal/app"
	"github.com/nhle/ticketboard/internal/board"
	"github.com/nhle/ticketboard/internal/logging"
	"github.com/nhle/ticketboard/internal/model"
	"github.com/nhle/ticketboard/internal/source"
	appsync "github.com/nhle/ticketboard/internal/sync"
	"github.com/nhle/ticketboard/internal/theme"
)

// rootOptions are the flags shared by every command. Non-empty values
// override the config file.
type rootOptions struct {
	configPath string
	sourceType string
	url        string
	file       string
	db         string
	groupBy    string
	sortBy     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ticketboard",
		Short: "Ticketboard - a terminal kanban view of a ticket snapshot",
		Long: `Ticketboard fetches tickets and users from a read-only endpoint and shows
them as kanban columns grouped by status, user or priority.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", model.DefaultConfigPath(), "config file")
	pf.StringVar(&opts.sourceType, "source", "", "source type: api, file or sqlite")
	pf.StringVar(&opts.url, "url", "", "endpoint URL for the api source")
	pf.StringVar(&opts.file, "file", "", "JSON snapshot for the file source (implies --source file)")
	pf.StringVar(&opts.db, "db", "", "SQLite snapshot for the sqlite source (implies --source sqlite)")
	pf.StringVar(&opts.groupBy, "group", "", "grouping: status, user or priority")
	pf.StringVar(&opts.sortBy, "sort", "", "ordering: priority or title")

	cmd.AddCommand(
		newPrintCmd(opts),
		newExportCmd(opts),
		newConfigCmd(opts),
		newTokenCmd(opts),
	)
	return cmd
}

// loadConfig reads the config file and applies flag overrides.
func (o *rootOptions) loadConfig() (*model.AppConfig, error) {
	cfg, err := model.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}

	switch {
	case o.sourceType != "":
		cfg.Source.Type = o.sourceType
	case o.file != "":
		cfg.Source.Type = string(source.SourceTypeFile)
	case o.db != "":
		cfg.Source.Type = string(source.SourceTypeSQLite)
	case o.url != "":
		cfg.Source.Type = string(source.SourceTypeAPI)
	}
	if o.url != "" {
		cfg.Source.URL = o.url
	}
	if o.file != "" {
		cfg.Source.File = o.file
	}
	if o.db != "" {
		cfg.Source.DB = o.db
	}
	if o.groupBy != "" {
		cfg.Display.GroupBy = o.groupBy
	}
	if o.sortBy != "" {
		cfg.Display.SortBy = o.sortBy
	}
	return cfg, nil
}

// arrangeKeys parses the configured grouping and ordering. Unknown values
// are kept and logged; the engine falls back for them.
func arrangeKeys(cfg *model.AppConfig, log *zap.Logger) (board.GroupKey, board.SortKey) {
	groupBy := board.ParseGroupKey(cfg.Display.GroupBy)
	sortBy := board.ParseSortKey(cfg.Display.SortBy)
	if !groupBy.Known() {
		log.Warn("unknown grouping, showing one column", zap.String("group_by", string(groupBy)))
	}
	if !sortBy.Known() {
		log.Warn("unknown ordering, keeping fetch order", zap.String("sort_by", string(sortBy)))
	}
	return groupBy, sortBy
}

// openFetcher opens the configured source and wraps it in a Fetcher.
func openFetcher(cfg *model.AppConfig, log *zap.Logger) (*appsync.Fetcher, func() error, error) {
	src, closeFn, err := app.OpenSource(cfg.Source, log)
	if err != nil {
		return nil, nil, err
	}
	timeout := time.Duration(cfg.Source.FetchTimeoutSec) * time.Second
	return appsync.New(src, timeout, log), closeFn, nil
}

// stderrLogger is the logger for one-shot commands. Unless verbose, only
// warnings and errors are shown.
func stderrLogger(cfg *model.AppConfig, verbose bool) (*zap.Logger, error) {
	logCfg := cfg.Log
	if !verbose {
		logCfg.Level = "warn"
	}
	return logging.New(logCfg, true)
}

func runBoard(opts *rootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if err := theme.Apply(cfg.Display.Theme); err != nil {
		return err
	}

	log, err := logging.New(cfg.Log, false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	fetcher, closeFn, err := openFetcher(cfg, log)
	if err != nil {
		return err
	}
	defer closeFn()

	groupBy, sortBy := arrangeKeys(cfg, log)
	m := app.New(fetcher, app.Options{GroupBy: groupBy, SortBy: sortBy}, log)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running board: %w", err)
	}
	return nil
}
