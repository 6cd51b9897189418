// Package config holds the interactive forms that edit ticketboard's
// configuration file and endpoint token.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/nhle/ticketboard/internal/board"
	"github.com/nhle/ticketboard/internal/model"
	"github.com/nhle/ticketboard/internal/source"
	"github.com/nhle/ticketboard/internal/theme"
)

// SetupForm edits a copy of an AppConfig. Call Apply after the form
// completes to get the result.
type SetupForm struct {
	Form *huh.Form

	sourceType string
	url        string
	file       string
	db         string
	groupBy    string
	sortBy     string
	themeName  string
}

// NewSetupForm builds the first-run form prefilled from cfg.
func NewSetupForm(cfg *model.AppConfig) *SetupForm {
	f := &SetupForm{
		sourceType: cfg.Source.Type,
		url:        cfg.Source.URL,
		file:       cfg.Source.File,
		db:         cfg.Source.DB,
		groupBy:    cfg.Display.GroupBy,
		sortBy:     cfg.Display.SortBy,
		themeName:  cfg.Display.Theme,
	}
	if f.sourceType == "" {
		f.sourceType = string(source.SourceTypeAPI)
	}

	groupOpts := make([]huh.Option[string], 0, len(board.GroupKeys()))
	for _, k := range board.GroupKeys() {
		groupOpts = append(groupOpts, huh.NewOption(k.Label(), string(k)))
	}
	sortOpts := make([]huh.Option[string], 0, len(board.SortKeys()))
	for _, k := range board.SortKeys() {
		sortOpts = append(sortOpts, huh.NewOption(k.Label(), string(k)))
	}

	f.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Source").
				Description("Where the board reads its snapshot from").
				Options(
					huh.NewOption("HTTP endpoint", string(source.SourceTypeAPI)),
					huh.NewOption("JSON file", string(source.SourceTypeFile)),
					huh.NewOption("SQLite export", string(source.SourceTypeSQLite)),
				).
				Value(&f.sourceType),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Endpoint URL").
				Description("GET returns {tickets, users}").
				Placeholder(model.DefaultEndpoint).
				Value(&f.url).
				Validate(ValidateURL),
		).WithHideFunc(func() bool { return f.sourceType != string(source.SourceTypeAPI) }),
		huh.NewGroup(
			huh.NewInput().
				Title("Snapshot file").
				Description("Path to a JSON file in the endpoint's format").
				Value(&f.file).
				Validate(ValidateRequired("File")),
		).WithHideFunc(func() bool { return f.sourceType != string(source.SourceTypeFile) }),
		huh.NewGroup(
			huh.NewInput().
				Title("SQLite database").
				Description("A file written by `ticketboard export`").
				Value(&f.db).
				Validate(ValidateRequired("Database")),
		).WithHideFunc(func() bool { return f.sourceType != string(source.SourceTypeSQLite) }),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default grouping").
				Options(groupOpts...).
				Value(&f.groupBy),
			huh.NewSelect[string]().
				Title("Default ordering").
				Options(sortOpts...).
				Value(&f.sortBy),
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Colour", theme.ThemeDefault),
					huh.NewOption("Monochrome", theme.ThemeMono),
				).
				Value(&f.themeName),
		),
	)
	return f
}

// Apply copies the form's answers into cfg.
func (f *SetupForm) Apply(cfg *model.AppConfig) {
	cfg.Source.Type = f.sourceType
	cfg.Source.URL = strings.TrimSpace(f.url)
	cfg.Source.File = strings.TrimSpace(f.file)
	cfg.Source.DB = strings.TrimSpace(f.db)
	cfg.Display.GroupBy = f.groupBy
	cfg.Display.SortBy = f.sortBy
	cfg.Display.Theme = f.themeName
}

// NewTokenForm builds a password prompt writing into token.
func NewTokenForm(key string, token *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Endpoint token").
				Description(fmt.Sprintf("Stored in the system keyring as %q", key)).
				EchoMode(huh.EchoModePassword).
				Value(token).
				Validate(ValidateRequired("Token")),
		),
	)
}

// ValidateRequired rejects blank input.
func ValidateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

// ValidateURL accepts absolute http(s) URLs.
func ValidateURL(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("URL is required")
	}
	parsed, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return errors.New("URL must include http(s) scheme and host (e.g., https://example.com)")
	}
	return nil
}
