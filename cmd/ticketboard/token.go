package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/ticketboard/internal/credential"
	"github.com/nhle/ticketboard/internal/model"
	configform "github.com/nhle/ticketboard/internal/ui/config"
)

// defaultTokenKey is used when the config names no token key yet.
const defaultTokenKey = "endpoint-token"

func newTokenCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the optional endpoint bearer token",
	}
	cmd.AddCommand(newTokenSetCmd(root), newTokenDeleteCmd(root))
	return cmd
}

func newTokenSetCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set",
		Short: "Store a bearer token in the system keyring",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := model.LoadConfig(root.configPath)
			if err != nil {
				return err
			}

			key := cfg.Source.TokenKey
			if key == "" {
				key = defaultTokenKey
			}

			var token string
			if err := configform.NewTokenForm(key, &token).Run(); err != nil {
				return fmt.Errorf("token form: %w", err)
			}
			if err := credential.Set(key, token); err != nil {
				return err
			}

			if cfg.Source.TokenKey != key {
				cfg.Source.TokenKey = key
				if err := model.SaveConfig(root.configPath, cfg); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "token stored as %q\n", key)
			return err
		},
	}
}

func newTokenDeleteCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Remove the bearer token from the system keyring",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := model.LoadConfig(root.configPath)
			if err != nil {
				return err
			}
			if cfg.Source.TokenKey == "" {
				return fmt.Errorf("no token configured in %s", root.configPath)
			}
			if err := credential.Delete(cfg.Source.TokenKey); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "token %q deleted\n", cfg.Source.TokenKey)
			return err
		},
	}
}
