package command

import (
	"encoding/json"
	"fmt"

	"github.com/adamavenir/heroes/internal/core"
	"github.com/adamavenir/heroes/internal/marvel"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration",
		Long:  "Show the effective configuration. Environment variables (MARVEL_PUBLIC_KEY, MARVEL_PRIVATE_KEY, MARVEL_BASE_URL, HEROES_DATA_DIR) and .env override the config file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCommandConfig(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			baseURL := cfg.BaseURL
			if baseURL == "" {
				baseURL = marvel.DefaultBaseURL
			}

			shown := map[string]string{
				"public_key":  cfg.PublicKey,
				"private_key": core.MaskSecret(cfg.PrivateKey),
				"base_url":    baseURL,
				"data_dir":    cfg.DataDir,
			}

			if jsonMode, _ := cmd.Flags().GetBool("json"); jsonMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(shown)
			}
			for _, key := range core.ConfigKeys {
				value := shown[key]
				if value == "" {
					value = "(not set)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", key, value)
			}
			return nil
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := core.SetConfigValue(args[0], args[1]); err != nil {
				return writeCommandError(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])
			return nil
		},
	}
}
