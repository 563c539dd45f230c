package command

import (
	"context"
	"database/sql"
	"strings"

	"github.com/adamavenir/heroes/internal/core"
	"github.com/adamavenir/heroes/internal/db"
	"github.com/adamavenir/heroes/internal/listing"
	"github.com/adamavenir/heroes/internal/marvel"
	"github.com/adamavenir/heroes/internal/types"
	"github.com/spf13/cobra"
)

// CommandContext provides shared command resources.
type CommandContext struct {
	Config    core.Config
	DB        *sql.DB
	Favorites *db.Favorites
	JSONMode  bool
}

// GetContext loads configuration and opens the favorites database.
func GetContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg, err := loadCommandConfig(cmd)
	if err != nil {
		return nil, err
	}
	jsonMode, _ := cmd.Flags().GetBool("json")

	conn, err := db.OpenDatabase(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Config:    cfg,
		DB:        conn,
		Favorites: db.NewFavorites(conn, cfg.DataDir),
		JSONMode:  jsonMode,
	}, nil
}

func loadCommandConfig(cmd *cobra.Command) (core.Config, error) {
	cfg, err := core.LoadConfig()
	if err != nil {
		return core.Config{}, err
	}
	if dataDir, _ := cmd.Flags().GetString("data-dir"); strings.TrimSpace(dataDir) != "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

// Client builds an API client from the loaded configuration.
func (c *CommandContext) Client() *marvel.Client {
	return marvel.NewClient(
		marvel.Credentials{PublicKey: c.Config.PublicKey, PrivateKey: c.Config.PrivateKey},
		marvel.WithBaseURL(c.Config.BaseURL),
	)
}

// Close releases the database.
func (c *CommandContext) Close() {
	if c.DB != nil {
		_ = c.DB.Close()
	}
}

// fetchCharacters runs one load through the list view-model.
func fetchCharacters(ctx context.Context, cmdCtx *CommandContext) ([]types.CharacterInfo, error) {
	list := listing.NewCharacterList(cmdCtx.Client(), nil)
	switch state := list.Load(ctx).(type) {
	case listing.Failed:
		return nil, state.Err
	case listing.Loaded:
		return state.Characters, nil
	}
	return nil, nil
}
