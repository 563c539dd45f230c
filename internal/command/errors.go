package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adamavenir/heroes/internal/marvel"
	"github.com/spf13/cobra"
)

func writeCommandError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())

	// Check for schema errors and suggest rebuild
	if isSchemaError(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: This looks like a schema mismatch. Try: heroes rebuild")
	}
	if errors.Is(err, marvel.ErrInvalidURL) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: set your API keys with: heroes config set public_key <key> (and private_key)")
	}

	return err
}

// isSchemaError checks if an error is a SQLite schema mismatch.
func isSchemaError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "no such column") ||
		strings.Contains(msg, "no such table") ||
		strings.Contains(msg, "has no column")
}
