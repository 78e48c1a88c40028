package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/WillyV3/todoboard/internal/board"
)

func newSeedCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a sample board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return SeedCommand(cmd, app, force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite without asking")
	return cmd
}

// SeedCommand initializes the store with sample tasks
func SeedCommand(cmd *cobra.Command, app *App, force bool) error {
	out := cmd.OutOrStdout()

	// Check if a board exists
	_, err := app.store.Load()
	switch {
	case err == nil && !force:
		fmt.Fprint(out, "Board already exists. Overwrite? (y/N): ")
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response = strings.TrimSpace(response)
		if response != "y" && response != "Y" {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	case err != nil && !errors.Is(err, board.ErrNotFound):
		return err
	}

	b := SeedBoard()
	if err := app.store.Save(b); err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}

	fmt.Fprintf(out, "✓ Created board: %s (%s)\n", app.cfg.Store.Path, app.cfg.Store.Driver)
	fmt.Fprintf(out, "  Total tasks: %d\n", len(b.AllTasks()))
	fmt.Fprintln(out, "\nRun 'todoboard' to view your board!")

	return nil
}
