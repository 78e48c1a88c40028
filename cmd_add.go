package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/WillyV3/todoboard/internal/board"
	"github.com/WillyV3/todoboard/internal/compose"
)

// boardTasks adds straight to a loaded board; the command saves afterwards.
type boardTasks struct {
	board *board.Board
	log   *zap.Logger
}

func (t boardTasks) AddTask(title string, category board.Category, attachment *board.Attachment) {
	t.board.AddTask(title, category, attachment)
	t.log.Info("task added",
		zap.String("title", title),
		zap.String("category", string(category)),
		zap.Bool("image", attachment != nil),
	)
}

func newAddCmd(app *App) *cobra.Command {
	var (
		category string
		image    string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task without opening the board",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := board.DefaultCategory()
			if strings.TrimSpace(category) != "" {
				c, err := board.ParseCategory(category)
				if err != nil {
					return err
				}
				cat = c
			}

			b, err := board.LoadOrNew(app.store)
			if err != nil {
				return err
			}

			var dialog compose.ModalState
			dialog.Open()

			draft := compose.NewDraft(compose.StaticCategory(cat))
			draft.SetTitle(strings.Join(args, " "))

			holder := &compose.AttachmentHolder{}
			if strings.TrimSpace(image) != "" {
				a, err := compose.LoadAttachment(image, app.cfg.Compose.MaxAttachmentBytes)
				if err != nil {
					return err
				}
				if res := holder.Set(a); !res.Accepted() {
					fmt.Fprintf(cmd.ErrOrStderr(), "Ignoring %s: %v (%s)\n", a.Name, res.Reason, a.MediaType)
				}
			}

			wf := compose.NewWorkflow(boardTasks{board: b, log: app.log}, &dialog, draft, holder)
			if res := wf.Submit(); !res.Accepted() {
				if errors.Is(res.Reason, compose.ErrEmptyTitle) {
					return errors.New("task title is empty")
				}
				return res.Reason
			}

			if err := app.store.Save(b); err != nil {
				return fmt.Errorf("failed to save board: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added to %s: %s\n", cat.Label(), draft.Title())
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "todo|inprogress|done (default todo)")
	cmd.Flags().StringVarP(&image, "image", "i", "", "image file to attach")

	return cmd
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print tasks by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := board.LoadOrNew(app.store)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, col := range b.Columns {
				fmt.Fprintf(out, "%s (%d)\n", col.Category.Label(), len(col.Tasks))
				for _, t := range col.Tasks {
					line := fmt.Sprintf("  %s  %s", t.ID, t.Title)
					if t.Image != nil {
						line += fmt.Sprintf("  [%s]", t.Image.Name)
					}
					fmt.Fprintln(out, line)
				}
			}
			return nil
		},
	}
}
