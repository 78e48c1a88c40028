package tui

import (
	"go.uber.org/zap"

	"github.com/WillyV3/todoboard/internal/board"
)

// taskList owns the loaded board and writes it back after every change.
type taskList struct {
	board *board.Board
	store board.Store
	log   *zap.Logger
	err   error
	last  string // ID of the most recently added task
}

func (l *taskList) AddTask(title string, category board.Category, attachment *board.Attachment) {
	l.last = l.board.AddTask(title, category, attachment)
	l.log.Info("task added",
		zap.String("id", l.last),
		zap.String("title", title),
		zap.String("category", string(category)),
		zap.Bool("image", attachment != nil),
	)
	l.err = l.save()
}

func (l *taskList) save() error {
	if l.store == nil {
		return nil
	}
	if err := l.store.Save(l.board); err != nil {
		l.log.Error("save board", zap.Error(err))
		return err
	}
	return nil
}

func (l *taskList) reload() error {
	if l.store == nil {
		return nil
	}
	b, err := board.LoadOrNew(l.store)
	if err != nil {
		l.log.Error("reload board", zap.Error(err))
		return err
	}
	l.board = b
	return nil
}

// takeErr returns and clears the last save error.
func (l *taskList) takeErr() error {
	err := l.err
	l.err = nil
	return err
}
