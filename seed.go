package main

import (
	"github.com/WillyV3/todoboard/internal/board"
)

// SeedBoard creates a sample board that walks through the keys.
func SeedBoard() *board.Board {
	b := board.NewBoard()

	todo := []string{
		"Press 'a' to add a task",
		"Attach an image from the Upload Image button",
		"Press '?' for help",
	}
	for _, title := range todo {
		b.AddTask(title, board.Todo, nil)
	}

	b.AddTask("Press enter to move a task to the next column", board.InProgress, nil)
	b.AddTask("Install todoboard", board.Done, nil)

	return b
}
