// Command mazetui plays a generated maze in the terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/gdamore/tcell/v2"
)

func main() {
	size := flag.Int("size", 10, "maze width and height in cells")
	seed := flag.Uint64("seed", 0, "generator seed, 0 picks a random maze")
	cellSize := flag.Int("cell", 30, "cell size in pixels used for movement requests")
	border := flag.Int("border", 2, "border width in pixels used for movement requests")
	flag.Parse()

	opts := []maze.GeneratorOption{}
	if *seed != 0 {
		opts = append(opts, maze.WithSeed(*seed))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	app, err := NewApp(screen, maze.NewGenerator(opts...), *size, game.Layout{CellSize: *cellSize, BorderWidth: *border})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to generate maze: %v\n", err)
		os.Exit(1)
	}

	err = app.Run()
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
