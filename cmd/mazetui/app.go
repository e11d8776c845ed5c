package main

import (
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/gdamore/tcell/v2"
)

const frameInterval = 50 * time.Millisecond

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	actorStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	exitStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Generator builds the mazes the app plays.
type Generator interface {
	Generate(size int) (*maze.Maze, error)
}

// App is a single-player maze walk rendered in the terminal.
type App struct {
	screen    tcell.Screen
	generator Generator
	size      int
	layout    game.Layout
	now       func() time.Time

	maze    *maze.Maze
	tracker *game.Tracker
	timing  game.Timing
	moves   int
	blocked int
}

// NewApp creates an App and generates its first maze.
func NewApp(screen tcell.Screen, g Generator, size int, layout game.Layout) (*App, error) {
	a := &App{
		screen:    screen,
		generator: g,
		size:      size,
		layout:    layout,
		now:       time.Now,
	}
	if err := a.reset(); err != nil {
		return nil, err
	}
	return a, nil
}

// reset generates a fresh maze and clears the run state.
func (a *App) reset() error {
	m, err := a.generator.Generate(a.size)
	if err != nil {
		return err
	}
	a.maze = m
	a.tracker = game.NewTracker(m)
	a.timing = game.Timing{}
	a.moves, a.blocked = 0, 0
	return nil
}

// finished reports whether the actor stands on the exit after a walk.
func (a *App) finished() bool {
	return !a.timing.End().IsZero()
}

// move turns a direction key into a movement request of one cell pitch.
func (a *App) move(axis game.Axis, sign int) {
	if a.finished() {
		return
	}
	if a.timing.Start().IsZero() {
		a.timing.SetStart(a.now())
	}

	if !a.tracker.RequestMove(axis, sign*a.layout.Pitch()) {
		a.blocked++
		return
	}
	a.moves++
	if a.tracker.AtExit() {
		a.timing.SetEnd(a.now())
	}
}

// handleKey applies one key press and reports whether the app keeps running.
func (a *App) handleKey(key tcell.Key, r rune) (bool, error) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false, nil
	case tcell.KeyUp:
		a.move(game.AxisY, -1)
	case tcell.KeyDown:
		a.move(game.AxisY, 1)
	case tcell.KeyLeft:
		a.move(game.AxisX, -1)
	case tcell.KeyRight:
		a.move(game.AxisX, 1)
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return false, nil
		case 'w', 'W':
			a.move(game.AxisY, -1)
		case 's', 'S':
			a.move(game.AxisY, 1)
		case 'a', 'A':
			a.move(game.AxisX, -1)
		case 'd', 'D':
			a.move(game.AxisX, 1)
		case 'r', 'R':
			if err := a.reset(); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}

// status is the line printed under the board.
func (a *App) status() string {
	switch {
	case a.finished():
		return fmt.Sprintf("Exit reached in %s with %d moves. r: new maze, q: quit", a.timing.Elapsed().Round(time.Millisecond), a.moves)
	case a.timing.Start().IsZero():
		return "WASD or arrows to move, r: new maze, q: quit"
	default:
		return fmt.Sprintf("%s  moves: %d  bumps: %d", a.now().Sub(a.timing.Start()).Round(time.Second), a.moves, a.blocked)
	}
}

func (a *App) draw() {
	a.screen.Clear()

	lines := renderBoard(a.maze, a.tracker.Position())
	for y, line := range lines {
		for x, r := range line {
			style := wallStyle
			switch r {
			case actorRune:
				style = actorStyle
			case exitRune:
				style = exitStyle
			}
			a.screen.SetContent(x, y, r, nil, style)
		}
	}

	for x, r := range []rune(a.status()) {
		a.screen.SetContent(x, len(lines)+1, r, nil, statusStyle)
	}

	a.screen.Show()
}

// Run polls the screen until the player quits.
func (a *App) Run() error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go a.screen.ChannelEvents(events, quit)

	a.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				running, err := a.handleKey(ev.Key(), ev.Rune())
				if err != nil || !running {
					return err
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}
			a.draw()
		case <-ticker.C:
			if !a.finished() && !a.timing.Start().IsZero() {
				a.draw()
			}
		}
	}
}
