package cmd

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/pomo/internal/log"
	"github.com/zjrosen/pomo/internal/scheduler"
)

// program is the part of *tea.Program a session drives.
type program interface {
	Run() (tea.Model, error)
	Quit()
	Kill()
}

// session groups the scheduler pieces that run alongside the terminal program.
type session struct {
	bus      *scheduler.Bus
	ticker   *scheduler.Ticker
	keyboard *scheduler.Keyboard
	loop     *scheduler.Loop
}

// run starts the ticker and the program in the background and drives the
// loop on the calling goroutine. The program is always stopped and waited for
// before run returns, so the terminal is restored on every exit path. A panic
// in the loop kills the program first and is then re-raised.
func (s session) run(ctx context.Context, p program) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tickerDone := make(chan error, 1)
	go func() { tickerDone <- s.ticker.Run(ctx) }()

	uiDone := make(chan error, 1)
	go func() {
		_, err := p.Run()
		uiDone <- err
		// Without a terminal there is nothing left to drive the loop.
		cancel()
	}()

	var loopErr error
	defer func() {
		r := recover()

		s.keyboard.Close()
		s.bus.Close()
		s.ticker.Close()

		if r != nil {
			log.Error(log.CatSched, "Loop panicked", "panic", r)
			p.Kill()
			<-uiDone
			<-tickerDone
			panic(r)
		}

		p.Quit()
		uiErr := <-uiDone
		<-tickerDone
		err = sessionErr(loopErr, uiErr)
	}()

	loopErr = s.loop.Run(ctx)
	return nil
}

// sessionErr drops the errors that only report an ordinary shutdown.
func sessionErr(loopErr, uiErr error) error {
	if loopErr != nil && !errors.Is(loopErr, context.Canceled) {
		return fmt.Errorf("running timer: %w", loopErr)
	}
	if uiErr != nil && !errors.Is(uiErr, tea.ErrInterrupted) && !errors.Is(uiErr, tea.ErrProgramKilled) {
		return fmt.Errorf("running program: %w", uiErr)
	}
	return nil
}
