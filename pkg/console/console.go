package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	log "github.com/echocat/slf4g"
)

// Console reads operator commands from the terminal. Every command which
// ends the intro (and EOF or Ctrl-C) calls Interrupt.
type Console struct {
	Interrupt func()

	Conf *Configuration
}

type lineReader interface {
	Readline() (string, error)
}

// Run blocks until the operator interrupted or ctx is done.
func (this *Console) Run(ctx context.Context) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          this.Conf.Prompt,
		Stdin:           os.Stdin,
		Stdout:          os.Stderr,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("cannot open operator console: %w", err)
	}
	l.ResetHistory()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		_ = l.Close()
	}()

	this.run(ctx, l)
	return nil
}

func (this *Console) run(ctx context.Context, using lineReader) {
	for {
		line, err := using.Readline()
		if ctx.Err() != nil {
			return
		}
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			log.Info("Operator console closed. Skipping intro...")
			this.interrupt()
			return
		}
		if err != nil {
			log.WithError(err).
				Warn("Cannot read from operator console. It is disabled now.")
			return
		}

		switch cmd := strings.ToLower(strings.TrimSpace(line)); cmd {
		case "":
		case "q", "quit", "skip":
			log.With("command", cmd).
				Info("Operator requested to skip the intro.")
			this.interrupt()
			return
		default:
			log.With("command", cmd).
				Warn("Unknown command. Use 'skip', 'q' or 'quit'.")
		}
	}
}

func (this *Console) interrupt() {
	if v := this.Interrupt; v != nil {
		v()
	}
}
