package console

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
)

func TestConsole_run(t *testing.T) {
	cases := []struct {
		name              string
		lines             []string
		end               error
		expectedInterrupt bool
		expectedReads     int
	}{{
		name:              "skip",
		lines:             []string{"", "help", " SKIP ", "q"},
		expectedInterrupt: true,
		expectedReads:     3,
	}, {
		name:              "quit",
		lines:             []string{"quit"},
		expectedInterrupt: true,
		expectedReads:     1,
	}, {
		name:              "eof",
		lines:             []string{"foo"},
		end:               io.EOF,
		expectedInterrupt: true,
		expectedReads:     2,
	}, {
		name:              "ctrlC",
		end:               readline.ErrInterrupt,
		expectedInterrupt: true,
		expectedReads:     1,
	}, {
		name:              "brokenTerminal",
		end:               errors.New("expected"),
		expectedInterrupt: false,
		expectedReads:     1,
	}}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			interrupted := false
			instance := &Console{
				Interrupt: func() { interrupted = true },
				Conf:      &Configuration{},
			}
			reader := &fakeLineReader{lines: c.lines, end: c.end}

			instance.run(context.Background(), reader)

			assert.Equal(t, c.expectedInterrupt, interrupted)
			assert.Equal(t, c.expectedReads, reader.reads)
		})
	}
}

func TestConsole_run_ctxDone(t *testing.T) {
	interrupted := false
	instance := &Console{
		Interrupt: func() { interrupted = true },
		Conf:      &Configuration{},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	instance.run(ctx, &fakeLineReader{end: io.EOF})

	assert.False(t, interrupted)
}

type fakeLineReader struct {
	lines []string
	end   error
	reads int
}

func (this *fakeLineReader) Readline() (string, error) {
	this.reads++
	if len(this.lines) == 0 {
		if this.end == nil {
			return "", io.EOF
		}
		return "", this.end
	}
	result := this.lines[0]
	this.lines = this.lines[1:]
	return result, nil
}
