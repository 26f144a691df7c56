package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kievzenit/ylox/internal/config"
	"github.com/kievzenit/ylox/internal/runner"
	"github.com/peterh/liner"
)

// lineReader is the part of a line editor the prompt loop needs.
type lineReader interface {
	ReadLine() (string, error)
	Remember(line string)
}

// errInterrupted is returned by ReadLine when the user pressed Ctrl-C.
var errInterrupted = errors.New("interrupted")

// runPrompt evaluates one line at a time until the reader hits EOF. Errors
// in a line are reported by the runner and never end the session.
func runPrompt(r *runner.Runner, lines lineReader, stdout io.Writer) {
	for {
		line, err := lines.ReadLine()
		if errors.Is(err, errInterrupted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(stdout)
			return
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		lines.Remember(line)
		r.Run(line)
	}
}

type linerPrompt struct {
	state  *liner.State
	prompt string

	historyFile  string
	historyLimit int
	history      []string
}

func newLinerPrompt(cfg *config.Config, stderr io.Writer) *linerPrompt {
	p := &linerPrompt{
		state:        liner.NewLiner(),
		prompt:       cfg.Prompt,
		historyFile:  cfg.HistoryFile,
		historyLimit: cfg.HistoryLimit,
	}
	p.state.SetCtrlCAborts(true)

	if err := p.loadHistory(); err != nil {
		fmt.Fprintf(stderr, "history: %v\n", err)
	}
	return p
}

func (p *linerPrompt) ReadLine() (string, error) {
	line, err := p.state.Prompt(p.prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", errInterrupted
	}
	return line, err
}

func (p *linerPrompt) Remember(line string) {
	if p.historyLimit == 0 {
		return
	}

	p.history = append(p.history, line)
	if len(p.history) <= p.historyLimit {
		p.state.AppendHistory(line)
		return
	}

	p.history = p.history[len(p.history)-p.historyLimit:]
	p.state.ClearHistory()
	for _, entry := range p.history {
		p.state.AppendHistory(entry)
	}
}

// Close saves the history and gives the terminal back.
func (p *linerPrompt) Close() error {
	defer p.state.Close()

	if p.historyFile == "" || p.historyLimit == 0 {
		return nil
	}

	f, err := os.Create(p.historyFile)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = p.state.WriteHistory(f)
	return err
}

func (p *linerPrompt) loadHistory() error {
	if p.historyFile == "" || p.historyLimit == 0 {
		return nil
	}

	f, err := os.Open(p.historyFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			p.Remember(line)
		}
	}
	return scanner.Err()
}
