// Package repl implements an interactive line-at-a-time NASL session,
// adapted from the teacher's internal/repl/repl.go and cmd/viro/repl.go:
// same chzyer/readline-backed input loop and history file, generalized
// from evaluating REBOL blocks to evaluating NASL statements one at a
// time against a persistent eval.Evaluator.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"

	"github.com/greenbone/nasl-go/internal/ast"
	"github.com/greenbone/nasl-go/internal/builtin"
	"github.com/greenbone/nasl-go/internal/eval"
	"github.com/greenbone/nasl-go/internal/parse"
	"github.com/greenbone/nasl-go/internal/trace"
	"github.com/greenbone/nasl-go/internal/value"
)

// Config controls REPL startup.
type Config struct {
	HistoryFile string
	Prompt      string
}

// DefaultConfig returns a Config with a history file under the user's
// home directory, matching the teacher's cmd/viro/config.go default.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		HistoryFile: filepath.Join(home, ".nasl_history"),
		Prompt:      "nasl> ",
	}
}

// Run starts an interactive session, evaluating one statement at a time
// against a single persistent Evaluator so variables and function
// definitions survive across lines, until EOF (Ctrl-D) or an explicit
// "quit"/"exit" line.
func Run(cfg Config, scriptKey string, natives builtin.Registry, sink builtin.Sink, tr *trace.Session, out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("repl: init readline: %w", err)
	}
	defer rl.Close()

	ev := eval.New(scriptKey, natives, sink, tr)

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("repl: read line: %w", err)
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}
		if err := evalLine(ev, line, out); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func evalLine(ev *eval.Evaluator, line string, out io.Writer) error {
	p := parse.New(line)
	for {
		stmt, err := p.Next()
		if err != nil {
			return err
		}
		if _, ok := stmt.(*ast.EoF); ok {
			return nil
		}
		v, err := ev.Eval(stmt)
		if err != nil {
			return err
		}
		if v.Kind() != value.KindNone {
			fmt.Fprintln(out, v.String())
		}
	}
}
