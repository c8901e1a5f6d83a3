// Command nasl runs the tree-walking NASL evaluator: as a one-shot
// script runner when given a file, or as an interactive REPL otherwise.
//
// Config/LoadFromFlags follows the shape of the teacher's
// cmd/viro/config.go: a struct populated first from flags, then
// defaulted, matching the teacher's flag-then-ApplyDefaults sequence.
package main

import (
	"flag"
	"fmt"
	"os"
)

// Config controls a single run of cmd/nasl.
type Config struct {
	ScriptFile  string
	KBDumpFile  string
	TraceFile   string
	TraceRotate int
	HistoryFile string
	Prompt      string
}

// NewConfig returns a Config with every field at its zero value; callers
// must call ApplyDefaults before use.
func NewConfig() *Config {
	return &Config{}
}

// LoadFromFlags parses os.Args[1:] into c. A bare positional argument
// names the script file; its absence means "start the REPL".
func (c *Config) LoadFromFlags() error {
	fs := flag.NewFlagSet("nasl", flag.ContinueOnError)

	kbDump := fs.String("kb-dump", "", "write the knowledge base to this file on exit")
	traceFile := fs.String("trace-file", "", "write a structured call trace to this file (no trace is written without it)")
	traceRotate := fs.Int("trace-rotate-mb", 10, "rotate the trace file after this many megabytes")
	historyFile := fs.String("history-file", "", "REPL history file (default: $HOME/.nasl_history)")
	prompt := fs.String("prompt", "", "REPL prompt text")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	c.KBDumpFile = *kbDump
	c.TraceFile = *traceFile
	c.TraceRotate = *traceRotate
	c.HistoryFile = *historyFile
	c.Prompt = *prompt

	if fs.NArg() > 0 {
		c.ScriptFile = fs.Arg(0)
	}
	return nil
}

// ApplyDefaults fills in anything LoadFromFlags left blank.
func (c *Config) ApplyDefaults() error {
	if c.TraceRotate <= 0 {
		c.TraceRotate = 10
	}
	return nil
}

func (c *Config) Validate() error {
	if c.ScriptFile != "" {
		if _, err := os.Stat(c.ScriptFile); err != nil {
			return fmt.Errorf("nasl: script file: %w", err)
		}
	}
	return nil
}
