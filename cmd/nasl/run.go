package main

import (
	"fmt"
	"os"

	"github.com/greenbone/nasl-go/internal/eval"
	"github.com/greenbone/nasl-go/internal/kb"
	"github.com/greenbone/nasl-go/internal/nativefuncs"
	"github.com/greenbone/nasl-go/internal/parse"
	"github.com/greenbone/nasl-go/internal/repl"
	"github.com/greenbone/nasl-go/internal/trace"
	"github.com/greenbone/nasl-go/internal/value"
)

// Exit codes, matching the teacher's small enumerated set in
// cmd/viro/exit.go, narrowed to what this driver actually distinguishes.
const (
	exitOK       = 0
	exitScript   = 1 // a script-level evaluation error
	exitInternal = 2 // the host itself failed (bad file, trace init, ...)
)

func run(cfg *Config) int {
	tr := trace.Discard()
	if cfg.TraceFile != "" {
		tr = trace.New(cfg.TraceFile, cfg.TraceRotate)
		tr.Enable()
	}
	defer tr.Close()

	store := kb.New()
	if cfg.KBDumpFile != "" {
		defer dumpKB(store, cfg.KBDumpFile)
	}

	if cfg.ScriptFile == "" {
		return runREPL(cfg, store, tr)
	}
	return runScript(cfg, store, tr)
}

func runScript(cfg *Config, store *kb.KB, tr *trace.Session) int {
	src, err := os.ReadFile(cfg.ScriptFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nasl: %v\n", err)
		return exitInternal
	}

	p := parse.New(string(src))
	interp := eval.NewInterpreter(p, cfg.ScriptFile, nativefuncs.Registry(), store.AsSink(), tr)

	code := exitOK
	for v, err := range interp.Results() {
		if err != nil {
			fmt.Fprintf(os.Stderr, "nasl: %v\n", err)
			code = exitScript
			continue
		}
		if ex, ok := v.(value.ExitValue); ok {
			return int(ex.Code)
		}
	}
	return code
}

func runREPL(cfg *Config, store *kb.KB, tr *trace.Session) int {
	rcfg := repl.DefaultConfig()
	if cfg.HistoryFile != "" {
		rcfg.HistoryFile = cfg.HistoryFile
	}
	if cfg.Prompt != "" {
		rcfg.Prompt = cfg.Prompt
	}
	if err := repl.Run(rcfg, "repl", nativefuncs.Registry(), store.AsSink(), tr, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "nasl: %v\n", err)
		return exitInternal
	}
	return exitOK
}

func dumpKB(store *kb.KB, path string) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nasl: kb dump: %v\n", err)
		return
	}
	defer f.Close()
	for _, k := range store.Keys() {
		for _, v := range store.GetAll(k) {
			fmt.Fprintf(f, "%s = %s\n", k, v.String())
		}
	}
}
