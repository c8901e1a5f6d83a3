package main

import (
	"fmt"
	"os"
)

func main() {
	cfg := NewConfig()
	if err := cfg.LoadFromFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "nasl: %v\n", err)
		os.Exit(2)
	}
	if err := cfg.ApplyDefaults(); err != nil {
		fmt.Fprintf(os.Stderr, "nasl: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "nasl: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(cfg))
}
