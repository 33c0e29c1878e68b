package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/howsoai/amalgam-go/trace"
)

func main() {
	var (
		file     = flag.String("file", "execution.trace", "Trace file to inspect")
		dir      = flag.String("dir", "", "Directory containing the trace file")
		commands = flag.Bool("commands", false, "Print only replayable command lines and exit")
		plain    = flag.Bool("plain", false, "Plain listing, no TUI")
	)
	flag.Parse()

	path := *file
	if *dir != "" {
		path = filepath.Join(*dir, *file)
	}

	if err := run(path, *commands, *plain); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, commandsOnly, plain bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	if commandsOnly {
		lines, err := trace.Commands(f)
		if err != nil {
			return fmt.Errorf("parse trace: %w", err)
		}
		for _, line := range lines {
			fmt.Println(line)
		}
		return nil
	}

	entries, err := trace.Entries(f)
	if err != nil {
		return fmt.Errorf("parse trace: %w", err)
	}

	if plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		printEntries(entries)
		return nil
	}

	return runInteractive(path, entries)
}

func printEntries(entries []trace.Entry) {
	for _, e := range entries {
		switch e.Kind {
		case trace.KindCommand:
			fmt.Println(e.Text)
		case trace.KindResult:
			fmt.Printf("  result:%s\n", e.Text)
		case trace.KindNote:
			fmt.Printf("  note:%s\n", e.Text)
		case trace.KindTime:
			fmt.Printf("  time: %s %s\n", e.Label, e.Text)
		}
	}
}
