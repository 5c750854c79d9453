package main

import (
	"fmt"
	"os"

	"miniless/internal/applog"
	"miniless/internal/config"
	"miniless/internal/ui/pager"
)

const (
	version = "0.2.0"
	author  = "miniless authors"
)

func printHelp() {
	fmt.Print(`miniless - a minimal terminal pager

USAGE:
    miniless [OPTIONS] FILE

OPTIONS:
    -h, --help       Show this help message and exit
    -V, --version    Show version information and exit

KEYS:
    h j k l / arrows   move the cursor
    Ctrl-u / Ctrl-d    half-page jump up / down
    /pattern           regex search, n / N next / previous match
    Esc                quit
`)
}

func main() {
	var input string
	for _, arg := range os.Args[1:] {
		switch arg {
		case "-h", "--help":
			printHelp()
			os.Exit(0)
		case "-V", "--version":
			fmt.Printf("miniless %s by %s\n", version, author)
			os.Exit(0)
		default:
			input = arg
		}
	}
	if input == "" {
		printHelp()
		os.Exit(2)
	}

	logCloser := applog.Setup()
	defer func() { _ = logCloser.Close() }()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "miniless: %v\n", err)
		os.Exit(1)
	}

	// Open failures are reported before the terminal is ever put into raw
	// mode.
	p, err := pager.New(input, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "miniless: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = p.Close() }()

	if err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "miniless: %v\n", err)
		os.Exit(1)
	}
}
