package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/ogefest/fbrowser/app"
	"github.com/ogefest/fbrowser/internal/logging"
)

func main() {
	configPath := flag.String("config", app.DefaultConfigPath, "Path to configuration file")
	fullscreen := flag.Bool("fullscreen", false, "Use the alternate screen")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [directory]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Log output must not end up on the screen, so there is no mirror.
	rt, err := app.Bootstrap(*configPath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	width, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		width = 100 // fallback
	}

	m := newModel(rt.Model, rt.Config.Browser.BatchSize, width)
	start := rt.StartPath(flag.Arg(0))
	logging.L().Info("starting browser", logging.String("path", start))

	var opts []tea.ProgramOption
	if *fullscreen || rt.Config.Browser.Fullscreen {
		opts = append(opts, tea.WithAltScreen())
	}

	m.init = m.navigate(start)
	p := tea.NewProgram(m, opts...)
	_, runErr := p.Run()
	if err := rt.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error starting program: %v\n", runErr)
		os.Exit(1)
	}
}
