package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	gomidi "gitlab.com/gomidi/midi/v2"

	"go-accompany/config"
	"go-accompany/debug"
	"go-accompany/midi"
	"go-accompany/perform"
	"go-accompany/tui"
)

func main() {
	if err := debug.Enable(); err != nil {
		fmt.Fprintf(os.Stderr, "debug log unavailable: %v\n", err)
	}
	defer gomidi.CloseDriver()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	performer, err := perform.New(cfg.Tempo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer performer.Scheduler().Stop()

	// Reconnect the ports from the last session if they are still around.
	if cfg.OutPort != "" {
		if send, err := midi.OpenSender(cfg.OutPort); err == nil {
			performer.SetSender(send)
		} else {
			debug.Log("main", "saved output port unavailable: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go performer.Run(ctx)

	m := tui.NewModel(performer, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "config save: %v\n", err)
	}
}
