package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"fileseek/internal/config"
	"fileseek/internal/eventbus"
	"fileseek/internal/platform"
	"fileseek/internal/search"
	"fileseek/internal/ui"
)

func main() {
	// Parse command line arguments
	var rootsFlag string
	var everywhere bool
	flag.StringVar(&rootsFlag, "roots", "", "Comma-separated search roots")
	flag.StringVar(&rootsFlag, "r", "", "Comma-separated search roots (shorthand)")
	flag.BoolVar(&everywhere, "everywhere", false, "Search every mounted volume")
	flag.Parse()

	// Remaining args are also treated as roots
	roots := splitRoots(rootsFlag)
	roots = append(roots, flag.Args()...)

	// Set up logging
	logFile, err := os.OpenFile("fileseek.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Warn("could not open log file", "err", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Warn("could not load config, using defaults", "err", err)
		cfg = config.DefaultConfig()
	}

	// Roots from the command line override the configured defaults;
	// -everywhere snapshots the existing top-level volumes now.
	if everywhere {
		cfg.DefaultRoots = platform.SystemRoots()
	} else if len(roots) > 0 {
		cfg.DefaultRoots = absAll(roots)
	}

	// Initialize the search service; it subscribes to search requests
	// on the bus.
	_ = search.NewSearchService(bus, cfg.Workers)

	// Create event channel for the UI
	eventChan := make(chan interface{}, 1024)

	// Forward search and error events to the UI. Match and completion
	// events must not be dropped, so sends block; the channel is
	// drained continuously by the forwarding loop below.
	forward := func(e eventbus.DomainEvent) {
		eventChan <- e
	}
	bus.Subscribe(eventbus.EventSearchStarted, forward)
	bus.Subscribe(eventbus.EventFileMatched, forward)
	bus.Subscribe(eventbus.EventSearchCompleted, forward)
	bus.Subscribe(eventbus.EventSearchFailed, forward)
	bus.Subscribe(eventbus.EventError, forward)

	// Create UI model and Bubble Tea program
	uiModel := ui.NewModel(bus, cfg)
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Forward events to the UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	go func() {
		<-sigChan
		bus.Publish(eventbus.SearchCancelRequestedEvent{})
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		log.Error("error running program", "err", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Persist default roots and case preference for next time
	if err := configSvc.Save(cfg); err != nil {
		log.Warn("failed to save config", "err", err)
	}
}

func splitRoots(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var roots []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roots = append(roots, r)
		}
	}
	return roots
}

func absAll(roots []string) []string {
	out := make([]string, 0, len(roots))
	for _, r := range roots {
		if abs, err := filepath.Abs(r); err == nil {
			out = append(out, abs)
		} else {
			out = append(out, r)
		}
	}
	return out
}
