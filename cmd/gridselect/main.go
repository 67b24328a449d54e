package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"gridselect/internal/config"
	"gridselect/internal/eventbus"
	"gridselect/internal/ui"
)

func main() {
	// Parse command line arguments
	var (
		configPath string
		model      string
		rows       int
		cols       int
	)
	flag.StringVar(&configPath, "config", "", "Path to the config file (default: user config dir)")
	flag.StringVar(&model, "model", "", "Selection model: cell or row")
	flag.IntVar(&rows, "rows", 0, "Number of grid rows")
	flag.IntVar(&cols, "cols", 0, "Number of grid columns")
	flag.Parse()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	var configSvc config.ConfigService
	if configPath != "" {
		configSvc = config.NewConfigServiceWithPath(configPath, bus)
	} else {
		configSvc = config.NewConfigServiceWithBus(bus)
	}
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg, model, rows, cols)
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid settings: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	if cfg.UI.LogFile != "" {
		logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Printf("Could not open log file: %v", err)
		} else {
			defer logFile.Close()
			log.SetOutput(logFile)
		}
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create UI model
	uiModel, err := ui.NewModel(bus, configSvc, cfg)
	if err != nil {
		fmt.Printf("Error creating grid: %v\n", err)
		os.Exit(1)
	}

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Forward bus events to the UI
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventSelectionChanged,
		eventbus.EventRowsMoved,
		eventbus.EventError,
		eventbus.EventConfigSaved,
	} {
		unsubscribe := bus.Subscribe(t, forward)
		defer unsubscribe()
	}

	// Log selection changes
	bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SelectionChangedEvent); ok {
			log.Printf("%s: %d range(s) via %s", event.Model, len(event.Ranges), event.Caller)
		}
	})

	log.Printf("Starting with %dx%d grid, %s selection", cfg.Grid.Rows, cfg.Grid.Columns, cfg.Selection.Model)

	// Run the UI
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags overrides config values with the command line flags that were set
func applyFlags(cfg *config.Config, model string, rows, cols int) {
	if model != "" {
		cfg.Selection.Model = model
	}
	if rows > 0 {
		cfg.Grid.Rows = rows
	}
	if cols > 0 {
		cfg.Grid.Columns = cols
	}
}
