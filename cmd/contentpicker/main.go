package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"contentpicker/internal/config"
	"contentpicker/internal/domain"
	"contentpicker/internal/eventbus"
	"contentpicker/internal/ui"
	"contentpicker/internal/wpapi"
)

var version = "dev"

func main() {
	var configPath string
	var showVersion bool
	flag.StringVar(&configPath, "config", "", "Path to the config file")
	flag.StringVar(&configPath, "c", "", "Path to the config file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Print the version and exit")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Println("contentpicker", version)
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config:\n%v\n", err)
		os.Exit(1)
	}

	// Set up logging
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	bus := eventbus.New()
	defer bus.Close()
	cfg.Announce(bus)

	store := config.NewSelectionStore(cfg.SelectionFile, bus)
	content, err := store.Load()
	if err != nil && !errors.Is(err, config.ErrNoSelection) {
		fmt.Fprintf(os.Stderr, "Error loading selection: %v\n", err)
		os.Exit(1)
	}
	log.Printf("Loaded %d picked item(s) from %s", len(content), store.Path())

	client := wpapi.NewClient(wpapi.Options{
		BaseURL:     cfg.API.BaseURL,
		Username:    cfg.API.Username,
		AppPassword: cfg.API.AppPassword,
		Timeout:     cfg.API.Timeout,
		UserAgent:   "contentpicker/" + version,
	})

	opts := ui.DefaultPickerOptions()
	opts.Content = content
	opts.MaxContentItems = cfg.Picker.MaxItems
	opts.IsOrderable = cfg.Picker.Orderable
	opts.UniqueContentItems = cfg.Picker.UniqueItems
	opts.ExcludeCurrentPost = cfg.Picker.ExcludeCurrentPost
	opts.Mode = cfg.ParsedMode()
	opts.ContentTypes = cfg.Search.ContentTypes
	opts.PerPage = cfg.Search.PerPage
	opts.FetchInitialResults = cfg.Search.FetchInitialResults
	opts.Debounce = cfg.Search.Debounce
	opts.CacheSize = cfg.Search.CacheSize
	opts.RestBases = cfg.API.RestBases
	opts.OnPickChange = func(items []domain.PickedItem) {
		if err := store.Save(items); err != nil {
			log.Printf("Failed to save selection: %v", err)
		}
	}

	uiModel := ui.NewModel(client, bus, cfg.PostContext(), opts)
	uiModel.SetTitle("Content Picker")
	defer uiModel.Close()

	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Forward events the UI reports on
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventSelectionSaved, forward)
	bus.Subscribe(eventbus.EventQueryFailed, forward)

	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Handle termination signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Quit()
	}()

	if os.Getenv("CONTENTPICKER_E2E_TEST") == "1" {
		fmt.Println("__READY__")
	}

	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: contentpicker [--config path]\n\n")
	fmt.Fprintf(out, "Search a WordPress site and pick content for the current post.\n")
	fmt.Fprintf(out, "Settings come from the config file and %s_* environment variables,\n", config.EnvPrefix)
	fmt.Fprintf(out, "for example %s_API_BASE_URL=https://example.com/wp-json.\n\n", config.EnvPrefix)
	fmt.Fprintf(out, "Options:\n")
	flag.PrintDefaults()
}
