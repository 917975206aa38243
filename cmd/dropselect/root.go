package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dropselect/internal/config"
	"dropselect/internal/eventbus"
	"dropselect/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "dropselect",
	Short: "Multi-select dropdown form in the terminal",
	Long: `dropselect renders a form of multi-select dropdowns described by a TOML or
YAML config file and saves the selected values back to it.`,
	RunE: runUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultPath(), "Config file (.toml, .yaml or .yml)")
	rootCmd.Flags().String("log", "dropselect.log", "Log file")
	rootCmd.Flags().Bool("no-mouse", false, "Disable mouse and hover tracking")
}

func runUI(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	logPath, _ := cmd.Flags().GetString("log")
	noMouse, _ := cmd.Flags().GetBool("no-mouse")

	// Set up logging
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(configPath, bus)
	cfg, err := loadOrCreateConfig(configSvc)
	if err != nil {
		return err
	}

	// Persist every form change
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		event, ok := e.(eventbus.ConfigChangedEvent)
		if !ok {
			return
		}
		cfg.ApplyValues(event.Values)
		if err := configSvc.Save(cfg); err != nil {
			log.Printf("Failed to save config: %v", err)
			bus.Publish(eventbus.ErrorEvent{Message: "Failed to save config", Err: err})
		} else {
			log.Printf("Config saved to %s", configSvc.Path())
		}
	})

	uiModel, err := ui.NewModel(cfg, bus, ui.Options{E2E: os.Getenv("DROPSELECT_E2E_TEST") == "1"})
	if err != nil {
		return fmt.Errorf("failed to build form: %w", err)
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if !noMouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(uiModel, opts...)
	uiModel.SetProgram(p)

	// Forward bus events to the UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventConfigSaved, forward)
	bus.Subscribe(eventbus.EventError, forward)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-done:
				return
			}
		}
	}()

	log.Printf("Starting UI...")
	_, err = p.Run()
	close(done)
	if err != nil {
		log.Printf("Error running program: %v", err)
		return fmt.Errorf("error running program: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}

// loadOrCreateConfig loads the config file, writing the default form when none exists
func loadOrCreateConfig(configSvc config.ConfigService) (*config.Config, error) {
	if _, err := os.Stat(configSvc.Path()); err == nil {
		cfg, err := configSvc.LoadFromPath(configSvc.Path())
		if err != nil {
			return nil, err
		}
		log.Printf("Loaded config from %s", configSvc.Path())
		return cfg, nil
	}

	log.Printf("Creating new config at %s", configSvc.Path())
	cfg := config.DefaultConfig()
	if err := configSvc.SaveToPath(cfg, configSvc.Path()); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	return cfg, nil
}
