package commands

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/studytrack/core/internal/adapters/cli"
	"github.com/studytrack/core/internal/application/services"
	"github.com/studytrack/core/internal/infrastructure/config"
	"github.com/studytrack/core/internal/infrastructure/logger"
	"github.com/studytrack/core/internal/infrastructure/storage"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive StudyTrack session",
		Long:  "Load the student store, authenticate or register a student, and drive the interactive task menus",
		Run: func(cmd *cobra.Command, args []string) {
			dataFile, _ := cmd.Flags().GetString("data-file")
			runSession(dataFile)
		},
	}

	cmd.Flags().String("data-file", "", "Path of the student store file (overrides STORAGE_FILE)")
	return cmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print StudyTrack version",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			fmt.Printf("%s v%s\n", cfg.App.Name, cfg.App.Version)
		},
	}
}

func runSession(dataFile string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if dataFile != "" {
		cfg.Storage.File = dataFile
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	store := storage.New(cfg.Storage.File, appLogger)
	if err := store.Load(); err != nil {
		appLogger.Fatal("Failed to load student store", "error", err)
	}

	sessionService := services.NewSessionService(store, appLogger)
	prompter := cli.NewPrompter(os.Stdin, os.Stdout)
	menu := cli.NewMenu(prompter, sessionService, os.Stdout, appLogger)

	appLogger.Infow("Starting StudyTrack session",
		"store_file", cfg.Storage.File,
		"environment", cfg.App.Environment,
	)

	if err := menu.Run(); err != nil {
		appLogger.Errorw("Session ended with error", "error", err)
		os.Exit(1)
	}
}
