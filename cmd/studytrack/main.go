package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/studytrack/core/cmd/studytrack/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "studytrack",
		Short: "StudyTrack task tracker",
		Long:  `StudyTrack is a single-user, offline task and sub-task tracker with per-student password protection and flat-file persistence.`,
	}

	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
