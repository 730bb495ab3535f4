package cmd

import (
	"fmt"
	"log"
	"os"

	"hymnal/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hymnal",
	Short: "Hymnal tracks which songs were sung at which service.",
	Run: func(cmd *cobra.Command, args []string) {
		log.Println("Starting hymnal server...")
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
