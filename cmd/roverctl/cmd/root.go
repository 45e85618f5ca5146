package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information, set by build flags.
var Version = "0.1.0-dev"

var rootCmd = &cobra.Command{
	Use:   "roverctl",
	Short: "Send RoverScript commands to a running rover",
	Long: `roverctl copies a local RoverScript file's contents into a running
rover's watched command file, the same way the original controller
program handed a script off to a rover process.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
