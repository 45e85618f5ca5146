package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var commandFile string

var sendCmd = &cobra.Command{
	Use:   "send [script]",
	Short: "Send a RoverScript file to a rover's command file",
	Long: `Read script and write its contents into --command-file, which the
target rover's daemon is watching. The daemon truncates the command file
once it has read it, so re-running send re-issues the same script.`,
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVar(&commandFile, "command-file", "", "the rover's watched command file")
	sendCmd.MarkFlagRequired("command-file")
}

func runSend(cmd *cobra.Command, args []string) error {
	scriptPath := args[0]

	content, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read script %s: %w", scriptPath, err)
	}

	if err := os.WriteFile(commandFile, content, 0644); err != nil {
		return fmt.Errorf("failed to write command file %s: %w", commandFile, err)
	}

	fmt.Println("Command sent successfully! See the rover's log for details.")
	return nil
}
