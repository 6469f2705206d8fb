package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "tgprep",
		Short:   "Prepare Telegram group-chat exports for downstream analysis",
		Version: version,
	}

	rootCmd.AddCommand(simplifyCmd())
	rootCmd.AddCommand(filterCmd())
	rootCmd.AddCommand(splitCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(browseCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
