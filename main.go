package main

import (
	"log/slog"
	"os"

	"github.com/mhalden/closet/cmd/process"
	"github.com/mhalden/closet/cmd/reconcile"
	"github.com/mhalden/closet/cmd/serve"
	"github.com/mhalden/closet/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "closet",
		Short: "Personal closet catalogue",
		Long: `Closet crops clothing articles out of photos with a hosted image
model, keeps the results in a SQLite catalogue, and serves them over a
small JSON API.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(config.NewLogger())
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serve.Command())
	rootCmd.AddCommand(process.Command())
	rootCmd.AddCommand(reconcile.Command())

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
