package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/q12we34rt5/tabularpcn/process"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Reload and summarize game trees whenever they change on disk",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide directory paths")
			os.Exit(1)
		}

		cfg, err := loadConfig()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}

		watcher, err := process.NewWatcher(logger, args, cfg.Extensions...)
		if err != nil {
			logger.Fatal("Failed to create watcher", zap.Error(err))
		}
		if err := watcher.Start(); err != nil {
			logger.Fatal("Failed to start watching", zap.Error(err))
		}
		logger.Info("watching", zap.Strings("dirs", args))

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		if err := watcher.Stop(); err != nil {
			logger.Error("Error stopping watcher", zap.Error(err))
		}
	},
}
