package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/q12we34rt5/tabularpcn/process"
)

var (
	cfgFile string
	timeout time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "tabularpcn [paths...]",
	Short:            "tabularpcn - load, annotate and inspect solver SGF game trees",
	TraverseChildren: true, // Prioritize subcommands
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'tabularpcn' is entered
			_ = cmd.Help()
			return
		}
		// Format: tabularpcn [path1 path2 ...] => behaves like the stats subcommand
		statsCmd.Run(statsCmd, args)
	},
}

func Execute() error {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to the configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Timeout for batch processing")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(annotateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
}

// loadConfig resolves the effective configuration: the --config file
// when given, defaults otherwise.
func loadConfig() (process.Config, error) {
	if cfgFile == "" {
		return process.DefaultConfig(), nil
	}
	return process.ParseConfigFile(cfgFile)
}
