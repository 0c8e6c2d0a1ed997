package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/q12we34rt5/tabularpcn/process"
)

var (
	statsJsonOutput bool
	statsOutPath    string
)

var statsCmd = &cobra.Command{
	Use:   "stats [paths...]",
	Short: "Summarize annotated game trees per file",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		cfg, err := loadConfig()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}

		reports, err := process.Files(ctx, logger, args, cfg)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}

		printReports(logger, reports, statsJsonOutput, statsOutPath)
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJsonOutput, "json", false, "Output reports in JSON format")
	statsCmd.Flags().StringVarP(&statsOutPath, "output", "o", "", "Output path (when using JSON)")
}

func printReports(logger *zap.Logger, reports []process.Report, isJson bool, jsonOutput string) {
	if !isJson {
		// text output
		for _, r := range reports {
			status := "unsolved"
			if r.Solved {
				status = "solved"
			}
			fmt.Printf("%s: %d nodes, root %s %s, tree_size=%d, proof_tree_size=%d\n",
				r.Path, r.Nodes, r.RootType, status, r.TreeSize, r.ProofTreeSize)
		}
		return
	}

	// JSON output
	d, err := json.Marshal(reports)
	if err != nil {
		logger.Error("Error marshalling reports to JSON", zap.Error(err))
		return
	}
	if jsonOutput == "" {
		fmt.Println(string(d))
		return
	}
	f, err := os.Create(jsonOutput)
	if err != nil {
		logger.Error("Error creating JSON output file", zap.Error(err))
		return
	}
	defer f.Close()
	if _, err := f.Write(d); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
	}
}
