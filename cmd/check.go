package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	sgf "github.com/q12we34rt5/tabularpcn"
	"github.com/q12we34rt5/tabularpcn/formatter"
	"github.com/q12we34rt5/tabularpcn/scanner"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Validate SGF files and report parse errors with source snippets",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		cfg, err := loadConfig()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}

		files, err := expandPaths(args, cfg.Extensions)
		if err != nil {
			logger.Fatal("Failed to resolve paths", zap.Error(err))
		}

		failures := 0
		for _, path := range files {
			if err := checkFile(path, cfg.ContextLines); err != nil {
				failures++
			}
		}

		fmt.Printf("%d files checked, %d with errors\n", len(files), failures)
		if failures > 0 {
			os.Exit(1)
		}
	},
}

func checkFile(path string, contextLines int) error {
	_, err := sgf.LoadFile(path)
	if err == nil {
		return nil
	}

	src, readErr := os.ReadFile(path)
	if readErr != nil {
		fmt.Printf("%s: %v\n", path, err)
		return err
	}
	fmt.Printf("%s:\n%s\n", path, formatter.Format(err, string(src), contextLines))
	return err
}

// expandPaths resolves directories to their matching files, keeping
// plain file arguments as given.
func expandPaths(paths, extensions []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := scanner.New(path, extensions...).Scan()
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			files = append(files, f.Path)
		}
	}
	return files, nil
}
