package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	sgf "github.com/q12we34rt5/tabularpcn"
)

var (
	annotateWrite    bool
	annotateOutPath  string
	annotateProgress bool
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [files...]",
	Short: "Re-serialize game trees with proof statistics embedded in comments",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file paths")
			os.Exit(1)
		}
		if annotateOutPath != "" && len(args) > 1 {
			fmt.Println("error: --output only works with a single input file")
			os.Exit(1)
		}

		failed := false
		for _, path := range args {
			if err := annotateFile(path); err != nil {
				logger.Error("Error annotating file", zap.String("file", path), zap.Error(err))
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	annotateCmd.Flags().BoolVarP(&annotateWrite, "write", "w", false, "Rewrite the input file in place")
	annotateCmd.Flags().StringVarP(&annotateOutPath, "output", "o", "", "Write the annotated tree to this path")
	annotateCmd.Flags().BoolVar(&annotateProgress, "progress", false, "Show a byte-level progress bar while parsing")
}

func annotateFile(path string) error {
	var opts []sgf.Option
	if annotateProgress {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		bar := progressbar.NewOptions(int(info.Size()),
			progressbar.OptionSetDescription(path),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowBytes(true),
		)
		opts = append(opts, sgf.WithProgress(func(pos, total int) {
			bar.Set(pos)
		}))
	}

	tree, err := sgf.LoadFile(path, opts...)
	if err != nil {
		return err
	}
	if annotateProgress {
		fmt.Println()
	}

	out := tree.Root().SGF() + "\n"
	switch {
	case annotateWrite:
		return os.WriteFile(path, []byte(out), 0o644)
	case annotateOutPath != "":
		return os.WriteFile(annotateOutPath, []byte(out), 0o644)
	default:
		fmt.Print(out)
		return nil
	}
}
