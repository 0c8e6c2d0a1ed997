// Package process drives batch loading of SGF files: single files,
// whole directory trees with a bounded worker pool, and a watch mode.
package process

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	sgf "github.com/q12we34rt5/tabularpcn"
	"github.com/q12we34rt5/tabularpcn/scanner"
)

// Report summarizes one annotated game tree.
type Report struct {
	Path          string       `json:"path"`
	Nodes         int          `json:"nodes"`
	RootType      sgf.NodeType `json:"root_type"`
	TreeSize      uint64       `json:"tree_size"`
	ProofTreeSize uint64       `json:"proof_tree_size"`
	Solved        bool         `json:"solved"`
}

// Config controls batch processing.
type Config struct {
	Name         string   `yaml:"name"`
	Workers      int      `yaml:"workers"`
	Extensions   []string `yaml:"extensions"`
	ContextLines int      `yaml:"context-lines"`
}

// DefaultConfig returns the configuration used when no config file is
// given.
func DefaultConfig() Config {
	return Config{
		Name:         "tabularpcn",
		Workers:      runtime.NumCPU(),
		Extensions:   []string{".sgf"},
		ContextLines: 2,
	}
}

// ParseConfigFile reads a YAML configuration file. Zero-valued fields
// fall back to their defaults.
func ParseConfigFile(path string) (Config, error) {
	config := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, err
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if len(config.Extensions) == 0 {
		config.Extensions = []string{".sgf"}
	}
	return config, nil
}

// File loads and annotates a single SGF file and summarizes it.
func File(path string) (Report, error) {
	tree, err := sgf.LoadFile(path)
	if err != nil {
		return Report{}, err
	}

	root := tree.Root()
	return Report{
		Path:          path,
		Nodes:         tree.Len(),
		RootType:      root.Type,
		TreeSize:      root.TreeSize,
		ProofTreeSize: root.ProofTreeSize,
		Solved:        root.Solved,
	}, nil
}

// Files processes every path. Directories are scanned for files with
// the configured extensions and processed concurrently; plain files are
// processed directly. Reports come back sorted by path.
func Files(ctx context.Context, logger *zap.Logger, paths []string, cfg Config) ([]Report, error) {
	var allReports []Report
	for _, path := range paths {
		reports, err := Path(ctx, logger, path, cfg)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allReports = append(allReports, reports...)
	}

	sort.Slice(allReports, func(i, j int) bool { return allReports[i].Path < allReports[j].Path })
	return allReports, nil
}

// Path processes one file or directory.
func Path(ctx context.Context, logger *zap.Logger, path string, cfg Config) ([]Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		report, err := File(path)
		if err != nil {
			return nil, err
		}
		return []Report{report}, nil
	}

	files, err := scanner.New(path, cfg.Extensions...).Scan()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	// channels for results and errors
	resultChan := make(chan Report, len(files))
	errorChan := make(chan error, len(files))

	// limit the number of workers
	maxWorkers := cfg.Workers
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	sem := make(chan struct{}, maxWorkers)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
			go func(fp string) {
				defer func() { <-sem }()

				report, err := File(fp)
				if err != nil {
					if logger != nil {
						logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
					}
					errorChan <- fmt.Errorf("%s: %w", fp, err)
					resultChan <- Report{}
				} else {
					resultChan <- report
					errorChan <- nil
				}
				bar.Add(1)
			}(file.Path)
		}
	}

	var reports []Report
	var firstErr error
	for range files {
		err := <-errorChan
		result := <-resultChan
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		reports = append(reports, result)
	}

	fmt.Println()
	if firstErr != nil {
		return nil, firstErr
	}
	return reports, nil
}
