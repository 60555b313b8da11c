package jsxgrep

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	tt "github.com/jsxgrep/jsxgrep/internal/types"
	"github.com/jsxgrep/jsxgrep/scanner"
)

// CheckEngine is the part of the rules engine that ProcessFiles needs.
type CheckEngine interface {
	CheckFile(filename string) ([]tt.Match, error)
}

// ProcessFiles runs engine over every path. Directories are scanned for
// source files and checked concurrently with a progress bar; single files
// are checked directly.
func ProcessFiles(ctx context.Context, logger *zap.Logger, engine CheckEngine, paths []string) ([]tt.Match, error) {
	var allMatches []tt.Match
	for _, path := range paths {
		matches, err := processPath(ctx, logger, engine, path)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allMatches = append(allMatches, matches...)
	}
	return allMatches, nil
}

func processPath(ctx context.Context, logger *zap.Logger, engine CheckEngine, path string) ([]tt.Match, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		return engine.CheckFile(path)
	}

	files, err := scanner.New(path).Scan()
	if err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, nil
	}

	resultChan := make(chan []tt.Match, len(files))
	errorChan := make(chan error, len(files))

	maxWorkers := runtime.NumCPU()
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

	var wg sync.WaitGroup
	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
			wg.Add(1)
			go func(fp string) {
				defer func() { <-sem; wg.Done() }()

				fileMatches, err := engine.CheckFile(fp)
				if err != nil {
					if logger != nil {
						logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
					}
					errorChan <- err
					resultChan <- nil
				} else {
					resultChan <- fileMatches
					errorChan <- nil
				}
				bar.Add(1)
			}(file.Path)
		}
	}
	wg.Wait()

	var matches []tt.Match
	for range files {
		if err := <-errorChan; err != nil {
			continue
		}
		if result := <-resultChan; result != nil {
			matches = append(matches, result...)
		}
	}

	fmt.Println()
	return matches, nil
}
