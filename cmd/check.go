package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jsxgrep/jsxgrep"
	"github.com/jsxgrep/jsxgrep/internal"
	tt "github.com/jsxgrep/jsxgrep/internal/types"
	"github.com/jsxgrep/jsxgrep/rules"
	"github.com/jsxgrep/jsxgrep/scanner"
)

var (
	checkJSONOutput bool
	checkOutPath    string
	checkWatch      bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Run the configured rule set over files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		ruleSet, err := loadRules(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load rules", zap.Error(err))
		}
		engine := rules.NewEngine(ruleSet, logger)

		if checkWatch {
			runWatchMode(engine, args)
			return
		}

		matches, err := jsxgrep.ProcessFiles(ctx, logger, engine, args)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}

		printMatches(logger, matches, checkJSONOutput, checkOutPath)

		if len(matches) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSONOutput, "json", false, "Output matches in JSON format")
	checkCmd.Flags().StringVarP(&checkOutPath, "output", "o", "", "Output path (when using JSON)")
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "Re-check files on change")
}

func loadRules(path string) ([]rules.Rule, error) {
	if path == "" {
		return rules.Default(), nil
	}
	return rules.Load(path)
}

func runWatchMode(engine *rules.Engine, dirs []string) {
	watcher, err := internal.NewWatcher(dirs, scanner.DefaultExtensions, func(filename string) {
		matches, err := engine.CheckFile(filename)
		if err != nil {
			logger.Error("Error checking file", zap.String("file", filename), zap.Error(err))
			return
		}
		if len(matches) == 0 {
			fmt.Printf("no matches in %s\n", filename)
			return
		}
		printMatches(logger, matches, false, "")
	})
	if err != nil {
		logger.Fatal("Failed to create watcher", zap.Error(err))
	}
	if err := watcher.Start(); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	defer watcher.Stop()

	fmt.Println("watching for changes, press ctrl-c to stop")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}

func printMatches(logger *zap.Logger, matches []tt.Match, isJSON bool, jsonOutput string) {
	matchesByFile := make(map[string][]tt.Match)
	for _, m := range matches {
		matchesByFile[m.Filename] = append(matchesByFile[m.Filename], m)
	}

	sortedFiles := make([]string, 0, len(matchesByFile))
	for filename := range matchesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	if !isJSON {
		// text output
		for _, filename := range sortedFiles {
			fileMatches := matchesByFile[filename]
			sourceCode, err := internal.ReadSourceCode(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
				continue
			}
			output := internal.FormatMatchesWithArrows(fileMatches, sourceCode)
			fmt.Println(output)
		}
		return
	}

	// JSON output
	d, err := json.Marshal(matchesByFile)
	if err != nil {
		logger.Error("Error marshalling matches to JSON", zap.Error(err))
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
