package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jsxgrep/jsxgrep"
	"github.com/jsxgrep/jsxgrep/pattern"
	"github.com/jsxgrep/jsxgrep/rules"
)

var (
	searchJSONOutput bool
	searchOutPath    string
)

var searchCmd = &cobra.Command{
	Use:   "search [pattern] [paths...]",
	Short: "Search files for a token pattern",
	Long: `Compiles the pattern once and reports every match with file, line and column.
Example) jsxgrep search '\k"var" (\i)' src/`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide a pattern")
			os.Exit(1)
		}

		expr := args[0]
		paths := args[1:]
		if len(paths) == 0 {
			paths = []string{"."}
		}

		if _, err := pattern.Compile(expr); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine := rules.NewEngine([]rules.Rule{{
			Name:     "search",
			Pattern:  expr,
			Message:  "pattern match",
			Severity: rules.SeverityInfo,
		}}, logger)

		matches, err := jsxgrep.ProcessFiles(ctx, logger, engine, paths)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}

		printMatches(logger, matches, searchJSONOutput, searchOutPath)
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSONOutput, "json", false, "Output matches in JSON format")
	searchCmd.Flags().StringVarP(&searchOutPath, "output", "o", "", "Output path (when using JSON)")
}
