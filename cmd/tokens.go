package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jsxgrep/jsxgrep"
)

var tokensShowTrivia bool

var tokensCmd = &cobra.Command{
	Use:   "tokens [files...]",
	Short: "Dump the token stream of source files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file paths")
			os.Exit(1)
		}

		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				logger.Error("Error reading file", zap.String("file", path), zap.Error(err))
				continue
			}

			toks := jsxgrep.Tokenize(string(data))
			if tokensShowTrivia {
				toks = jsxgrep.TokenizeAll(string(data))
			}

			fmt.Printf("%s:\n", path)
			for _, t := range toks {
				fmt.Printf("  %d:%d\t%s\t%q\n", t.Line, t.Column, t.Type, t.Text)
			}
		}
	},
}

func init() {
	tokensCmd.Flags().BoolVar(&tokensShowTrivia, "trivia", false, "Include whitespace and comment tokens")
}
