package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	rulesFile string
	plainOut  bool
)

var rootCmd = &cobra.Command{
	Use:   "nusapascal",
	Short: "Compiler front end for the NusaPascal teaching language",
	Long: `nusapascal analyzes programs written in NusaPascal, a Pascal-family
teaching language with Indonesian keywords.

Stages:
  lex    - tokenize a source file with the configured automaton
  parse  - build and print the concrete parse tree
  check  - run the full front end and report semantic diagnostics
  watch  - re-run check whenever the source file changes`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, renderError(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "dfa_rules.json", "automaton rule file (json, yaml or toml)")
	rootCmd.PersistentFlags().BoolVar(&plainOut, "plain", false, "disable styled output")
}
