package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a source file",
	Long: `Tokenize a NusaPascal source file with the configured automaton and
print the resulting token sequence.`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	tokens, err := tokenizeFile(args[0])
	if err != nil {
		return err
	}

	var out strings.Builder
	renderTokens(&out, tokens)
	fmt.Print(out.String())
	return nil
}
