package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a source file and print the parse tree",
	Long: `Run the lexer and parser on a NusaPascal source file and print the
concrete parse tree. Parsing stops at the first syntax error.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	tree, err := parseFile(args[0])
	if err != nil {
		return err
	}

	var out strings.Builder
	renderTree(&out, tree, 0)
	fmt.Print(out.String())
	return nil
}
