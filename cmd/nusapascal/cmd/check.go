package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	showSymbols bool
	showAST     bool
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Run the full front end on a source file",
	Long: `Run lexing, parsing and semantic analysis on a NusaPascal source
file. Semantic diagnostics are accumulated and all of them are reported;
the command fails when any are present.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&showSymbols, "symbols", false, "print the symbol tables")
	checkCmd.Flags().BoolVar(&showAST, "ast", false, "print the decorated tree")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	program, analyzer, diags, err := checkFile(args[0])
	if err != nil {
		return err
	}

	var out strings.Builder
	if showAST {
		fmt.Fprintf(&out, "%s\n", renderTitle("Decorated tree"))
		renderAST(&out, program, 1)
	}
	renderDiagnostics(&out, diags)
	if showSymbols {
		renderSymbols(&out, analyzer.Symbols)
	}
	fmt.Print(out.String())

	if len(diags) > 0 {
		return fmt.Errorf("%d semantic error(s) in %s", len(diags), args[0])
	}
	return nil
}
