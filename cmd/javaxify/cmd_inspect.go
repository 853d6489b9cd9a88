package main

import (
	"fmt"
	"os"
	"strings"

	"javaxify/internal/classgen"
	"javaxify/internal/script"

	"github.com/spf13/cobra"
)

// inspectCmd prints the located run procedure of a class
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the run procedure a class would convert from",
	Long: `Prints the parameters (with their comments) and the body of the
located run method, followed by the loader each parameter type dispatches to.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read class: %w", err)
	}

	proc, err := space.Converter().Inspect(cmd.Context(), string(src))
	if err != nil {
		return kindError(err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, proc.String())

	if len(proc.Parameters) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Loaders:")
		var b strings.Builder
		for _, p := range proc.Parameters {
			v := script.Variable{Type: p.Type, Name: p.Name, Argument: p.Name}
			fmt.Fprintf(&b, "  %s (%s): %s\n", p.Name, classgen.ShapeOf(p.Type), classgen.Resolve(v))
		}
		fmt.Fprint(out, b.String())
	}
	return nil
}
