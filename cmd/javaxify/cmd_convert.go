package main

import (
	"fmt"
	"os"

	"javaxify/internal/convert"
	ws "javaxify/internal/workspace"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	toClassPackage string
	toClassName    string
	toClassStdout  bool
	toScriptStdout bool
)

// toClassCmd converts a script into a runnable class
var toClassCmd = &cobra.Command{
	Use:   "to-class <file>",
	Short: "Convert a script into a runnable Java class",
	Long: `Reads a script, writes <Name>.java next to it and creates an empty
inputs/<key>.json for every binding that has none yet.

Example:
  javaxify to-class src/com/example/Demo.javax`,
	Args: cobra.ExactArgs(1),
	RunE: runToClass,
}

// toScriptCmd converts a class back into a script
var toScriptCmd = &cobra.Command{
	Use:   "to-script <file>",
	Short: "Convert a Java class back into a script",
	Long: `Locates the public static run method of a class and writes
<dir>/javax/<Name>.javax from its parameters and body.`,
	Args: cobra.ExactArgs(1),
	RunE: runToScript,
}

func runToClass(cmd *cobra.Command, args []string) error {
	file := args[0]

	if !toClassStdout && toClassPackage == "" && toClassName == "" {
		res := space.WriteClass(file)
		return report(cmd, "to-class", res)
	}

	src, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	pkg := toClassPackage
	if pkg == "" {
		if derived, err := ws.PackageFor(space.SourceRoot(), file); err == nil {
			pkg = derived
		} else {
			logger.Debug("package not derivable, using default package", zap.Error(err))
		}
	}
	name := toClassName
	if name == "" {
		name = ws.ClassNameFor(file, cfg.DefaultClassName)
	}

	class := space.Converter().ScriptToClass(string(src), pkg, name)
	if toClassStdout {
		fmt.Fprint(cmd.OutOrStdout(), class.Text)
		return nil
	}
	return fmt.Errorf("--package and --class require --stdout; written classes take their names from the file location")
}

func runToScript(cmd *cobra.Command, args []string) error {
	file := args[0]

	if toScriptStdout {
		src, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read class: %w", err)
		}
		text, err := space.Converter().ClassToScript(cmd.Context(), string(src))
		if err != nil {
			return kindError(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	}

	res := space.WriteScript(cmd.Context(), file)
	return report(cmd, "to-script", res)
}

// kindError prefixes err with its failure kind, keeping it unwrappable.
func kindError(err error) error {
	return fmt.Errorf("[%s] %w", convert.KindOf(err), err)
}

// report prints res and converts a failure into errReported.
func report(cmd *cobra.Command, action string, res ws.Result) error {
	notifier(cmd).Result(res)
	if res.Err != nil {
		logger.Warn(action+" failed",
			zap.String("source", res.Source),
			zap.String("kind", string(res.Kind())),
			zap.Error(res.Err))
		return errReported
	}
	logger.Info(action, zap.String("source", res.Source), zap.String("output", res.Output))
	return nil
}
