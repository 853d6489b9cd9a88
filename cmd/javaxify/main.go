package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"javaxify/internal/config"
	"javaxify/internal/convert"
	"javaxify/internal/logging"
	"javaxify/internal/ux"
	ws "javaxify/internal/workspace"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// errReported marks a failure the notifier has already printed.
var errReported = errors.New("conversion failed")

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string
	noColor    bool

	logger *zap.Logger
	cfg    *config.Config
	space  *ws.Workspace
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "javaxify",
	Short: "Convert between placeholder scripts and runnable Java classes",
	Long: `javaxify turns a short script whose bindings read "Type name = **key;"
into a runnable Java class that loads each value from inputs/<key>.json,
and turns such a class back into a script.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// setup loads configuration and binds the workspace.
func setup() error {
	root := workspace
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to resolve workspace: %w", err)
		}
		root = cwd
	}

	path := configPath
	if path == "" {
		path = filepath.Join(root, config.DefaultFileName)
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := logging.Initialize(root, cfg.Logging); err != nil {
		logger.Warn("file logging disabled", zap.Error(err))
	}

	space, err = ws.New(root, cfg, convert.NewDefault())
	if err != nil {
		return err
	}
	logger.Debug("workspace ready",
		zap.String("root", space.Root()),
		zap.String("source_root", space.SourceRoot()),
		zap.Int("workers", cfg.Workers))
	return nil
}

func notifier(cmd *cobra.Command) *ux.Notifier {
	return ux.NewNotifier(cmd.OutOrStdout(), noColor)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <workspace>/"+config.DefaultFileName+")")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	toClassCmd.Flags().StringVar(&toClassPackage, "package", "", "Package name (default: derived from the source root)")
	toClassCmd.Flags().StringVar(&toClassName, "class", "", "Class name (default: the script file name)")
	toClassCmd.Flags().BoolVar(&toClassStdout, "stdout", false, "Print the class instead of writing files")
	toScriptCmd.Flags().BoolVar(&toScriptStdout, "stdout", false, "Print the script instead of writing it")
	batchCmd.Flags().StringVar(&batchDirection, "direction", string(ws.ToClass), "Conversion direction: to-class or to-script")

	rootCmd.AddCommand(toClassCmd)
	rootCmd.AddCommand(toScriptCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
