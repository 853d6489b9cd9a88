// Package workspace persists conversions: it derives package and class names
// from file locations, writes generated classes with their input stubs and
// generated scripts, and runs batch and watch modes over a directory tree.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"javaxify/internal/classgen"
	"javaxify/internal/config"
	"javaxify/internal/convert"
	"javaxify/internal/logging"
)

// ErrOutsideSourceRoot is returned when a script does not live under the source root.
var ErrOutsideSourceRoot = errors.New("file is not under the source root")

// Result describes one persisted conversion.
type Result struct {
	Source string
	Output string
	// Inputs lists the inputs/<key>.json path of every binding, in binding order.
	Inputs []string
	// Created lists the input files that did not exist before this run.
	Created []string
	Err     error
}

// Kind labels the failure, if any.
func (r Result) Kind() convert.Kind {
	return convert.KindOf(r.Err)
}

// Workspace binds a converter to a directory tree and its configuration.
type Workspace struct {
	root string
	cfg  *config.Config
	conv *convert.Converter
}

// New returns a Workspace rooted at root. A relative cfg.SourceRoot is taken
// relative to root.
func New(root string, cfg *config.Config, conv *convert.Converter) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace: %w", err)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if conv == nil {
		conv = convert.NewDefault()
	}
	return &Workspace{root: abs, cfg: cfg, conv: conv}, nil
}

// Root returns the absolute workspace root.
func (w *Workspace) Root() string {
	return w.root
}

// Config returns the workspace configuration.
func (w *Workspace) Config() *config.Config {
	return w.cfg
}

// Converter returns the converter bound to the workspace.
func (w *Workspace) Converter() *convert.Converter {
	return w.conv
}

// SourceRoot returns the absolute source root.
func (w *Workspace) SourceRoot() string {
	if filepath.IsAbs(w.cfg.SourceRoot) {
		return filepath.Clean(w.cfg.SourceRoot)
	}
	return filepath.Join(w.root, w.cfg.SourceRoot)
}

// PackageFor returns the Java package of file: the path of its directory
// relative to sourceRoot, dot separated. Files directly in sourceRoot belong
// to the default package ("").
func PackageFor(sourceRoot, file string) (string, error) {
	rootAbs, err := filepath.Abs(sourceRoot)
	if err != nil {
		return "", err
	}
	fileAbs, err := filepath.Abs(file)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(rootAbs, filepath.Dir(fileAbs))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s (source root %s)", ErrOutsideSourceRoot, file, sourceRoot)
	}
	if rel == "." {
		return "", nil
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", "."), nil
}

// ClassNameFor returns the file name without its last extension, or
// fallback when that is empty.
func ClassNameFor(file, fallback string) string {
	base := filepath.Base(file)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fallback
	}
	return name
}

// WriteClass converts a script file and writes <Class><class_ext> next to it,
// creating inputs/ and an empty inputs/<key>.json for every binding that has
// no file yet. An existing class file is overwritten; input files never are.
func (w *Workspace) WriteClass(file string) Result {
	return w.writeClass(file, logging.Audit())
}

func (w *Workspace) writeClass(file string, audit *logging.AuditLogger) (res Result) {
	res.Source = file
	start := time.Now()
	defer func() {
		audit.Conversion(logging.AuditConvertClass, file, res.Output, start, string(res.Kind()), res.Err)
	}()

	src, err := os.ReadFile(file)
	if err != nil {
		res.Err = fmt.Errorf("failed to read script: %w", err)
		return res
	}

	pkg, err := PackageFor(w.SourceRoot(), file)
	if err != nil {
		res.Err = err
		return res
	}
	className := ClassNameFor(file, w.cfg.DefaultClassName)

	class := w.conv.ScriptToClass(string(src), pkg, className)

	targetDir := filepath.Join(w.SourceRoot(), filepath.FromSlash(strings.ReplaceAll(pkg, ".", "/")))
	inputsDir := filepath.Join(targetDir, classgen.InputsDir)
	if err := os.MkdirAll(inputsDir, 0755); err != nil {
		res.Err = fmt.Errorf("failed to create inputs directory: %w", err)
		return res
	}

	for _, v := range class.Vars {
		path := filepath.Join(inputsDir, v.Argument+".json")
		res.Inputs = append(res.Inputs, path)
		created, err := createIfAbsent(path)
		if err != nil {
			res.Err = fmt.Errorf("failed to create input %s: %w", path, err)
			return res
		}
		if created {
			res.Created = append(res.Created, path)
		}
	}

	res.Output = filepath.Join(targetDir, className+w.cfg.ClassExt)
	if err := os.WriteFile(res.Output, []byte(class.Text), 0644); err != nil {
		res.Err = fmt.Errorf("failed to write class: %w", err)
		return res
	}

	logging.Workspace("WriteClass: %s -> %s (%d input(s), %d new)",
		file, res.Output, len(res.Inputs), len(res.Created))
	return res
}

func createIfAbsent(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}
	return true, f.Close()
}

// WriteScript converts a class file and writes
// <dir>/<script_dir>/<Name><script_ext>, overwriting any previous script.
func (w *Workspace) WriteScript(ctx context.Context, file string) Result {
	return w.writeScript(ctx, file, logging.Audit())
}

func (w *Workspace) writeScript(ctx context.Context, file string, audit *logging.AuditLogger) (res Result) {
	res.Source = file
	start := time.Now()
	defer func() {
		audit.Conversion(logging.AuditConvertScript, file, res.Output, start, string(res.Kind()), res.Err)
	}()

	src, err := os.ReadFile(file)
	if err != nil {
		res.Err = fmt.Errorf("failed to read class: %w", err)
		return res
	}

	text, err := w.conv.ClassToScript(ctx, string(src))
	if err != nil {
		res.Err = err
		return res
	}

	outDir := filepath.Join(filepath.Dir(file), w.cfg.ScriptDir)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		res.Err = fmt.Errorf("failed to create script directory: %w", err)
		return res
	}

	res.Output = filepath.Join(outDir, ClassNameFor(file, w.cfg.DefaultClassName)+w.cfg.ScriptExt)
	if err := os.WriteFile(res.Output, []byte(text), 0644); err != nil {
		res.Err = fmt.Errorf("failed to write script: %w", err)
		return res
	}

	logging.Workspace("WriteScript: %s -> %s", file, res.Output)
	return res
}
