package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"doodle/config"
	"doodle/editor"
	"doodle/export"
	"doodle/store"
	"doodle/terminal"
)

func main() {
	var (
		interactive = flag.Bool("i", false, "Interactive terminal editor (default when no -format)")
		configPath  = flag.String("config", "", "Path to yaml config (default: built-in defaults)")
		storePath   = flag.String("store", "", "Override the persistence path")
		backend     = flag.String("backend", "", "Persistence backend: file or sqlite")
		name        = flag.String("name", "", "Override the project name")
		format      = flag.String("format", "", "Export the stored diagram: json, svg, png, mermaid")
		outputFile  = flag.String("o", "", "Output file for export (default: stdout)")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A diagram editor: place nodes, connect them, undo freely, export.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                         # Edit the stored diagram interactively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -backend sqlite          # Persist into a sqlite database\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format svg -o out.svg   # Export the stored diagram\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format png -o out.png\n", os.Args[0])
	}
	flag.Parse()

	if err := run(*interactive, *configPath, *storePath, *backend, *name, *format, *outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(interactive bool, configPath, storePath, backend, name, format, outputFile string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if storePath != "" {
		cfg.StorePath = storePath
	}
	if backend != "" {
		cfg.Backend = config.Backend(backend)
	}
	if name != "" {
		cfg.ProjectName = name
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(interactive || format == "", cfg.StorePath)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	d := store.LoadDiagram(s, cfg.ProjectName, logger)
	ed := editor.New(d, cfg.HistoryCapacity, logger)
	ed.SetSaver(store.DiagramSaver{Store: s})
	if name != "" && d.ProjectName != name {
		ed.SetProjectName(name)
	}

	if format == "" || interactive {
		return terminal.Run(ed)
	}
	return runExport(ed, format, outputFile)
}

// newLogger routes logs to a file while the terminal UI owns the screen,
// and to stderr otherwise.
func newLogger(interactive bool, storePath string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if interactive {
		dir := storePath
		if filepath.Ext(dir) != "" {
			dir = filepath.Dir(dir)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return zap.NewNop(), nil
		}
		cfg.OutputPaths = []string{filepath.Join(dir, "doodle.log")}
		cfg.ErrorOutputPaths = cfg.OutputPaths
	}
	return cfg.Build()
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		path := cfg.StorePath
		if filepath.Ext(path) == "" {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return nil, fmt.Errorf("create store dir: %w", err)
			}
			path = filepath.Join(path, "doodle.db")
		}
		return store.NewSQLiteStore(path)
	default:
		return store.NewFileStore(cfg.StorePath)
	}
}

func runExport(ed *editor.Editor, format, outputFile string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	exp, err := export.NewExporter(f)
	if err != nil {
		return err
	}
	out, err := ed.Export(exp)
	if err != nil {
		return fmt.Errorf("export to %s: %w", exp.FormatName(), err)
	}
	if outputFile == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(outputFile, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outputFile, err)
	}
	fmt.Printf("Exported %s to %s\n", exp.FormatName(), outputFile)
	return nil
}
