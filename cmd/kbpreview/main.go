package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jkoivu/kbpreview/internal/config"
	"github.com/jkoivu/kbpreview/internal/kbdfmt"
	"github.com/jkoivu/kbpreview/internal/layout"
	"github.com/jkoivu/kbpreview/internal/source"
	"github.com/jkoivu/kbpreview/internal/store"
	"github.com/jkoivu/kbpreview/internal/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("error: %v", err)
	}
}

func run() error {
	platformFlag := flag.String("platform", "", "platform to preview (macos, windows, chrome, ios, android)")
	variantFlag := flag.String("variant", "", "device variant (e.g. iphone, ipad, phone, tablet)")
	noStore := flag.Bool("no-store", false, "disable the recents store")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if flag.NArg() != 1 {
		return fmt.Errorf("usage: kbpreview [flags] <definition file or URL>")
	}
	ref := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := newLogger(cfg.Log.Path, *debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	var st *store.Store
	if !*noStore {
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
		st, err = store.Open(cfg.Store.Path, logger)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	loader := source.NewLoader(logger)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	data, err := loader.Load(ctx, ref)
	cancel()
	if err != nil {
		return err
	}

	def, err := kbdfmt.Parse(data)
	if err != nil {
		return err
	}

	platform := layout.Platform(cfg.Source.Platform)
	variant := cfg.Source.Variant
	explicit := *platformFlag != ""
	if explicit {
		platform = layout.Platform(*platformFlag)
	}
	if *variantFlag != "" {
		variant = *variantFlag
	}

	l, err := transformWithFallback(def, platform, variant, explicit, logger)
	if err != nil {
		return err
	}

	var watcher *source.Watcher
	if !source.IsRemote(ref) {
		watcher, err = source.Watch(ref, logger)
		if err != nil {
			logger.Warnw("live reload disabled", "error", err)
		} else {
			defer watcher.Close()
		}
	}

	if st != nil {
		err := st.Touch(context.Background(), store.Entry{
			Ref:          ref,
			DefinitionID: l.ID,
			Name:         l.Name,
			Platform:     string(l.Platform),
			Variant:      l.Variant,
		})
		if err != nil {
			logger.Warnw("record recent", "error", err)
		}
	}

	logger.Infow("starting", "ref", ref, "platform", l.Platform, "variant", l.Variant)
	app := tui.New(cfg, logger, loader, st, watcher, ref, def, l)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// transformWithFallback tries the requested platform first; unless the
// user named one explicitly, it then walks the remaining platforms in
// preference order.
func transformWithFallback(def *kbdfmt.Definition, platform layout.Platform, variant string, explicit bool, logger *zap.SugaredLogger) (*layout.Layout, error) {
	l, err := layout.Transform(def, platform, variant)
	if err == nil || explicit || errors.Is(err, layout.ErrNoPlatforms) {
		return l, err
	}

	logger.Infow("falling back to another platform", "requested", platform, "error", err)
	for _, p := range layout.Platforms {
		if p == platform {
			continue
		}
		if l, ferr := layout.Transform(def, p, ""); ferr == nil {
			return l, nil
		}
	}
	return nil, err
}

func newLogger(path string, debug bool) (*zap.SugaredLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
