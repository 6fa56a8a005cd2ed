package bundler

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"micromachine.dev/blockbuild/lib/bundler/plugins"
	"micromachine.dev/blockbuild/lib/manifest"
	"micromachine.dev/blockbuild/lib/utils"
)

type Bundle struct {
	RootDir string
	Config  *utils.Config
	Minify  bool
}

func (b *Bundle) Options() (api.BuildOptions, error) {
	absDir, err := filepath.Abs(b.RootDir)
	if err != nil {
		return api.BuildOptions{}, fmt.Errorf("could not resolve absolute path: %w", err)
	}

	config := b.Config
	if config == nil {
		config = utils.DefaultConfig()
	}

	mapping, err := config.Mapping()
	if err != nil {
		return api.BuildOptions{}, fmt.Errorf("invalid externals: %w", err)
	}

	format, err := manifest.ParseFormat(config.ManifestFormat)
	if err != nil {
		return api.BuildOptions{}, err
	}

	dependencyExtraction := plugins.DependencyExtractionPlugin{
		Mapping:      mapping,
		GlobalObject: config.GlobalObject,
		Format:       format,
	}

	return api.BuildOptions{
		Plugins:           []api.Plugin{dependencyExtraction.New()},
		EntryPoints:       config.EntryPoints,
		Outdir:            config.Outdir,
		AbsWorkingDir:     absDir,
		Bundle:            true,
		Write:             true,
		AllowOverwrite:    true,
		Format:            api.FormatIIFE,
		Platform:          api.PlatformBrowser,
		Loader:            map[string]api.Loader{".js": api.LoaderJSX},
		LogLevel:          api.LogLevelInfo,
		JSXFactory:        config.JSXFactory,
		JSXFragment:       config.JSXFragment,
		MinifyWhitespace:  b.Minify,
		MinifyIdentifiers: b.Minify,
		MinifySyntax:      b.Minify,
	}, nil
}

// Build runs a single build. A failed manifest write is reported by esbuild
// like any other build error.
func (b *Bundle) Build() error {
	options, err := b.Options()
	if err != nil {
		slog.Error(fmt.Sprintf("✗ %v", err))
		return err
	}

	start := time.Now()
	utils.LogWithColor(utils.Cyan, "Bundling block...")

	result := api.Build(options)

	if len(result.Errors) > 0 {
		for _, err := range result.Errors {
			slog.Error(fmt.Sprintf("✗ %v", err.Text))
		}

		return fmt.Errorf("bundle failed with %d error(s)", len(result.Errors))
	}

	elapsed := time.Since(start)
	utils.LogWithColor(utils.Success, fmt.Sprintf("✓ Bundling completed in %s", elapsed))

	return nil
}

// Watch builds once and then rebuilds on every change until ctx is done.
func (b *Bundle) Watch(ctx context.Context) error {
	options, err := b.Options()
	if err != nil {
		slog.Error(fmt.Sprintf("✗ %v", err))
		return err
	}

	buildCtx, ctxErr := api.Context(options)
	if ctxErr != nil {
		for _, err := range ctxErr.Errors {
			slog.Error(fmt.Sprintf("✗ %v", err.Text))
		}
		return fmt.Errorf("could not create build context with %d error(s)", len(ctxErr.Errors))
	}
	defer buildCtx.Dispose()

	if err := buildCtx.Watch(api.WatchOptions{}); err != nil {
		return fmt.Errorf("could not start watch mode: %w", err)
	}

	utils.LogWithColor(utils.Cyan, "Watching for changes...")
	<-ctx.Done()

	return nil
}
