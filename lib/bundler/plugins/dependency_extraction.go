package plugins

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"micromachine.dev/blockbuild/lib/externals"
	"micromachine.dev/blockbuild/lib/manifest"
)

const virtualGlobalsNamespace = "virtual-globals"

// Bare module specifiers only, relative and absolute imports are left to esbuild.
const bareSpecifierFilter = `^[^./]`

var identifierRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

/**
 * Replaces imports of scripts that WordPress already ships (React, lodash,
 * @wordpress/*, ...) with the matching global variable and writes the list
 * of script handles the bundle needs next to the output.
 */
type DependencyExtractionPlugin struct {
	Mapping externals.Mapping
	// GlobalObject is the root the global paths are read from, "window" if empty.
	GlobalObject string
	Format       manifest.Format
}

// extractionState lives for one build. esbuild calls resolve and load
// callbacks from several goroutines.
type extractionState struct {
	mu        sync.Mutex
	extracted map[string]externals.GlobalPath
	handles   []string
}

func newExtractionState() *extractionState {
	return &extractionState{extracted: make(map[string]externals.GlobalPath)}
}

func (s *extractionState) record(request string, path externals.GlobalPath) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extracted[request] = path
}

func (s *extractionState) lookup(request string) (externals.GlobalPath, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path, ok := s.extracted[request]
	return path, ok
}

func (s *extractionState) addHandle(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles = append(s.handles, handle)
}

func (s *extractionState) manifest() manifest.Manifest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return manifest.New(s.handles)
}

func (p *DependencyExtractionPlugin) New() api.Plugin {
	return api.Plugin{
		Name: "dependency-extraction",
		Setup: func(build api.PluginBuild) {
			var mu sync.Mutex
			state := newExtractionState()
			current := func() *extractionState {
				mu.Lock()
				defer mu.Unlock()
				return state
			}

			build.OnStart(func() (api.OnStartResult, error) {
				mu.Lock()
				state = newExtractionState()
				mu.Unlock()
				return api.OnStartResult{}, nil
			})

			build.OnResolve(api.OnResolveOptions{Filter: bareSpecifierFilter},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					return p.resolve(current(), args)
				})

			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: virtualGlobalsNamespace},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					return p.load(current(), args)
				})

			build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
				return p.end(current(), build.InitialOptions, result)
			})
		},
	}
}

func (p *DependencyExtractionPlugin) mapping() externals.Mapping {
	if p.Mapping == nil {
		return externals.WordPress()
	}
	return p.Mapping
}

func (p *DependencyExtractionPlugin) resolve(state *extractionState, args api.OnResolveArgs) (api.OnResolveResult, error) {
	if strings.HasPrefix(args.Path, ".") || strings.HasPrefix(args.Path, "/") {
		return api.OnResolveResult{}, nil
	}

	global, ok := p.mapping().Global(args.Path)
	if !ok {
		return api.OnResolveResult{}, nil
	}

	state.record(args.Path, global)

	return api.OnResolveResult{
		Path:      args.Path,
		Namespace: virtualGlobalsNamespace,
	}, nil
}

func (p *DependencyExtractionPlugin) load(state *extractionState, args api.OnLoadArgs) (api.OnLoadResult, error) {
	global, ok := state.lookup(args.Path)
	if !ok || len(global) == 0 {
		return api.OnLoadResult{}, fmt.Errorf("no global recorded for %q, it was not resolved by this plugin", args.Path)
	}

	// Requests without a known handle are registered under their own name,
	// e.g. "react" or "lodash".
	handle, ok := p.mapping().Handle(args.Path)
	if !ok || handle == "" {
		handle = args.Path
	}
	state.addHandle(handle)

	slog.Debug(fmt.Sprintf("Extracted %q", args.Path), slog.String("global", strings.Join(global, ".")), slog.String("handle", handle))

	contents := fmt.Sprintf("module.exports = %s;", p.globalExpression(global))
	return api.OnLoadResult{
		Contents: &contents,
		Loader:   api.LoaderJS,
	}, nil
}

func (p *DependencyExtractionPlugin) end(state *extractionState, options *api.BuildOptions, result *api.BuildResult) (api.OnEndResult, error) {
	// A failed build must not leave a manifest that looks current.
	if len(result.Errors) > 0 {
		return api.OnEndResult{}, nil
	}

	dir, err := manifestDir(options)
	if err != nil {
		return api.OnEndResult{}, err
	}

	m := state.manifest()
	path, err := m.Write(dir, manifest.FileName(p.Format), p.Format)
	if err != nil {
		return api.OnEndResult{}, err
	}

	slog.Info(fmt.Sprintf("Wrote %s", path), slog.Any("dependencies", m.Dependencies))
	return api.OnEndResult{}, nil
}

func (p *DependencyExtractionPlugin) globalExpression(global externals.GlobalPath) string {
	root := p.GlobalObject
	if root == "" {
		root = "window"
	}

	var sb strings.Builder
	sb.WriteString(root)
	for _, segment := range global {
		if identifierRe.MatchString(segment) {
			sb.WriteString(".")
			sb.WriteString(segment)
			continue
		}
		quoted, _ := json.Marshal(segment)
		sb.WriteString("[")
		sb.Write(quoted)
		sb.WriteString("]")
	}
	return sb.String()
}

func manifestDir(options *api.BuildOptions) (string, error) {
	dir := options.Outdir
	if dir == "" && options.Outfile != "" {
		dir = filepath.Dir(options.Outfile)
	}
	if dir == "" {
		return "", fmt.Errorf("an outdir or outfile is required to write the asset manifest")
	}

	if !filepath.IsAbs(dir) && options.AbsWorkingDir != "" {
		dir = filepath.Join(options.AbsWorkingDir, dir)
	}
	return dir, nil
}
