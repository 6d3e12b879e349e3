package steps

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/forge-labs/forge/internal/logging"
	"github.com/forge-labs/forge/internal/pipeline"
	"github.com/forge-labs/forge/internal/platform"
	"github.com/forge-labs/forge/internal/submodule"
	"github.com/forge-labs/forge/internal/template"
)

// AddSubmodules registers every declared submodule with the repository.
// A failing registration is logged and the loop moves on; only a missing
// .gitmodules marker, malformed metadata or cancellation fail the step.
type AddSubmodules struct {
	log       *logging.Logger
	registrar submodule.Registrar
}

func (s *AddSubmodules) Name() string { return "AddSubmodules" }

func (s *AddSubmodules) Flow(ctx context.Context, c *pipeline.Context) (*pipeline.Context, error) {
	s.log.Trace("Flowing pipe for submodule add.")
	if s.registrar == nil {
		return nil, fmt.Errorf("no submodule registrar configured")
	}

	if err := platform.TouchFile(filepath.Join(c.RepoPath, ".gitmodules")); err != nil {
		return nil, fmt.Errorf("initializing .gitmodules: %w", err)
	}

	subs, err := s.collect(c)
	if err != nil {
		return nil, err
	}

	s.log.Info("Initializing submodules", "project", c.ProjectRootName, "count", len(subs))
	seenNames := make(map[string]bool, len(subs))
	seenPaths := make(map[string]bool, len(subs))
	for _, sub := range subs {
		req := submodule.Request{
			RepoPath: c.RepoPath,
			Name:     sub.Name,
			Path:     submodulePath(c.SubmoduleRootName, sub.RelativePath),
			URL:      sub.URL,
		}

		if seenNames[req.Name] || seenPaths[req.Path] {
			s.log.Debug("Submodule declared more than once", "name", req.Name, "path", req.Path)
		}
		seenNames[req.Name] = true
		seenPaths[req.Path] = true

		out, err := s.registrar.Register(ctx, req)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("registering %s: %w", sub.Name, ctxErr)
		}
		if err != nil {
			s.log.Error("Failed to add submodule", "name", sub.Name, "error", err)
			continue
		}
		if out == nil {
			out = &submodule.Output{}
		}
		if stdout := strings.TrimSpace(out.Stdout); stdout != "" {
			s.log.Info(stdout)
		}
		if out.Failed() {
			s.log.Error("Failed to add submodule", "name", sub.Name, "exit_code", out.ExitCode, "stderr", strings.TrimSpace(out.Stderr))
		}
	}

	s.log.Info("Submodules added", "project", c.ProjectRootName)
	return c, nil
}

// collect merges base then multi declarations per template, in template
// order, followed by the context's extra submodules. Duplicates are kept.
func (s *AddSubmodules) collect(c *pipeline.Context) ([]template.Submodule, error) {
	var all []template.Submodule
	for _, t := range c.IncludedTemplates {
		base, err := s.load(t, template.SubmodulesFile, t.Submodules)
		if err != nil {
			return nil, err
		}
		all = append(all, base...)

		if c.MultiLanguage {
			multi, err := s.load(t, template.SubmodulesMultiFile, t.MultiSubmodules)
			if err != nil {
				return nil, err
			}
			all = append(all, multi...)
		}
	}
	return append(all, c.ExtraSubmodules...), nil
}

func (s *AddSubmodules) load(t template.Template, file string, fn func() ([]template.Submodule, error)) ([]template.Submodule, error) {
	subs, err := fn()
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info("Submodules file not found - Skipping", "path", t.Path(file))
		return nil, nil
	}
	return subs, err
}

func submodulePath(root, rel string) string {
	if root == "" {
		return rel
	}
	return path.Join(root, rel)
}
