package steps

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/forge-labs/forge/internal/logging"
	"github.com/forge-labs/forge/internal/pipeline"
	"github.com/forge-labs/forge/internal/template"
)

// GitignoreAdd writes <repo>/.gitignore as the concatenation of every
// template's fragment, each followed by a blank line. Missing fragments are
// skipped with a warning.
type GitignoreAdd struct {
	log *logging.Logger
}

func (s *GitignoreAdd) Name() string { return "GitignoreAdd" }

func (s *GitignoreAdd) Flow(_ context.Context, c *pipeline.Context) (*pipeline.Context, error) {
	path := filepath.Join(c.RepoPath, ".gitignore")
	s.log.Debug("Creating combined gitignore", "path", path)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	for _, t := range c.IncludedTemplates {
		loaders := []func() (string, error){t.Gitignore}
		names := []string{template.GitignoreFile}
		if c.MultiLanguage {
			loaders = append(loaders, t.GitignoreMulti)
			names = append(names, template.GitignoreMultiFile)
		}

		for i, load := range loaders {
			content, err := load()
			if errors.Is(err, fs.ErrNotExist) {
				s.log.Warn("Gitignore file not found - Skipping", "path", t.Path(names[i]))
				continue
			}
			if err != nil {
				return nil, err
			}
			if _, err := w.WriteString(content + "\n\n"); err != nil {
				return nil, fmt.Errorf("writing %s: %w", path, err)
			}
		}
	}

	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing %s: %w", path, err)
	}
	s.log.Debug("Combined gitignore created successfully.")
	return c, nil
}
