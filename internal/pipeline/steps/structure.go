package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forge-labs/forge/internal/logging"
	"github.com/forge-labs/forge/internal/pipeline"
	"github.com/forge-labs/forge/internal/scaffold"
)

// repoFolders are created under the repository root.
var repoFolders = []string{"components", "tests", "benchmarks", "docs"}

// InitializeRepoStructure creates the project skeleton. Every later step
// assumes RepoPath exists.
type InitializeRepoStructure struct {
	log *logging.Logger
}

func (s *InitializeRepoStructure) Name() string { return "InitializeRepoStructure" }

func (s *InitializeRepoStructure) Flow(_ context.Context, c *pipeline.Context) (*pipeline.Context, error) {
	s.log.Debug("Initializing project structure", "path", c.ProjectPath)

	dirs := []string{filepath.Join(c.ProjectPath, "build"), c.RepoPath}
	for _, f := range repoFolders {
		dirs = append(dirs, filepath.Join(c.RepoPath, f))
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", d, err)
		}
	}

	if c.MultiLanguage {
		files := []struct {
			asset, dst string
		}{
			{scaffold.Requirements, filepath.Join(c.RepoPath, scaffold.Requirements)},
			{scaffold.LaunchConfig, filepath.Join(c.ProjectPath, scaffold.LaunchConfig)},
			{scaffold.TodoNote, filepath.Join(c.ProjectPath, scaffold.TodoNote)},
		}
		for _, f := range files {
			if err := scaffold.WriteAsset(f.asset, f.dst, nil); err != nil {
				return nil, err
			}
		}
	}

	s.log.Debug("Project structure initialized successfully.")
	return c, nil
}
