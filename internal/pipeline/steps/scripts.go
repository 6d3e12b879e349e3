package steps

import (
	"context"
	"path/filepath"

	"github.com/forge-labs/forge/internal/logging"
	"github.com/forge-labs/forge/internal/pipeline"
	"github.com/forge-labs/forge/internal/platform"
	"github.com/forge-labs/forge/internal/scaffold"
)

// CopyUtilityScripts copies the utility scripts into <repo>/scripts. An
// existing scripts folder is an error.
type CopyUtilityScripts struct {
	log *logging.Logger
	// scriptsDir replaces the bundled scripts when set.
	scriptsDir string
}

func (s *CopyUtilityScripts) Name() string { return "CopyUtilityScripts" }

func (s *CopyUtilityScripts) Flow(_ context.Context, c *pipeline.Context) (*pipeline.Context, error) {
	dst := filepath.Join(c.RepoPath, "scripts")

	if s.scriptsDir != "" {
		s.log.Trace("Copying utility scripts", "from", s.scriptsDir, "to", dst)
		if err := platform.CopyDir(s.scriptsDir, dst); err != nil {
			return nil, err
		}
		s.log.Debug("Utility scripts copied successfully.", "from", s.scriptsDir)
		return c, nil
	}

	s.log.Trace("Copying utility scripts", "to", dst)
	written, err := scaffold.ExportScripts(scaffold.Scripts(), dst)
	if err != nil {
		return nil, err
	}
	s.log.Debug("Utility scripts copied successfully.", "files", len(written))
	return c, nil
}
