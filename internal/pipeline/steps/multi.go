package steps

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/forge-labs/forge/internal/logging"
	"github.com/forge-labs/forge/internal/pipeline"
	"github.com/forge-labs/forge/internal/platform"
	"github.com/forge-labs/forge/internal/scaffold"
)

// CopyRouterBinary installs the configured router executable into
// <repo>/router.
type CopyRouterBinary struct {
	log       *logging.Logger
	routerExe string
}

func (s *CopyRouterBinary) Name() string { return "CopyRouterBinary" }

func (s *CopyRouterBinary) Flow(_ context.Context, c *pipeline.Context) (*pipeline.Context, error) {
	if s.routerExe == "" {
		return nil, fmt.Errorf("router_exe is not configured")
	}
	s.log.Trace("Copying router binary", "from", s.routerExe)

	dst := filepath.Join(c.RepoPath, "router", filepath.Base(s.routerExe))
	if err := platform.CopyFile(s.routerExe, dst); err != nil {
		return nil, fmt.Errorf("copying router binary: %w", err)
	}
	if err := platform.MakeExecutable(dst); err != nil {
		return nil, err
	}

	s.log.Debug("Router binary copied successfully.", "to", dst)
	return c, nil
}

// AddLaunchScript writes <project>/launch.ps1.
type AddLaunchScript struct {
	log *logging.Logger
}

func (s *AddLaunchScript) Name() string { return "AddLaunchScript" }

func (s *AddLaunchScript) Flow(_ context.Context, c *pipeline.Context) (*pipeline.Context, error) {
	s.log.Trace("Adding launch script")
	dst := filepath.Join(c.ProjectPath, "launch.ps1")
	if err := scaffold.WriteAsset(scaffold.LaunchScript, dst, scaffold.NewLaunchData(c.ProjectRootName)); err != nil {
		return nil, err
	}
	s.log.Trace("Launch script added successfully")
	return c, nil
}

// LinkVenv links <project>/venv to the shared virtual environment. It never
// fails the run; todo.txt stays behind as the manual fallback.
type LinkVenv struct {
	log     *logging.Logger
	venvDir string
}

func (s *LinkVenv) Name() string { return "LinkVenv" }

func (s *LinkVenv) Flow(_ context.Context, c *pipeline.Context) (*pipeline.Context, error) {
	if s.venvDir == "" {
		s.log.Warn("venv_dir is not configured, link the venv manually (see todo.txt)")
		return c, nil
	}
	link := filepath.Join(c.ProjectPath, "venv")
	if err := platform.CreateSymlink(s.venvDir, link); err != nil {
		s.log.Warn("Could not link venv, link it manually (see todo.txt)", "target", s.venvDir, "error", err)
		return c, nil
	}
	s.log.Debug("Linked venv", "link", link, "target", s.venvDir)
	return c, nil
}
