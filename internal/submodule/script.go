package submodule

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ScriptRegistrar runs an external registration script once per submodule:
//
//	<interpreter> [-File] <script> -targetRepoPath <repo> -submoduleName <name> -submodulePath <path> -submoduleUrl <url>
//
// PowerShell interpreters get the -File switch. With no interpreter the
// script is executed directly.
type ScriptRegistrar struct {
	Interpreter string
	Script      string
}

// Register invokes the script for one submodule.
func (s *ScriptRegistrar) Register(ctx context.Context, req Request) (*Output, error) {
	if _, err := os.Stat(s.Script); err != nil {
		return nil, fmt.Errorf("submodule script %s: %w", s.Script, err)
	}
	name, args := s.command(req)
	return run(ctx, req.RepoPath, name, args...)
}

func (s *ScriptRegistrar) command(req Request) (string, []string) {
	named := []string{
		"-targetRepoPath", req.RepoPath,
		"-submoduleName", req.Name,
		"-submodulePath", req.Path,
		"-submoduleUrl", req.URL,
	}

	if s.Interpreter == "" {
		return s.Script, named
	}

	var args []string
	if isPowerShell(s.Interpreter) {
		args = append(args, "-File")
	}
	args = append(args, s.Script)
	return s.Interpreter, append(args, named...)
}

func isPowerShell(interpreter string) bool {
	base := strings.ToLower(filepath.Base(interpreter))
	base = strings.TrimSuffix(base, ".exe")
	return base == "powershell" || base == "pwsh"
}
