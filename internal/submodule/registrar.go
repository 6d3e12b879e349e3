package submodule

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Request describes one submodule to register.
type Request struct {
	RepoPath string // target repository root
	Name     string
	Path     string // path relative to RepoPath
	URL      string
}

// Output captures the result of one registration invocation.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Failed reports whether the invocation exited non-zero.
func (o *Output) Failed() bool { return o != nil && o.ExitCode != 0 }

// Registrar registers a single submodule. The error return is reserved for
// invocations that could not run at all (missing binary, cancelled context).
type Registrar interface {
	Register(ctx context.Context, req Request) (*Output, error)
}

// run executes name with args in dir and captures both output streams.
func run(ctx context.Context, dir, name string, args ...string) (*Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, fmt.Errorf("running %s: %w", name, err)
	}
	return output, nil
}
