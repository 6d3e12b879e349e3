package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed assets
var assetsFS embed.FS

const (
	assetsRoot  = "assets"
	scriptsRoot = "assets/scripts"
)

// Asset names.
const (
	LaunchScript  = "launch.ps1.tmpl"
	LaunchConfig  = "launch_config.json"
	Requirements  = "requirements.txt"
	TodoNote      = "todo.txt"
	SubmoduleSh   = "add_submodule.sh"
	SubmodulePwsh = "add_submodule.ps1"
)

// LaunchData fills launch.ps1.tmpl.
type LaunchData struct {
	ProjectRootName string
	// LauncherScript is relative to the project folder, slash separated.
	LauncherScript string
	LaunchConfig   string
}

// NewLaunchData derives the launcher paths for a repo folder named root.
func NewLaunchData(root string) LaunchData {
	return LaunchData{
		ProjectRootName: root,
		LauncherScript:  path.Join(root, "components", "MD.Launcher", "md_launcher", "components", "launcher", "launch.py"),
		LaunchConfig:    LaunchConfig,
	}
}

// Asset returns the raw bytes of a top-level asset.
func Asset(name string) ([]byte, error) {
	data, err := fs.ReadFile(assetsFS, path.Join(assetsRoot, name))
	if err != nil {
		return nil, fmt.Errorf("asset %q not found: %w", name, err)
	}
	return data, nil
}

// Render executes a .tmpl asset with data. Non-template assets are returned
// unchanged.
func Render(name string, data any) ([]byte, error) {
	raw, err := Asset(name)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(name, ".tmpl") {
		return raw, nil
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// WriteAsset renders name into dst, overwriting any existing file.
func WriteAsset(name, dst string, data any) error {
	out, err := Render(name, data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dst, err)
	}
	if err := os.WriteFile(dst, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}

// Scripts returns the bundled utility scripts rooted at their directory.
func Scripts() fs.FS {
	sub, err := fs.Sub(assetsFS, scriptsRoot)
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}
	return sub
}

// ExportScripts writes every file of scripts into dst. dst must not exist.
// Shell scripts are made executable.
func ExportScripts(scripts fs.FS, dst string) ([]string, error) {
	if _, err := os.Lstat(dst); err == nil {
		return nil, fmt.Errorf("destination %s already exists", dst)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking %s: %w", dst, err)
	}

	var written []string
	err := fs.WalkDir(scripts, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		data, err := fs.ReadFile(scripts, p)
		if err != nil {
			return err
		}
		mode := os.FileMode(0644)
		if strings.HasSuffix(p, ".sh") {
			mode = 0755
		}
		if err := os.WriteFile(target, data, mode); err != nil {
			return err
		}
		written = append(written, p)
		return nil
	})
	if err != nil {
		return written, fmt.Errorf("exporting scripts to %s: %w", dst, err)
	}
	return written, nil
}
