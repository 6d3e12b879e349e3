package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("FORGE_HOME", dir)
	return dir
}

func TestDirHonoursEnv(t *testing.T) {
	dir := setHome(t)
	if got := Dir(); got != dir {
		t.Errorf("Dir() = %q, want %q", got, dir)
	}
	if got := FilePath(); got != filepath.Join(dir, "config.yaml") {
		t.Errorf("FilePath() = %q", got)
	}
	if got := LogDir(); got != filepath.Join(dir, "logs") {
		t.Errorf("LogDir() = %q", got)
	}
}

func TestBootstrap(t *testing.T) {
	setHome(t)

	created, err := Bootstrap()
	if err != nil {
		t.Fatalf("Bootstrap() error: %v", err)
	}
	if !created {
		t.Fatal("expected first Bootstrap() to create the file")
	}

	data, err := os.ReadFile(FilePath())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "project_dir:") {
		t.Errorf("default config missing project_dir:\n%s", data)
	}

	created, err = Bootstrap()
	if err != nil {
		t.Fatalf("second Bootstrap() error: %v", err)
	}
	if created {
		t.Error("second Bootstrap() should not overwrite an existing file")
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := setHome(t)
	Load()

	s, err := Read()
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if s.TemplatesDir != filepath.Join(dir, "templates") {
		t.Errorf("TemplatesDir = %q, want default under home", s.TemplatesDir)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", s.LogLevel)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := setHome(t)
	content := "project_dir: /srv/projects\nrouter_exe: /opt/router\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FORGE_VENV_DIR", "/opt/venv")

	Load()
	s, err := Read()
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if s.ProjectDir != "/srv/projects" {
		t.Errorf("ProjectDir = %q", s.ProjectDir)
	}
	if s.RouterExe != "/opt/router" {
		t.Errorf("RouterExe = %q", s.RouterExe)
	}
	if s.VenvDir != "/opt/venv" {
		t.Errorf("VenvDir = %q, want env override", s.VenvDir)
	}
}

func TestSetAndGet(t *testing.T) {
	setHome(t)
	Load()

	if err := Set(KeyRouterExe, "/usr/local/bin/router"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	Load()
	if got := Get(KeyRouterExe); got != "/usr/local/bin/router" {
		t.Errorf("Get() = %q after reload", got)
	}

	if err := Set("not_a_key", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestValidate(t *testing.T) {
	projects := t.TempDir()
	file := filepath.Join(projects, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{"ok", Settings{ProjectDir: projects}, false},
		{"missing project dir", Settings{}, true},
		{"project dir does not exist", Settings{ProjectDir: filepath.Join(projects, "nope")}, true},
		{"project dir is a file", Settings{ProjectDir: file}, true},
		{"interpreter without script", Settings{ProjectDir: projects, SubmoduleInterpreter: "pwsh"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadFillsEmptyValues(t *testing.T) {
	dir := setHome(t)
	if _, err := Bootstrap(); err != nil {
		t.Fatal(err)
	}
	Load()

	s, err := Read()
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	// The default file sets templates_dir to "".
	if s.TemplatesDir != filepath.Join(dir, "templates") {
		t.Errorf("TemplatesDir = %q, want default under home", s.TemplatesDir)
	}
}
