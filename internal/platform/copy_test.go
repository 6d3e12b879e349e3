package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyDir(t *testing.T) {
	src := t.TempDir()
	files := map[string]string{
		"add_submodule.ps1": "param()",
		"nested/helper.sh":  "#!/bin/sh",
		".git/HEAD":         "ref: refs/heads/main",
		"nested/deep/x.txt": "x",
	}
	for name, content := range files {
		p := filepath.Join(src, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	dst := filepath.Join(t.TempDir(), "scripts")
	if err := CopyDir(src, dst); err != nil {
		t.Fatalf("CopyDir failed: %v", err)
	}

	for _, name := range []string{"add_submodule.ps1", "nested/helper.sh", "nested/deep/x.txt"} {
		data, err := os.ReadFile(filepath.Join(dst, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if string(data) != files[name] {
			t.Errorf("%s content = %q", name, data)
		}
	}
	if _, err := os.Stat(filepath.Join(dst, ".git")); !os.IsNotExist(err) {
		t.Error(".git should be excluded")
	}

	if err := CopyDir(src, dst); err == nil {
		t.Error("second CopyDir into an existing destination should fail")
	}
}

func TestCopyFileCreatesParent(t *testing.T) {
	src := filepath.Join(t.TempDir(), "router")
	if err := os.WriteFile(src, []byte("binary"), 0755); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(t.TempDir(), "repo", "router", "router")
	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile failed: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "binary" {
		t.Errorf("copied content = %q, err %v", data, err)
	}
}

func TestTouchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitmodules")
	if err := TouchFile(path); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[submodule \"a\"]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := TouchFile(path); err != nil {
		t.Fatalf("TouchFile on existing file failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "[submodule \"a\"]\n" {
		t.Errorf("TouchFile changed existing content: %q", data)
	}
}
