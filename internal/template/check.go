package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileStatus is the outcome of checking one metadata file.
type FileStatus struct {
	File    string
	Present bool
	Err     error
}

// Check loads every metadata file the template may carry and reports which
// are present and whether they parse. Framework copy_to_root targets are
// checked for existence as well.
func (t Template) Check() []FileStatus {
	var out []FileStatus

	record := func(file string, err error) {
		switch {
		case err == nil:
			out = append(out, FileStatus{File: file, Present: true})
		case errors.Is(err, fs.ErrNotExist):
			out = append(out, FileStatus{File: file})
		default:
			out = append(out, FileStatus{File: file, Present: true, Err: err})
		}
	}

	_, err := t.Gitignore()
	record(GitignoreFile, err)
	_, err = t.GitignoreMulti()
	record(GitignoreMultiFile, err)
	_, err = t.Submodules()
	record(SubmodulesFile, err)
	_, err = t.MultiSubmodules()
	record(SubmodulesMultiFile, err)

	frameworks, err := t.Frameworks()
	if err == nil {
		for _, f := range frameworks {
			src, srcErr := f.Source(t)
			if srcErr != nil {
				err = srcErr
				break
			}
			if _, statErr := os.Stat(src); statErr != nil {
				err = fmt.Errorf("framework %q: copy_to_root %s: %v", f.Name, f.CopyToRoot, statErr)
				break
			}
		}
	}
	record(FrameworksFile, err)

	_, err = t.Manifest()
	record(ManifestFile, err)

	return out
}
