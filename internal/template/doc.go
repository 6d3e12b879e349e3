// Package template reads the metadata a template directory may carry:
// gitignore fragments, submodule declarations, framework options and an
// optional template.yaml manifest. Every file is optional; a missing file
// surfaces as an error matching fs.ErrNotExist so callers can log and skip
// it. JSON files are validated against embedded JSON Schemas before they are
// decoded, so malformed metadata fails with a ShapeError listing every issue.
package template
