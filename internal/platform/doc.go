// Package platform provides the cross-platform filesystem operations the
// scaffolding steps share: directory linking, permission bits, and file/tree
// copies. On Unix links are native symlinks and chmod applies directly. On
// Windows a failed symlink (no developer mode) leaves a .target sidecar behind
// so the user can create the link by hand, and chmod is a no-op.
package platform
