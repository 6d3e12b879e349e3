// Package submodule registers a git submodule in a target repository through
// one external invocation per submodule. GitRegistrar runs `git submodule add`
// directly; ScriptRegistrar runs a user-supplied script (the PowerShell
// add_submodule.ps1 convention) with named arguments. A non-zero exit is
// reported through Output, not as an error, so callers can treat it as a
// single-item failure.
package submodule
