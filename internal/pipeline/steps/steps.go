// Package steps holds the concrete scaffolding steps and assembles them into
// a pipeline. Base steps always run; router, launch script and venv link are
// added only for multi-language projects.
package steps

import (
	"github.com/forge-labs/forge/internal/logging"
	"github.com/forge-labs/forge/internal/pipeline"
	"github.com/forge-labs/forge/internal/submodule"
)

// Deps are the collaborators the steps need.
type Deps struct {
	Log       *logging.Logger
	Registrar submodule.Registrar
	Chooser   FrameworkChooser
	// ScriptsDir overrides the bundled utility scripts when set.
	ScriptsDir string

	RouterExe string
	VenvDir   string
}

func (d Deps) logger() *logging.Logger {
	if d.Log == nil {
		return logging.Discard()
	}
	return d.Log
}

// Build assembles the pipeline. multi must be resolved before assembly.
func Build(d Deps, multi bool) *pipeline.Pipeline {
	log := d.logger()
	app := log.Sub("APP")

	return pipeline.New(log).
		AddStep(
			&InitializeRepoStructure{log: app},
			&CopyUtilityScripts{log: app, scriptsDir: d.ScriptsDir},
			&GitignoreAdd{log: app},
			&InitializeFrameworks{log: app.Sub("Frameworks"), chooser: d.Chooser},
			&AddSubmodules{log: app.Sub("AddModules"), registrar: d.Registrar},
		).
		AddStepIf(multi,
			&CopyRouterBinary{log: app, routerExe: d.RouterExe},
			&AddLaunchScript{log: app},
			&LinkVenv{log: app, venvDir: d.VenvDir},
		)
}
