// Package scaffold holds the files forge writes into a new project that do
// not come from a template: the multi-language launch script, the default
// launcher config, the requirements stub, the todo reminder and the utility
// scripts copied into every repository. Text assets ending in .tmpl are
// rendered with text/template; everything else is written verbatim.
package scaffold
