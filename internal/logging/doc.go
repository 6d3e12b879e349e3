// Package logging provides the leveled, separator-tagged logger used across
// forge. Records go through log/slog's text handler; every record carries a
// "sep" attribute naming the component that emitted it (ProjectForge.APP,
// ProjectForge.APP.AddModules, ...). Levels run TRACE, DEBUG, INFO, WARN,
// ERROR.
package logging
