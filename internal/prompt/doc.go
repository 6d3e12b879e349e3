// Package prompt abstracts the interactive questions forge asks (which
// project folder, which languages, which frameworks, which git URL) behind a
// Driver so commands and steps can be exercised without a terminal. The
// default driver is backed by survey; Scripted replays canned answers.
package prompt
