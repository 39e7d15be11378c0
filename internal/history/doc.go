// Package history records captioner runs in a local SQLite database so past
// renders can be listed with `captioner history`.
//
// The database lives at <state_dir>/history.db and is opened per command. It
// is wrapper state only; caption building never reads it.
package history
