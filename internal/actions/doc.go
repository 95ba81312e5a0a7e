// Package actions implements the stacky commands on top of the runtime
// context. Each command is a variant of Command, run by Execute.
package actions
