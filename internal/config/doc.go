// Package config manages stacky configuration and state persistence.
//
// It handles:
//   - User and repository settings (.stacky.yml)
//   - The journal of the operation in progress, used by `stacky continue`
package config
