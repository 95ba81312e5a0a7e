// Package runtime provides the execution context for stacky commands.
//
// It encapsulates the dependencies every action needs: the repository
// gateway, the stack graph built from it, the session tracking the checked
// out branch, the operation journal, settings and the logger.
package runtime
