package actions

import (
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/runtime"
	"stacky.dev/stacky/internal/tui/style"
)

// Direction is the way SwitchBranchAction moves in the stack
type Direction int

const (
	// DirectionUp moves to a child
	DirectionUp Direction = iota
	// DirectionDown moves to the parent
	DirectionDown
)

// SwitchBranchAction checks out the parent or a child of the current branch.
// With several children the picker chooses.
func SwitchBranchAction(ctx *runtime.Context, dir Direction) error {
	current, err := ctx.CurrentNode()
	if err != nil {
		return err
	}

	var target string
	switch dir {
	case DirectionDown:
		if current.IsRoot() {
			return stackyerrors.NewUserError("Branch %s is at the bottom of the stack", current.Name)
		}
		target = current.Parent
	case DirectionUp:
		children := current.Children()
		switch len(children) {
		case 0:
			return stackyerrors.NewUserError("Branch %s is at the top of the stack", current.Name)
		case 1:
			target = children[0]
		default:
			if target, err = pickBranch("Move up to", children, ""); err != nil {
				return err
			}
		}
	}

	if err := ctx.Session.Checkout(ctx.Context, target); err != nil {
		return err
	}
	ctx.Splog.Info("Checked out %s", style.ColorBranchName(target, true, false))
	return nil
}
