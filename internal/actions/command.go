package actions

import (
	"fmt"

	"stacky.dev/stacky/internal/actions/fold"
	"stacky.dev/stacky/internal/actions/sync"
	"stacky.dev/stacky/internal/engine"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/runtime"
)

// Command is one parsed invocation. The set of variants is closed.
type Command interface {
	command()
}

// Info renders the stack around the current branch
type Info struct {
	Scope engine.Scope
	PR    bool
}

// Log runs git log over the current stack
type Log struct {
	Args []string
}

// Sync rebases or merges branches onto their parents
type Sync struct {
	Scope engine.Scope
}

// Push pushes branches and creates or fixes their PRs
type Push struct {
	Scope engine.Scope
	Force bool
	NoPR  bool
}

// Fold folds the current branch into its parent
type Fold struct {
	AllowEmpty bool
}

// Continue resumes the operation recorded in the journal
type Continue struct{}

// BranchNew creates a branch on top of the current one
type BranchNew struct {
	Name string
}

// BranchCheckout checks out a branch, with a picker when Name is empty
type BranchCheckout struct {
	Name string
}

// Commit runs git commit and syncs the upstack
type Commit struct {
	Args  []string
	Amend bool
}

// Up moves to a child of the current branch
type Up struct{}

// Down moves to the parent of the current branch
type Down struct{}

// Adopt puts a branch on top of the current bottom
type Adopt struct {
	Branch string
}

// UpstackOnto moves the current branch and its descendants onto Target
type UpstackOnto struct {
	Target string
}

// UpstackAsBottom makes the current branch a custom bottom
type UpstackAsBottom struct{}

// Update fetches, moves bottoms to their remote tips and deletes merged branches
type Update struct {
	Force bool
}

// Bottom adds or removes a custom bottom
type Bottom struct {
	Name   string
	Remove bool
}

// BranchCommit creates a branch on top of the current one and commits on it
type BranchCommit struct {
	Name     string
	Message  string
	All      bool
	NoVerify bool
}

// StackCheckout picks a branch of the current stack and checks it out
type StackCheckout struct{}

// Land squash-merges the PR of the bottom-most branch of the current stack
type Land struct {
	Force bool
}

// Import stacks the branches of an existing chain of PRs ending at Name
type Import struct {
	Name  string
	Force bool
}

// Inbox lists the open PRs that involve the user
type Inbox struct {
	Compact bool
}

// PRs edits the descriptions of the open PRs that involve the user
type PRs struct{}

func (Info) command()            {}
func (Log) command()             {}
func (Sync) command()            {}
func (Push) command()            {}
func (Fold) command()            {}
func (Continue) command()        {}
func (BranchNew) command()       {}
func (BranchCheckout) command()  {}
func (Commit) command()          {}
func (Up) command()              {}
func (Down) command()            {}
func (Adopt) command()           {}
func (UpstackOnto) command()     {}
func (UpstackAsBottom) command() {}
func (Update) command()          {}
func (Bottom) command()          {}
func (BranchCommit) command()    {}
func (StackCheckout) command()   {}
func (Land) command()            {}
func (Import) command()          {}
func (Inbox) command()           {}
func (PRs) command()             {}

// Execute runs cmd. When a command that can leave a journal behind succeeds,
// the journal is cleared.
func Execute(ctx *runtime.Context, cmd Command) error {
	clearJournal := true
	var err error

	switch c := cmd.(type) {
	case Info:
		clearJournal = false
		err = InfoAction(ctx, InfoOptions{Scope: c.Scope, PR: c.PR})
	case Log:
		clearJournal = false
		err = LogAction(ctx, LogOptions{Args: c.Args})
	case Sync:
		err = sync.Action(ctx, sync.Options{Scope: c.Scope})
	case Push:
		clearJournal = false
		err = PushAction(ctx, PushOptions{Scope: c.Scope, Force: c.Force, NoPR: c.NoPR})
	case Fold:
		err = fold.Action(ctx, fold.Options{AllowEmpty: c.AllowEmpty})
	case Continue:
		err = ContinueAction(ctx)
	case BranchNew:
		clearJournal = false
		err = BranchNewAction(ctx, c.Name)
	case BranchCheckout:
		clearJournal = false
		err = BranchCheckoutAction(ctx, c.Name)
	case Commit:
		err = CommitAction(ctx, CommitOptions{Args: c.Args, Amend: c.Amend})
	case Up:
		clearJournal = false
		err = SwitchBranchAction(ctx, DirectionUp)
	case Down:
		clearJournal = false
		err = SwitchBranchAction(ctx, DirectionDown)
	case Adopt:
		err = AdoptAction(ctx, c.Branch)
	case UpstackOnto:
		err = UpstackOntoAction(ctx, c.Target)
	case UpstackAsBottom:
		clearJournal = false
		err = UpstackAsBottomAction(ctx)
	case Update:
		err = UpdateAction(ctx, UpdateOptions{Force: c.Force})
	case Bottom:
		clearJournal = false
		err = BottomAction(ctx, BottomOptions{Name: c.Name, Remove: c.Remove})
	case BranchCommit:
		err = BranchCommitAction(ctx, BranchCommitOptions{Name: c.Name, Message: c.Message, All: c.All, NoVerify: c.NoVerify})
	case StackCheckout:
		clearJournal = false
		err = StackCheckoutAction(ctx)
	case Land:
		clearJournal = false
		err = LandAction(ctx, LandOptions{Force: c.Force})
	case Import:
		clearJournal = false
		err = ImportAction(ctx, ImportOptions{Name: c.Name, Force: c.Force})
	case Inbox:
		clearJournal = false
		err = InboxAction(ctx, InboxOptions{Compact: c.Compact})
	case PRs:
		clearJournal = false
		err = PRsAction(ctx)
	default:
		return stackyerrors.NewUserError("Unknown command %T", cmd)
	}

	if err != nil || !clearJournal {
		return err
	}
	if err := ctx.Journal.Clear(); err != nil {
		return fmt.Errorf("failed to clear operation state: %w", err)
	}
	return nil
}
