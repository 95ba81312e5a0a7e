package actions

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/github"
	"stacky.dev/stacky/internal/runtime"
	"stacky.dev/stacky/internal/tui"
	"stacky.dev/stacky/internal/tui/style"
)

// InboxOptions contains options for the inbox command
type InboxOptions struct {
	// Compact prints one line per PR
	Compact bool
}

// InboxAction lists the open PRs of the user by what they wait on, then the
// PRs waiting on the user's review
func InboxAction(ctx *runtime.Context, opts InboxOptions) error {
	client, err := ctx.GitHub()
	if err != nil {
		return err
	}
	inbox, err := client.ListInbox(ctx.Context)
	if err != nil {
		return err
	}

	var b strings.Builder
	groups := []struct {
		title string
		color func(string) string
		prs   []github.InboxPR
	}{
		{"Your PRs - Waiting on You:", style.ColorRed, inbox.WaitingOnYou},
		{"Your PRs - Waiting on Review:", style.ColorYellow, inbox.WaitingOnReview},
		{"Your PRs - Approved:", style.ColorGreen, inbox.Approved},
	}
	for _, group := range groups {
		if len(group.prs) == 0 {
			continue
		}
		b.WriteString(group.color(group.title) + "\n")
		for _, pr := range group.prs {
			writeInboxPR(&b, pr, false, opts.Compact)
		}
		b.WriteString("\n")
	}
	if len(inbox.Authored()) == 0 {
		b.WriteString(style.ColorGreen("No active pull requests authored by you.") + "\n")
	}
	if len(inbox.ToReview) == 0 {
		b.WriteString(style.ColorYellow("No pull requests awaiting your review.") + "\n")
	} else {
		b.WriteString(style.ColorYellow("Pull Requests Awaiting Your Review:") + "\n")
		for _, pr := range inbox.ToReview {
			writeInboxPR(&b, pr, true, opts.Compact)
		}
	}

	ctx.Splog.Print(b.String())
	return nil
}

func checkText(state github.CheckState) string {
	switch state {
	case github.ChecksFailed:
		return style.ColorRed("✗ Checks failed")
	case github.ChecksRunning:
		return style.ColorYellow("⏳ Checks running")
	case github.ChecksPassed:
		return style.ColorGreen("✓ Checks passed")
	default:
		return ""
	}
}

func writeInboxPR(b *strings.Builder, pr github.InboxPR, showAuthor, compact bool) {
	const day = "2006-01-02"
	checks := checkText(pr.Checks)

	if compact {
		fields := []string{style.ColorPRNumber(pr.Number), pr.Title, style.ColorDim("(" + pr.HeadRef + ")")}
		if showAuthor {
			fields = append(fields, style.ColorDim("by "+pr.Author))
		}
		if pr.Draft {
			fields = append(fields, style.ColorYellow("[DRAFT]"))
		}
		if checks != "" {
			fields = append(fields, checks)
		}
		fields = append(fields, style.ColorDim("Updated: "+pr.UpdatedAt.Format(day)))
		b.WriteString(strings.Join(fields, " ") + "\n")
		return
	}

	fmt.Fprintf(b, "%s %s\n", style.ColorPRNumber(pr.Number), pr.Title)
	fmt.Fprintf(b, "  %s\n", style.ColorDim(pr.HeadRef+" -> "+pr.BaseRef))
	if showAuthor {
		fmt.Fprintf(b, "  %s\n", style.ColorDim("Author: "+pr.Author))
	}
	if pr.Draft {
		fmt.Fprintf(b, "  %s\n", style.ColorYellow("[DRAFT]"))
	}
	if checks != "" {
		fmt.Fprintf(b, "  %s\n", checks)
	}
	fmt.Fprintf(b, "  %s\n", style.ColorPR(pr.URL))
	fmt.Fprintf(b, "  %s\n\n", style.ColorDim(fmt.Sprintf("Updated: %s, Created: %s",
		pr.UpdatedAt.Format(day), pr.CreatedAt.Format(day))))
}

// PRsAction lets the user pick open PRs from the inbox and edit their
// descriptions until they pick Exit
func PRsAction(ctx *runtime.Context) error {
	gctx := ctx.Context
	splog := ctx.Splog

	client, err := ctx.GitHub()
	if err != nil {
		return err
	}
	inbox, err := client.ListInbox(gctx)
	if err != nil {
		return err
	}
	prs := inbox.All()
	if len(prs) == 0 {
		splog.Info("No active pull requests found.")
		return nil
	}
	if !tui.InteractiveAllowed() {
		return stackyerrors.NewUserError("Interactive PR management requires a terminal")
	}

	const exit = "exit"
	options := make([]tui.PickerOption, 0, len(prs)+1)
	for i, pr := range prs {
		options = append(options, tui.PickerOption{
			Label: fmt.Sprintf("#%d %s", pr.Number, pr.Title),
			Value: strconv.Itoa(i),
		})
	}
	options = append(options, tui.PickerOption{Label: "Exit", Value: exit})

	for {
		choice, err := tui.PromptPicker("Select a PR to edit its description", options, 0)
		if errors.Is(err, tui.ErrCanceled) || choice == exit {
			return nil
		}
		if err != nil {
			return err
		}
		i, err := strconv.Atoi(choice)
		if err != nil {
			return err
		}
		if err := editPRDescription(ctx, client, &prs[i]); err != nil {
			return err
		}
	}
}

func editPRDescription(ctx *runtime.Context, client github.Client, pr *github.InboxPR) error {
	splog := ctx.Splog

	splog.Info("Editing PR #%d - %s", pr.Number, pr.Title)
	edited, err := tui.EditText(pr.Body, fmt.Sprintf("pr-%d-*.md", pr.Number))
	if err != nil {
		splog.Warn("%v, not updating PR description", err)
		return nil
	}
	body := strings.TrimSpace(edited)
	if body == strings.TrimSpace(pr.Body) {
		splog.Info("No changes made to PR description.")
		return nil
	}

	if _, err := client.UpdatePullRequest(ctx.Context, pr.Number, github.UpdatePROptions{Body: &body}); err != nil {
		return err
	}
	pr.Body = body
	splog.Info("✓ Updated description of PR #%d", pr.Number)
	return nil
}
