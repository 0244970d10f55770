package cli

import (
	"context"
	"fmt"
	"io"
)

// getStatus renders the prompt suffix: current sort and an offline marker
// when the local store cannot be used.
func (a *App) getStatus(ctx context.Context) string {
	s := fmt.Sprintf("%s %s", a.view.sort, a.view.order)
	if a.view.search != "" {
		s += fmt.Sprintf(" %q", a.view.search)
	}
	if !a.users.Status(ctx).StorageAvailable {
		s += " no-cache"
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Root(ctx context.Context) {
	interactive := a.prompts != io.Discard
	if interactive {
		printlnFn("Welcome to the users CLI (type 'help' for commands)")
	}

	prompt := func() string {
		if !interactive {
			return ""
		}
		return fmt.Sprintf("users %s> ", a.getStatus(ctx))
	}

	runREPL(ctx, a, prompt, a.reader)
}
