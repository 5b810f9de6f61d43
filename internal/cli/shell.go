// AngelaMos | 2026
// shell.go

package cli

import (
	"context"
	"errors"
	"io"
	"strings"
)

// Shell runs an interactive session against the onboarding machine until
// the input ends or the user quits.
func (a *App) Shell(ctx context.Context) error {
	a.printf("Mines and Minerals Laws. Type \"help\" for commands.\n")
	_ = cmdState(ctx, a, nil) //nolint:errcheck // never fails

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := a.readLine("mmle:" + a.Machine.Current().Name() + "> ")
		if errors.Is(err, io.EOF) {
			a.printf("\n")
			return nil
		}
		if err != nil {
			return err
		}

		quit, err := a.Exec(ctx, line)
		if err != nil && userFacing(err) {
			a.printf("error: %v\n", err)
		} else if err != nil {
			a.Logger.DebugContext(ctx, "command failed", "line", redact(line), "error", err)
		}
		if quit {
			return nil
		}
	}
}

// Exec runs one shell line. quit is true when the line asks to leave.
func (a *App) Exec(ctx context.Context, line string) (quit bool, err error) {
	words, err := splitWords(strings.TrimSpace(line))
	if err != nil {
		return false, err
	}
	if len(words) == 0 {
		return false, nil
	}

	name := strings.ToLower(words[0])
	switch name {
	case "quit", "exit":
		return true, nil
	case "help", "?":
		a.help()
		return false, nil
	}

	cmd, ok := lookupCommand(name)
	if !ok {
		return false, &UsageError{Usage: "unknown command " + name + ", try \"help\""}
	}

	before := a.Machine.Current()
	if err := cmd.run(ctx, a, words[1:]); err != nil {
		return false, err
	}
	if after := a.Machine.Current(); after != before {
		a.printf("-> %s\n", after.Name())
	}
	return false, nil
}

func (a *App) help() {
	for _, c := range commands {
		a.printf("  %-12s %s\n", c.name, c.short)
		if c.usage != "" {
			a.printf("  %-12s   %s %s\n", "", c.name, c.usage)
		}
	}
	a.printf("  %-12s %s\n", "quit", "Leave the shell")
}

// redact hides password values before a line is logged.
func redact(line string) string {
	words := strings.Fields(line)
	for i, w := range words {
		k, _, ok := strings.Cut(w, "=")
		if ok && (strings.EqualFold(k, "password") || strings.EqualFold(k, "confirm")) {
			words[i] = k + "=***"
		}
	}
	return strings.Join(words, " ")
}
