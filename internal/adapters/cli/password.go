package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// PasswordReader prompts for a password and returns it without echoing
// the characters when the input is a real terminal.
type PasswordReader func(prompt string) (string, error)

// newPasswordReader masks input via the terminal when stdin is one, and
// falls back to a plain prompter line otherwise (pipes, tests).
func newPasswordReader(p *Prompter) PasswordReader {
	return func(prompt string) (string, error) {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return p.Line(prompt), nil
		}

		fmt.Fprint(p.out, prompt)
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}
}
