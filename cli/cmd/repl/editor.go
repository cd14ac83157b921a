package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/doji/lang"
	"github.com/ardnew/doji/pkg"
)

const defaultEditor = "vi"

// editDoneMsg carries source that parsed successfully in the editor.
type editDoneMsg struct{ source string }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after a parse
// error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process fails for any other reason.
type editErrorMsg struct{ err error }

// edit opens the last parsed source in the user's editor.
func (m model) edit() tea.Cmd {
	cmd := &editCommand{
		ctx:     m.ctx,
		cfg:     m.cfg,
		content: m.last,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}
		case err != nil:
			return editErrorMsg{err: err}
		case cmd.content == "":
			return editCancelledMsg{}
		default:
			return editDoneMsg{source: cmd.content}
		}
	})
}

// editCommand implements [tea.ExecCommand] for an edit-parse-retry loop.
// It writes the content to a temp file, opens the editor, and parses the
// result. On a parse error the user is asked whether to edit again.
type editCommand struct {
	ctx     context.Context
	cfg     Config
	content string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the loop. On return, c.content holds the accepted source,
// or is empty if the user cleared the file. Declining to re-edit returns
// [ErrEditDeclined].
func (c *editCommand) Run() error {
	f, err := os.CreateTemp("", pkg.Name+"-repl-*."+pkg.Name)
	if err != nil {
		return err
	}

	path := f.Name()
	defer os.Remove(path)

	if err := f.Close(); err != nil {
		return err
	}

	for {
		if err := os.WriteFile(path, []byte(c.content), 0o600); err != nil {
			return err
		}

		if err := runEditor(c.ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		c.content = strings.TrimSpace(string(data))
		if c.content == "" {
			return nil
		}

		res, parseErr := lang.Parse(c.ctx, c.cfg.provider(), path, []byte(c.content), c.cfg.Options...)

		c.cfg.Logger.TraceContext(
			c.ctx,
			"editor parse attempt",
			slog.Int("content_length", len(c.content)),
			slog.Bool("success", parseErr == nil),
		)

		if parseErr == nil {
			res.Release()

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n", parseErr)
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}
	}
}

// runEditor runs $EDITOR (split on spaces, default vi) on path, attached
// to the given streams.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	args := strings.Fields(os.Getenv("EDITOR"))
	if len(args) == 0 {
		args = []string{defaultEditor}
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
