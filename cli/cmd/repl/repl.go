package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/doji/alloc"
	"github.com/ardnew/doji/lang"
	"github.com/ardnew/doji/log"
)

const (
	parsePrompt = "➜ "
	ctrlPrompt  = " :"

	// replPath labels diagnostics for lines typed at the prompt.
	replPath = "<repl>"
)

// formats are the output formats selectable with the format command.
var formats = []string{"tree", "sexpr", "json", "yaml"}

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help             Print this cruft
  format [NAME]    Show or set the output format (tree, sexpr, json, yaml)
  tokens           Toggle printing the token stream of each line
  edit             Edit the last line in external $EDITOR and parse it
  clear            Clear screen
  quit             Exit REPL

Usage:
  Type an expression to parse it and print its syntax tree
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Press Esc to toggle between parse and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeParse inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	caretStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tokenStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	keywordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// Config configures a REPL session.
type Config struct {
	// HistoryPath is the history file. Empty keeps history in memory.
	HistoryPath string
	// Format is the initial output format, one of tree, sexpr, json, yaml.
	Format string
	// Provider returns a fresh provider for each parsed line. Nil selects
	// an unbounded provider.
	Provider func() alloc.Provider
	// Options are applied to every parse.
	Options []lang.Option
	Logger  log.Logger
}

func (c Config) provider() alloc.Provider {
	if c.Provider == nil {
		return alloc.Heap()
	}

	return c.Provider()
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctx          context.Context
	cfg          Config
	input        textinput.Model
	history      *History
	historyIdx   int
	vocab        *vocabulary
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	parseText    string
	parseCursor  int
	ctrlText     string
	ctrlCursor   int
	format       string
	showTokens   bool
	last         string // most recent source parsed
}

// Run starts an interactive session that parses each submitted line.
func Run(ctx context.Context, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	history := NewHistory(cfg.HistoryPath)
	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	cfg.Logger.TraceContext(
		ctx,
		"repl start",
		slog.String("history", cfg.HistoryPath),
		slog.Int("entry_count", history.Len()),
		slog.String("format", cfg.Format),
	)

	m := newModel(ctx, cfg, history)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, cfg Config, history *History) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(parsePrompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	format := cfg.Format
	if !isFormat(format) {
		format = formats[0]
	}

	return model{
		ctx:        ctx,
		cfg:        cfg,
		input:      ti,
		history:    history,
		historyIdx: history.Len(),
		vocab:      newVocabulary(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeParse,
		format:     format,
	}
}

func isFormat(name string) bool { return slices.Contains(formats, name) }

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(parsePrompt) - 2

		return m, nil

	case editDoneMsg:
		m.last = msg.source
		out := m.render(msg.source)

		return m, tea.Println(out)

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editDeclinedMsg:
		return m, tea.Println(hintStyle.Render("edit discarded"))

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		hint := "Type an expression or press Esc for commands"
		if m.mode == modeCtrl {
			hint = "Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.cfg.Logger.TraceContext(
		m.ctx,
		"repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}

		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		if m.mode == modeParse {
			return m.switchToMode(modeCtrl), nil
		}

		return m.switchToMode(modeParse), nil

	case tea.KeyRunes, tea.KeySpace:
		// Space breaks out of tab-cycling, keeping the candidate.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Any other key (backspace, delete, arrows, etc.) edits the input and
	// recomputes matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the tab selection by step, wrapping around. A single
// candidate is completed and confirmed immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + n) % n
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word in the input with
// replacement and moves the cursor after it.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// With autoConfirm, a word that already equals its sole candidate is
// accepted so the bar disappears. Deletions and cursor movement pass false
// so editing never completes unexpectedly.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.parseText, m.parseCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(input, m.mode); err != nil {
		m.cfg.Logger.WarnContext(m.ctx, "could not save history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.executeCommand(input)
	}

	m.cfg.Logger.TraceContext(m.ctx, "repl parse", slog.String("input", input))

	m.last = input

	return m, tea.Sequence(
		tea.Println(promptStyle.Render(parsePrompt)+inputStyle.Render(input)),
		tea.Println(m.render(input)),
	)
}

// render parses src and returns its styled output: the token stream if
// enabled, then the tree in the current format, or the failure.
func (m model) render(src string) string {
	var b strings.Builder

	if m.showTokens {
		toks, _ := lang.Tokens(m.ctx, replPath, []byte(src), m.cfg.Options...)
		for _, tok := range toks {
			line := fmt.Sprintf("%d:%d %s %s %s",
				tok.Location.Line, tok.Location.Column, tok.Kind, tok.Span, tok.Text([]byte(src)))
			b.WriteString(tokenStyle.Render(strings.TrimRight(line, " ")))
			b.WriteByte('\n')
		}
	}

	res, err := lang.Parse(m.ctx, m.cfg.provider(), replPath, []byte(src), m.cfg.Options...)
	if err != nil {
		m.cfg.Logger.TraceContext(m.ctx, "repl parse failed", slog.Any("error", err))
		b.WriteString(renderError(src, err))

		return b.String()
	}
	defer res.Release()

	m.vocab.learn(res.Program)

	var out strings.Builder

	switch m.format {
	case "sexpr":
		err = res.Program.Format(m.ctx, &out, 0)
	case "json":
		err = res.Program.FormatJSON(m.ctx, &out, 2)
	case "yaml":
		err = res.Program.FormatYAML(m.ctx, &out, 2)
	default:
		err = lang.Print(&out, res.Program, 2)
	}

	if err != nil {
		b.WriteString(errorStyle.Render("error: " + err.Error()))

		return b.String()
	}

	b.WriteString(resultStyle.Render(strings.TrimRight(out.String(), "\n")))

	return b.String()
}

// renderError renders a diagnostic as the offending source line with a
// caret under the reported span, followed by the message. Other errors
// are rendered as a single line.
func renderError(src string, err error) string {
	var d *lang.Diagnostic
	if !errors.As(err, &d) {
		return errorStyle.Render("error: " + err.Error())
	}

	lines := strings.Split(src, "\n")

	row := min(max(d.Location.Line, 1), len(lines)) - 1
	line := lines[row]

	col := min(max(d.Location.Column, 1), len(line)+1) - 1
	width := min(max(d.Span.Len, 1), max(len(line)-col, 1))

	var b strings.Builder

	b.WriteString(hintStyle.Render(line))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", col))
	b.WriteString(caretStyle.Render(strings.Repeat("^", width)))
	b.WriteByte('\n')
	b.WriteString(errorStyle.Render(d.Kind.String() + ": " + d.Location.String() + ": " + d.Message))

	return b.String()
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echo := tea.Println(ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input))

	cmd, args := parts[0], parts[1:]

	m.cfg.Logger.TraceContext(
		m.ctx,
		"repl exec command",
		slog.String("command", cmd),
		slog.Any("args", args),
	)

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "f", "format":
		if len(args) == 0 {
			return m, tea.Sequence(echo, tea.Println(hintStyle.Render("format: "+m.format)))
		}

		if !isFormat(args[0]) {
			return m, tea.Sequence(echo, tea.Println(errorStyle.Render(
				"unknown format: "+args[0]+" (one of "+strings.Join(formats, ", ")+")")))
		}

		m.format = args[0]

		return m, tea.Sequence(echo, tea.Println(hintStyle.Render("format: "+m.format)))

	case "t", "tokens":
		m.showTokens = !m.showTokens

		return m, tea.Sequence(echo, tea.Println(hintStyle.Render(
			"tokens: "+strconv.FormatBool(m.showTokens))))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echo, m.edit())

	default:
		return m, tea.Sequence(echo, tea.Println(
			errorStyle.Render("unknown command: "+cmd+" (try 'help')")))
	}
}

// historyStep moves through history by step (-1 older, +1 newer). With
// sameMode, entries of the other mode are skipped; otherwise the mode
// follows the entry. Stepping past the newest entry clears the input.
func (m model) historyStep(step int, sameMode bool) model {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.Entry(i)
		if err != nil || (sameMode && entry.Mode != m.mode) {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m, false)

		return m
	}

	if step > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

// switchToMode switches to mode, saving the input of the current mode and
// restoring that of the target.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeParse {
		m.parseText, m.parseCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode

	if mode == modeParse {
		m.input.Prompt = promptStyle.Render(parsePrompt)
		m.input.SetValue(m.parseText)
		m.input.SetCursor(m.parseCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m
}
