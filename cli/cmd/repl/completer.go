package repl

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/doji/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "format", "tokens", "edit", "clear", "quit"}

// isIdentByte reports whether c may appear in an identifier.
func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// wordBounds returns the identifier under the cursor and its byte bounds.
// The word is empty when the cursor is not adjacent to an identifier.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 && isIdentByte(input[start-1]) {
		start--
	}

	end = cursor
	for end < len(input) && isIdentByte(input[end]) {
		end++
	}

	return input[start:end], start, end
}

// vocabulary is the set of completion candidates in parse mode: the
// reserved words followed by every identifier seen in a parsed line.
type vocabulary struct {
	keywords []string
	idents   []string
}

func newVocabulary() *vocabulary {
	return &vocabulary{keywords: lang.Keywords()}
}

// learn adds the identifiers of prog to the vocabulary.
func (v *vocabulary) learn(prog *lang.Program) {
	lang.Walk(prog, func(n lang.Node) bool {
		if id, ok := n.(*lang.Ident); ok {
			if _, found := slices.BinarySearch(v.idents, id.Name); !found {
				v.idents = append(v.idents, strings.Clone(id.Name))
				slices.Sort(v.idents)
			}
		}

		return true
	})
}

func (v *vocabulary) all() []string {
	return append(slices.Clone(v.keywords), v.idents...)
}

// computeMatches calculates the fuzzy matches for the word at the cursor,
// ranked best-first, along with the word bounds.
//
// In parse mode an empty word offers nothing, except directly after '.'
// where every known identifier is offered as a member name. In control
// mode the first word completes commands and the argument of "format"
// completes output formats.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())

	var candidates []string

	switch {
	case m.mode == modeCtrl:
		fields := strings.Fields(input[:wordStart])

		switch {
		case len(fields) == 0:
			candidates = ctrlCommands
		case len(fields) == 1 && fields[0] == "format":
			candidates = formats
		}

		if word == "" {
			return nil, wordStart, wordEnd
		}

	case word == "":
		if wordStart == 0 || input[wordStart-1] != '.' || len(m.vocab.idents) == 0 {
			return nil, wordStart, wordEnd
		}

		matches = make(fuzzy.Matches, len(m.vocab.idents))
		for i, c := range m.vocab.idents {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, wordStart, wordEnd

	default:
		candidates = m.vocab.all()
	}

	if len(candidates) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. The selected candidate (when tabbing) uses the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters
// highlighted. Reserved words are rendered in the keyword color.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle

	switch {
	case selected:
		base, highlight = selectedStyle, selectedMatchStyle
	case slices.Contains(lang.Keywords(), match.Str):
		base = keywordStyle
	}

	var b strings.Builder

	next := 0

	for i, r := range match.Str {
		if next < len(match.MatchedIndexes) && match.MatchedIndexes[next] == i {
			b.WriteString(highlight.Render(string(r)))

			next++

			continue
		}

		b.WriteString(base.Render(string(r)))
	}

	return b.String()
}
