// diagnostics.go - developer-facing hints, suggestions and documentation links.
//
// Diagnostics never reach machine output. Only the local renderer prints
// them, and only items whose visibility admits the local audience.
package masterror

import "strconv"

// DiagnosticVisibility says which audiences may see a diagnostic item.
type DiagnosticVisibility uint8

const (
	// VisibleDevOnly items appear in local output only. It is the default
	// for hints and suggestions.
	VisibleDevOnly DiagnosticVisibility = iota
	// VisibleInternal items are meant for operators as well as developers.
	VisibleInternal
	// VisiblePublic items may be shown to anyone. It is the default for
	// documentation links.
	VisiblePublic
)

func (v DiagnosticVisibility) String() string {
	switch v {
	case VisibleDevOnly:
		return "dev-only"
	case VisibleInternal:
		return "internal"
	case VisiblePublic:
		return "public"
	default:
		return "DiagnosticVisibility(" + strconv.Itoa(int(v)) + ")"
	}
}

// admits reports whether an item with visibility v may be shown to an
// audience whose minimum level is min.
func (v DiagnosticVisibility) admits(min DiagnosticVisibility) bool { return v >= min }

// Hint explains why an error may have happened.
type Hint struct {
	Message    string
	Visibility DiagnosticVisibility
}

// Suggestion proposes a fix, optionally with a command to run.
type Suggestion struct {
	Message    string
	Command    string
	Visibility DiagnosticVisibility
}

// DocLink points at a longer explanation.
type DocLink struct {
	URL        string
	Title      string
	Visibility DiagnosticVisibility
}

// Diagnostics groups the optional developer aids of an AppError.
type Diagnostics struct {
	Hints        []Hint
	Suggestions  []Suggestion
	Docs         *DocLink
	RelatedCodes []Code
}

// IsEmpty reports whether d carries nothing.
func (d *Diagnostics) IsEmpty() bool {
	return d == nil ||
		len(d.Hints) == 0 && len(d.Suggestions) == 0 && d.Docs == nil && len(d.RelatedCodes) == 0
}

func (d *Diagnostics) clone() *Diagnostics {
	if d == nil {
		return &Diagnostics{}
	}
	out := &Diagnostics{
		Hints:        append([]Hint(nil), d.Hints...),
		Suggestions:  append([]Suggestion(nil), d.Suggestions...),
		RelatedCodes: append([]Code(nil), d.RelatedCodes...),
	}
	if d.Docs != nil {
		doc := *d.Docs
		out.Docs = &doc
	}
	return out
}

// withDiag is clone plus a private diagnostics copy.
func (e *AppError) withDiag() *AppError {
	n := e.clone()
	n.diag = n.diag.clone()
	return n
}

// WithHint adds a dev-only hint.
func (e *AppError) WithHint(msg string) *AppError {
	return e.WithHintVisible(msg, VisibleDevOnly)
}

// WithHintVisible adds a hint with an explicit visibility.
func (e *AppError) WithHintVisible(msg string, v DiagnosticVisibility) *AppError {
	n := e.withDiag()
	n.diag.Hints = append(n.diag.Hints, Hint{Message: msg, Visibility: v})
	return n
}

// WithSuggestion adds a dev-only suggestion.
func (e *AppError) WithSuggestion(msg string) *AppError {
	n := e.withDiag()
	n.diag.Suggestions = append(n.diag.Suggestions, Suggestion{Message: msg})
	return n
}

// WithSuggestionCmd adds a dev-only suggestion together with a command.
func (e *AppError) WithSuggestionCmd(msg, cmd string) *AppError {
	n := e.withDiag()
	n.diag.Suggestions = append(n.diag.Suggestions, Suggestion{Message: msg, Command: cmd})
	return n
}

// WithDocs sets the documentation link, replacing any previous one.
func (e *AppError) WithDocs(url string) *AppError {
	return e.WithDocsTitled(url, "")
}

// WithDocsTitled sets a documentation link with a title.
func (e *AppError) WithDocsTitled(url, title string) *AppError {
	n := e.withDiag()
	n.diag.Docs = &DocLink{URL: url, Title: title, Visibility: VisiblePublic}
	return n
}

// WithRelatedCode cross-references another code.
func (e *AppError) WithRelatedCode(c Code) *AppError {
	n := e.withDiag()
	n.diag.RelatedCodes = append(n.diag.RelatedCodes, c)
	return n
}

// Diagnostics returns a copy of the attached diagnostics, if any.
func (e *AppError) Diagnostics() (Diagnostics, bool) {
	if e == nil || e.diag.IsEmpty() {
		return Diagnostics{}, false
	}
	return *e.diag.clone(), true
}
