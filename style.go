// style.go - optional ANSI styling for local rendering.
//
// The renderer is pinned to the ANSI profile and never inspects a terminal;
// whether colour is wanted is decided by the caller via RenderContext.Colored.
package masterror

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type localStyles struct {
	kind    func(Kind) string
	code    func(string) string
	message func(string) string
	source  func(string) string
	key     func(string) string
	hint    func(string) string
	command func(string) string
}

func identity(s string) string { return s }

var plainStyles = localStyles{
	kind:    func(k Kind) string { return k.Label() },
	code:    identity,
	message: identity,
	source:  identity,
	key:     identity,
	hint:    identity,
	command: identity,
}

func newColorStyles() localStyles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)

	critical := r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warning := r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	code := r.NewStyle().Foreground(lipgloss.Color("14"))
	message := r.NewStyle().Bold(true)
	source := r.NewStyle().Foreground(lipgloss.Color("8"))
	key := r.NewStyle().Foreground(lipgloss.Color("13"))
	hint := r.NewStyle().Foreground(lipgloss.Color("12"))
	command := r.NewStyle().Foreground(lipgloss.Color("10"))

	return localStyles{
		kind: func(k Kind) string {
			if k.IsCritical() {
				return critical.Render(k.Label())
			}
			return warning.Render(k.Label())
		},
		code:    render(code),
		message: render(message),
		source:  render(source),
		key:     render(key),
		hint:    render(hint),
		command: render(command),
	}
}

func render(st lipgloss.Style) func(string) string {
	return func(s string) string { return st.Render(s) }
}
