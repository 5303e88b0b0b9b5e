// render.go - mode-specific rendering of AppError.
//
//	local    multi-line text for a developer terminal:
//	           Error: <label>
//	           Code: <code>
//	           Message: <message>
//
//	             Caused by: <cause>
//
//	           Context:
//	             <name>: <value>
//
//	             hint: <hint>
//
//	             suggestion: <suggestion>
//	                         <command>
//
//	           Stack:
//	             <function> <file>:<line>
//
//	staging  {"kind":..,"code":..,"message":..,"source_chain":[..],"metadata":{..}}
//	prod     {"kind":..,"code":..,"message":..,"metadata":{..}}
//
// Rendering is read-only and a pure function of (error, RenderContext).
// Redacted messages and fields never reach any of the three outputs.
// Diagnostics (hints, suggestions, docs) appear in local output only.
package masterror

import (
	"strings"
)

// Render produces the representation selected by rc.Mode().
func Render(e *AppError, rc RenderContext) string {
	switch rc.Mode() {
	case ModeProd:
		return RenderProd(e)
	case ModeStaging:
		return renderStaging(e, rc.chainLimit(ModeStaging))
	default:
		return renderLocal(e, rc.chainLimit(ModeLocal), rc.Colored)
	}
}

// RenderLocal renders the uncoloured local form with default limits.
func RenderLocal(e *AppError) string {
	return renderLocal(e, defaultLocalChainLimit, false)
}

// RenderStaging renders the staging JSON with default limits.
func RenderStaging(e *AppError) string {
	return renderStaging(e, defaultStagingChainLimit)
}

// RenderProd renders the minimal production JSON.
func RenderProd(e *AppError) string {
	if e == nil {
		return "null"
	}
	b := make([]byte, 0, 128)
	b = appendMachineHead(b, e)
	b = appendPublicMetadata(b, &e.metadata)
	b = append(b, '}')
	return string(b)
}

func renderStaging(e *AppError, limit int) string {
	if e == nil {
		return "null"
	}
	b := make([]byte, 0, 256)
	b = appendMachineHead(b, e)
	if e.context != nil {
		b = append(b, `,"source_chain":[`...)
		i := 0
		for cause := range e.Chain().All() {
			if i == limit {
				break
			}
			if i > 0 {
				b = append(b, ',')
			}
			b = appendJSONString(b, cause.Error())
			i++
		}
		b = append(b, ']')
	}
	b = appendPublicMetadata(b, &e.metadata)
	b = append(b, '}')
	return string(b)
}

// appendMachineHead writes the opening brace and the kind/code/message
// members shared by staging and prod.
func appendMachineHead(b []byte, e *AppError) []byte {
	b = append(b, `{"kind":`...)
	b = appendJSONString(b, e.kind.String())
	b = append(b, `,"code":`...)
	b = appendJSONString(b, string(e.code))
	if msg, ok := e.visibleMessage(); ok {
		b = append(b, `,"message":`...)
		b = appendJSONString(b, msg)
	}
	return b
}

func renderLocal(e *AppError, limit int, colored bool) string {
	if e == nil {
		return "<nil>\n"
	}
	st := plainStyles
	if colored {
		st = newColorStyles()
	}
	var sb strings.Builder

	sb.WriteString("Error: ")
	sb.WriteString(st.kind(e.kind))
	sb.WriteByte('\n')
	sb.WriteString("Code: ")
	sb.WriteString(st.code(string(e.code)))
	sb.WriteByte('\n')
	if msg, ok := e.visibleMessage(); ok {
		sb.WriteString("Message: ")
		sb.WriteString(st.message(msg))
		sb.WriteByte('\n')
	}

	if e.context != nil {
		sb.WriteByte('\n')
		i := 0
		for cause := range e.Chain().All() {
			if i == limit {
				break
			}
			sb.WriteString("  ")
			sb.WriteString(st.source("Caused by: " + cause.Error()))
			sb.WriteByte('\n')
			i++
		}
	}

	if e.metadata.hasPublic() {
		sb.WriteString("\nContext:\n")
		for f := range e.metadata.IterWithRedaction() {
			v, ok := sanitize(f)
			if !ok {
				continue
			}
			sb.WriteString("  ")
			sb.WriteString(st.key(f.name))
			sb.WriteString(": ")
			sb.WriteString(v.String())
			sb.WriteByte('\n')
		}
	}

	writeDiagnostics(&sb, e.diag, st)

	if len(e.stk) > 0 {
		sb.WriteString("\nStack:\n")
		for _, fr := range e.stk {
			sb.WriteString("  ")
			sb.WriteString(fr.String())
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// writeDiagnostics appends the local diagnostics block. Every visibility
// level is admitted here since local output targets the developer.
func writeDiagnostics(sb *strings.Builder, d *Diagnostics, st localStyles) {
	if d.IsEmpty() {
		return
	}
	const minVis = VisibleDevOnly

	hinted := false
	for _, h := range d.Hints {
		if !h.Visibility.admits(minVis) {
			continue
		}
		if !hinted {
			sb.WriteByte('\n')
			hinted = true
		}
		sb.WriteString("  ")
		sb.WriteString(st.hint("hint:"))
		sb.WriteByte(' ')
		sb.WriteString(h.Message)
		sb.WriteByte('\n')
	}
	for _, s := range d.Suggestions {
		if !s.Visibility.admits(minVis) {
			continue
		}
		sb.WriteString("\n  ")
		sb.WriteString(st.hint("suggestion:"))
		sb.WriteByte(' ')
		sb.WriteString(s.Message)
		sb.WriteByte('\n')
		if s.Command != "" {
			sb.WriteString("              ")
			sb.WriteString(st.command(s.Command))
			sb.WriteByte('\n')
		}
	}
	if doc := d.Docs; doc != nil && doc.Visibility.admits(minVis) {
		sb.WriteString("\n  ")
		sb.WriteString(st.hint("docs:"))
		sb.WriteByte(' ')
		if doc.Title != "" {
			sb.WriteString(doc.Title)
			sb.WriteString(" (")
			sb.WriteString(doc.URL)
			sb.WriteByte(')')
		} else {
			sb.WriteString(doc.URL)
		}
		sb.WriteByte('\n')
	}
	if len(d.RelatedCodes) > 0 {
		sb.WriteString("\n  ")
		sb.WriteString(st.hint("see also:"))
		sb.WriteByte(' ')
		for i, c := range d.RelatedCodes {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(string(c))
		}
		sb.WriteByte('\n')
	}
}
