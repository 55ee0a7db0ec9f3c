// Package tmpl renders the small text templates that appear in configuration:
// the readme, commit messages, the default description, the repository
// homepage and the list of URLs opened after creation.
//
// Templates use mustache-style placeholders, {{projectName}}, bound to a fixed
// variable set. The unescaped form {{{projectName}}} is accepted too and
// renders the same. Rendering is a single substitution pass: there are no
// conditionals, loops or helpers, and nothing is escaped because the results
// end up in files and process arguments, never in markup.
package tmpl

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

// Bindings is the fixed set of variables available to every template.
type Bindings struct {
	Owner          string
	Template       string
	InitialVersion string
	ProjectName    string
}

// Map returns the bindings keyed by their placeholder names.
func (b Bindings) Map() map[string]string {
	return map[string]string{
		"owner":          b.Owner,
		"template":       b.Template,
		"initialVersion": b.InitialVersion,
		"projectName":    b.ProjectName,
	}
}

// SyntaxError reports a template that is not plain placeholder substitution.
type SyntaxError struct {
	// Offset is the byte offset of the offending "{{" in the template.
	Offset int

	// Action is the raw text between the braces, if the action was closed.
	Action string

	// Message describes the problem.
	Message string
}

// Error implements the error interface for SyntaxError.
func (e *SyntaxError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("template syntax error at offset %d: %s: {{%s}}", e.Offset, e.Message, e.Action)
	}
	return fmt.Sprintf("template syntax error at offset %d: %s", e.Offset, e.Message)
}

// placeholderName matches the only action form accepted inside braces.
var placeholderName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Resolver renders templates against one set of bindings.
type Resolver struct {
	data map[string]string
}

// NewResolver creates a resolver for the given bindings.
func NewResolver(b Bindings) *Resolver {
	return &Resolver{data: b.Map()}
}

// Resolve substitutes every {{name}} placeholder in text. Names outside the
// binding set render as the empty string. Anything else between braces, or an
// unclosed "{{", is returned as a *SyntaxError.
func (r *Resolver) Resolve(text string) (string, error) {
	goText, err := translate(text)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New("text").Option("missingkey=zero").Parse(goText)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// ResolveAll renders each template in order and stops at the first error.
func (r *Resolver) ResolveAll(texts []string) ([]string, error) {
	out := make([]string, 0, len(texts))
	for i, text := range texts {
		resolved, err := r.Resolve(text)
		if err != nil {
			return nil, fmt.Errorf("template %d: %w", i, err)
		}
		out = append(out, resolved)
	}
	return out, nil
}

// translate converts placeholder syntax to text/template syntax. Each
// {{name}} or {{{name}}} becomes {{index . "name"}} so that a missing key yields "".
// Literal text never contains "{{" after translation, so text/template sees
// no actions other than the generated ones.
func translate(text string) (string, error) {
	var b strings.Builder
	rest := text
	offset := 0

	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		b.WriteString(rest[:open])

		openDelim, closeDelim := "{{", "}}"
		if strings.HasPrefix(rest[open:], "{{{") {
			openDelim, closeDelim = "{{{", "}}}"
		}
		start := open + len(openDelim)

		closeIdx := strings.Index(rest[start:], closeDelim)
		if closeIdx < 0 {
			return "", &SyntaxError{Offset: offset + open, Message: "unclosed placeholder"}
		}

		action := rest[start : start+closeIdx]
		name := strings.TrimSpace(action)
		if !placeholderName.MatchString(name) {
			return "", &SyntaxError{Offset: offset + open, Action: action, Message: "only {{name}} placeholders are supported"}
		}
		fmt.Fprintf(&b, "{{index . %q}}", name)

		consumed := start + closeIdx + len(closeDelim)
		rest = rest[consumed:]
		offset += consumed
	}
}
