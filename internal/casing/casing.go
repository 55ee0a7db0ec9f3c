// Package casing derives the identifier spellings that a template name (and
// a project name) can appear as inside source files.
//
// Word splitting follows the conventions of the JavaScript change-case family,
// since template repositories are npm projects whose identifiers were written
// with those conventions in mind:
//   - a lowercase letter or digit followed by an uppercase letter starts a new
//     word ("myTemplate" -> "my", "template")
//   - an uppercase run followed by a capitalized word is split before the last
//     capital ("HTTPServer" -> "http", "server")
//   - every run of characters that is neither a letter nor a digit is a
//     delimiter ("my-template", "my_template", "my template")
package casing

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// lowerUpper and acronymWord mark word boundaries with a NUL separator.
	lowerUpper  = regexp.MustCompile(`([\p{Ll}\p{N}])(\p{Lu})`)
	acronymWord = regexp.MustCompile(`(\p{Lu})(\p{Lu}\p{Ll})`)

	// delimiters matches everything that cannot be part of a word.
	delimiters = regexp.MustCompile(`[^\p{L}\p{N}]+`)

	lower = cases.Lower(language.Und)
	upper = cases.Upper(language.Und)
)

// Variants is the ordered set of spellings of one name. The order is
// significant: rewriting pairs the template's variants with the project's
// variants position by position.
type Variants struct {
	Verbatim string
	Camel    string
	Pascal   string
	Constant string
	Header   string
}

// Of computes the variant set of s.
//
//	Of("my-template") == Variants{"my-template", "myTemplate", "MyTemplate", "MY_TEMPLATE", "My-Template"}
func Of(s string) Variants {
	return Variants{
		Verbatim: s,
		Camel:    Camel(s),
		Pascal:   Pascal(s),
		Constant: Constant(s),
		Header:   Header(s),
	}
}

// List returns the variants in rewrite order:
// verbatim, camel, pascal, constant, header.
func (v Variants) List() []string {
	return []string{v.Verbatim, v.Camel, v.Pascal, v.Constant, v.Header}
}

// Words splits s into lowercase words. It returns nil when s contains no
// letters or digits.
func Words(s string) []string {
	s = lowerUpper.ReplaceAllString(s, "${1}\x00${2}")
	s = acronymWord.ReplaceAllString(s, "${1}\x00${2}")
	s = delimiters.ReplaceAllString(s, "\x00")
	s = strings.Trim(s, "\x00")
	if s == "" {
		return nil
	}

	words := strings.Split(s, "\x00")
	for i, w := range words {
		words[i] = lower.String(w)
	}
	return words
}

// Camel returns the camelCase spelling ("myTemplate").
func Camel(s string) string {
	words := Words(s)
	for i, w := range words {
		if i == 0 {
			continue
		}
		words[i] = pascalWord(w, i)
	}
	return strings.Join(words, "")
}

// Pascal returns the PascalCase spelling ("MyTemplate").
func Pascal(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = pascalWord(w, i)
	}
	return strings.Join(words, "")
}

// Constant returns the CONSTANT_CASE spelling ("MY_TEMPLATE").
func Constant(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = upper.String(w)
	}
	return strings.Join(words, "_")
}

// Header returns the Header-Case spelling ("My-Template").
func Header(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, "-")
}

// pascalWord capitalizes a word for camel and pascal joins. A word after the
// first that starts with a digit gets an underscore so that "v-2" does not
// collapse into the ambiguous "V2".
func pascalWord(w string, index int) string {
	r, _ := utf8.DecodeRuneInString(w)
	if index > 0 && unicode.IsDigit(r) {
		return "_" + w
	}
	return capitalize(w)
}

// capitalize upper-cases the first rune of an already lowercase word.
func capitalize(w string) string {
	if w == "" {
		return w
	}
	_, size := utf8.DecodeRuneInString(w)
	return upper.String(w[:size]) + w[size:]
}
