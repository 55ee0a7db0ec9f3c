// Package rewrite replaces every spelling of a template's name with the
// matching spelling of the new project's name, across a whole directory tree.
//
// All spellings are matched in a single pass, so text produced by one
// replacement is never matched again within the same pass. Where several
// spellings match at the same position, the earlier one in the order
// verbatim, camel, pascal, constant, header wins.
//
// Rewriting is idempotent only when no spelling of the project name contains
// a spelling of the template name. Rewriting "app" to "my-app" a second time
// turns "my-app" into "my-my-app".
package rewrite

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shinji-kodama/new-project/internal/casing"
)

// binarySniffLen is how much of a file is inspected for NUL bytes, the same
// heuristic git uses to tell text from binary content.
const binarySniffLen = 8000

// Pair is one literal replacement.
type Pair struct {
	From string
	To   string
}

// Rewriter holds the replacement pairs derived from a template name and a
// project name.
type Rewriter struct {
	pairs []Pair

	// re matches any From, alternatives in pair order.
	re *regexp.Regexp
	to map[string]string
}

// Report summarizes a tree rewrite.
type Report struct {
	Scanned int
	Changed []string // paths relative to the tree root
}

// NewRewriter pairs the casing variants of templateName with those of
// projectName, position by position (verbatim, camel, pascal, constant,
// header).
//
// A pair is dropped when its template spelling is empty, already equals the
// project spelling, or repeats the template spelling of an earlier pair
// ("starter" is both its own verbatim and camel spelling). Variants are
// matched literally.
func NewRewriter(templateName, projectName string) *Rewriter {
	from := casing.Of(templateName).List()
	to := casing.Of(projectName).List()

	r := &Rewriter{to: make(map[string]string)}
	var alternatives []string
	for i := range from {
		if from[i] == "" || from[i] == to[i] {
			continue
		}
		if _, seen := r.to[from[i]]; seen {
			continue
		}
		r.to[from[i]] = to[i]
		r.pairs = append(r.pairs, Pair{From: from[i], To: to[i]})
		alternatives = append(alternatives, regexp.QuoteMeta(from[i]))
	}
	if len(alternatives) > 0 {
		r.re = regexp.MustCompile(strings.Join(alternatives, "|"))
	}
	return r
}

// Pairs returns the active replacement pairs in application order.
func (r *Rewriter) Pairs() []Pair {
	pairs := make([]Pair, len(r.pairs))
	copy(pairs, r.pairs)
	return pairs
}

// Apply replaces every occurrence of a template spelling in content.
func (r *Rewriter) Apply(content []byte) []byte {
	if r.re == nil {
		return content
	}
	return r.re.ReplaceAllFunc(content, func(match []byte) []byte {
		return []byte(r.to[string(match)])
	})
}

// RewriteFile rewrites a single file in place. It reports whether the file
// changed. Binary files are left alone.
func (r *Rewriter) RewriteFile(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if isBinary(content) {
		return false, nil
	}

	updated := r.Apply(content)
	if bytes.Equal(updated, content) {
		return false, nil
	}

	if err := os.WriteFile(path, updated, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}

// RewriteTree rewrites every regular file below root. Symbolic links are not
// followed and the .git directory is never entered. The first read or write
// failure aborts the walk.
func (r *Rewriter) RewriteTree(ctx context.Context, root string) (*Report, error) {
	report := &Report{}
	if len(r.pairs) == 0 {
		return report, nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error walking %s: %w", path, walkErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if d.Name() == ".git" && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		report.Scanned++
		changed, err := r.RewriteFile(path)
		if err != nil {
			return err
		}
		if changed {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			report.Changed = append(report.Changed, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func isBinary(content []byte) bool {
	n := len(content)
	if n > binarySniffLen {
		n = binarySniffLen
	}
	return bytes.IndexByte(content[:n], 0) >= 0
}
