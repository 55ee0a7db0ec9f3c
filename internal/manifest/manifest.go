package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// FileName is the manifest file name inside a project directory.
const FileName = "package.json"

// defaultIndent is used when the document has no indented line to copy.
const defaultIndent = "  "

// Section names a dependency map inside package.json.
type Section string

const (
	Dependencies         Section = "dependencies"
	DevDependencies      Section = "devDependencies"
	OptionalDependencies Section = "optionalDependencies"
	PeerDependencies     Section = "peerDependencies"
)

// UpgradableSections lists the sections whose ranges are bumped during a
// dependency upgrade. Peer ranges describe compatibility with the host
// package and are left alone.
var UpgradableSections = []Section{Dependencies, DevDependencies, OptionalDependencies}

// ErrNotFound is returned by Load when the manifest file does not exist.
var ErrNotFound = errors.New("package.json not found")

// Dependency is one entry of a dependency section.
type Dependency struct {
	Name string
	Spec string
}

// Manifest is a loaded package.json.
type Manifest struct {
	path string
	mode fs.FileMode

	// data is plain JSON in the layout of the original file.
	data   []byte
	indent string

	// reflow is set when the layout can no longer be kept as is: comments
	// or trailing commas were stripped, or a key was added.
	reflow bool
}

// PathIn returns the manifest path of the project in dir.
func PathIn(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads a package.json file, strips JSONC comments, validates it against
// the embedded schema and parses it.
//
// Returns an error wrapping ErrNotFound if the file does not exist, and a
// *SchemaError if the document has the wrong shape.
func Load(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			schemaErr.Path = path
			return nil, schemaErr
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	m.path = path
	m.mode = info.Mode().Perm()
	return m, nil
}

// Parse parses manifest content that may contain JSONC comments.
func Parse(data []byte) (*Manifest, error) {
	clean := jsonc.ToJSON(data)

	if err := Validate(clean); err != nil {
		return nil, err
	}

	return &Manifest{
		mode:   0o644,
		data:   clean,
		indent: detectIndent(clean),
		reflow: !bytes.Equal(clean, data),
	}, nil
}

// detectIndent returns the leading whitespace of the first indented,
// non-blank line.
func detectIndent(data []byte) string {
	for _, line := range bytes.Split(data, []byte("\n"))[1:] {
		trimmed := bytes.TrimLeft(line, " \t")
		if len(bytes.TrimSpace(trimmed)) == 0 || len(trimmed) == len(line) {
			continue
		}
		return string(line[:len(line)-len(trimmed)])
	}
	return defaultIndent
}

// Path returns the file the manifest was loaded from.
func (m *Manifest) Path() string {
	return m.path
}

// Keys returns the top-level keys in document order.
func (m *Manifest) Keys() []string {
	var keys []string
	gjson.ParseBytes(m.data).ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys
}

// Name returns the package name, or "" when unset.
func (m *Manifest) Name() string {
	return gjson.GetBytes(m.data, "name").String()
}

// Version returns the package version, or "" when unset.
func (m *Manifest) Version() string {
	return gjson.GetBytes(m.data, "version").String()
}

// Description returns the package description, or "" when unset.
func (m *Manifest) Description() string {
	return gjson.GetBytes(m.data, "description").String()
}

// SetDescription replaces the description field.
func (m *Manifest) SetDescription(description string) error {
	return m.setString(escapePath("description"), description)
}

// SetVersion replaces the version field.
func (m *Manifest) SetVersion(version string) error {
	return m.setString(escapePath("version"), version)
}

// Dependencies returns the entries of a dependency section in document
// order. A missing section yields no entries.
func (m *Manifest) Dependencies(section Section) ([]Dependency, error) {
	deps := gjson.GetBytes(m.data, escapePath(string(section)))
	if !deps.Exists() {
		return nil, nil
	}
	if !deps.IsObject() {
		return nil, fmt.Errorf("%s is not an object", section)
	}

	var result []Dependency
	deps.ForEach(func(name, spec gjson.Result) bool {
		result = append(result, Dependency{Name: name.String(), Spec: spec.String()})
		return true
	})
	return result, nil
}

// SetDependency updates the range of an existing dependency, or appends it to
// the section (creating the section if needed).
func (m *Manifest) SetDependency(section Section, name, spec string) error {
	return m.setString(escapePath(string(section))+"."+escapePath(name), spec)
}

// setString writes value at path. Replacing an existing value keeps the
// surrounding layout; adding a key marks the document for re-indentation.
func (m *Manifest) setString(path, value string) error {
	raw, err := encodeString(value)
	if err != nil {
		return err
	}

	existed := gjson.GetBytes(m.data, path).Exists()
	data, err := sjson.SetRawBytes(m.data, path, raw)
	if err != nil {
		return fmt.Errorf("setting %s: %w", path, err)
	}
	m.data = data
	if !existed {
		m.reflow = true
	}
	return nil
}

// encodeString quotes s as a JSON string without HTML escaping.
func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// pathSpecials are the characters with a meaning in gjson/sjson paths.
const pathSpecials = `\.*?|#@!:=<>%`

// escapePath makes a key usable as a single gjson/sjson path component.
// Package names such as "@types/node" or "lodash.merge" contain characters
// that would otherwise be read as path syntax.
func escapePath(key string) string {
	if !strings.ContainsAny(key, pathSpecials) {
		return key
	}
	var b strings.Builder
	for _, r := range key {
		if strings.ContainsRune(pathSpecials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Encode returns the manifest document. An unchanged layout is returned as
// is; otherwise the document is re-indented with the indentation the file
// already used. Comments from the original file are not preserved.
func (m *Manifest) Encode() []byte {
	if !m.reflow {
		return bytes.Clone(m.data)
	}
	return pretty.PrettyOptions(m.data, &pretty.Options{Indent: m.indent})
}

// Save writes the manifest back to the file it was loaded from, keeping the
// file's permissions.
func (m *Manifest) Save() error {
	if m.path == "" {
		return errors.New("manifest has no file path")
	}
	return m.SaveAs(m.path)
}

// SaveAs writes the manifest to path.
func (m *Manifest) SaveAs(path string) error {
	if err := os.WriteFile(path, m.Encode(), m.mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
