package npmname

import (
	"regexp"
	"strings"
)

// maxLength is the longest name the registry accepts for new packages.
const maxLength = 214

// blockedNames can never be published.
var blockedNames = []string{"node_modules", "favicon.ico"}

// coreModules are Node.js built-in module names. Publishing under one of
// them is a warning: require() would never resolve to the package.
var coreModules = []string{
	"assert", "async_hooks", "buffer", "child_process", "cluster", "console",
	"constants", "crypto", "dgram", "diagnostics_channel", "dns", "domain",
	"events", "fs", "http", "http2", "https", "inspector", "module", "net",
	"os", "path", "perf_hooks", "process", "punycode", "querystring",
	"readline", "repl", "stream", "string_decoder", "sys", "timers", "tls",
	"trace_events", "tty", "url", "util", "v8", "vm", "wasi",
	"worker_threads", "zlib",
}

// specialChars may not appear in the unscoped part of a new name.
var specialChars = regexp.MustCompile(`[~'!()*]`)

// scopedName splits "@scope/name" into its parts.
var scopedName = regexp.MustCompile(`^(?:@([^/]+?)[/])?([^/]+?)$`)

// Result is the outcome of checking a name against the naming rules.
type Result struct {
	// Errors are violations that make the name unpublishable.
	Errors []string

	// Warnings are violations that only legacy packages may have.
	Warnings []string
}

// ValidForNewPackages reports whether a new package may use the name.
func (r Result) ValidForNewPackages() bool {
	return len(r.Errors) == 0 && len(r.Warnings) == 0
}

// ValidForOldPackages reports whether the name is acceptable at all.
func (r Result) ValidForOldPackages() bool {
	return len(r.Errors) == 0
}

// Problems returns warnings followed by errors.
func (r Result) Problems() []string {
	problems := make([]string, 0, len(r.Warnings)+len(r.Errors))
	problems = append(problems, r.Warnings...)
	problems = append(problems, r.Errors...)
	return problems
}

// Validate checks name against the npm naming rules. Every rule is evaluated
// so that the caller can report all problems at once.
func Validate(name string) Result {
	var r Result

	if len(name) == 0 {
		r.Errors = append(r.Errors, "name length must be greater than zero")
	}
	if strings.HasPrefix(name, ".") {
		r.Errors = append(r.Errors, "name cannot start with a period")
	}
	if strings.HasPrefix(name, "_") {
		r.Errors = append(r.Errors, "name cannot start with an underscore")
	}
	if strings.TrimSpace(name) != name {
		r.Errors = append(r.Errors, "name cannot contain leading or trailing spaces")
	}

	lowered := strings.ToLower(name)
	for _, blocked := range blockedNames {
		if lowered == blocked {
			r.Errors = append(r.Errors, blocked+" is a blacklisted name")
		}
	}
	for _, core := range coreModules {
		if lowered == core {
			r.Warnings = append(r.Warnings, core+" is a core module name")
		}
	}

	if len(name) > maxLength {
		r.Warnings = append(r.Warnings, "name can no longer contain more than 214 characters")
	}
	if lowered != name {
		r.Warnings = append(r.Warnings, "name can no longer contain capital letters")
	}

	segments := strings.Split(name, "/")
	if specialChars.MatchString(segments[len(segments)-1]) {
		r.Warnings = append(r.Warnings, `name can no longer contain special characters ("~'!()*")`)
	}

	if !uriComponentSafe(name) && !scopedPartsSafe(name) {
		r.Errors = append(r.Errors, "name can only contain URL-friendly characters")
	}

	return r
}

// scopedPartsSafe accepts "@scope/name" when both parts are URL-safe on
// their own; the "@" and "/" separators are the only exemption.
func scopedPartsSafe(name string) bool {
	m := scopedName.FindStringSubmatch(name)
	if m == nil || m[1] == "" {
		return false
	}
	return uriComponentSafe(m[1]) && uriComponentSafe(m[2])
}

// uriComponentSafe reports whether s survives URI component encoding
// unchanged, i.e. contains only A-Z a-z 0-9 and - _ . ! ~ * ' ( ).
func uriComponentSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.IndexByte("-_.!~*'()", c) >= 0:
		default:
			return false
		}
	}
	return true
}
