package npmname

import (
	"context"
	"fmt"
	"strings"

	"github.com/shinji-kodama/new-project/internal/model"
	"github.com/shinji-kodama/new-project/internal/output"
)

// Verdict is the outcome of Validator.Check.
type Verdict int

const (
	// Pass means the name may be used.
	Pass Verdict = iota

	// EmptyName means the name was empty or whitespace only.
	EmptyName

	// InvalidName means the npm naming rules produced warnings or errors.
	InvalidName

	// AlreadyExists means the registry already has a package of that name.
	AlreadyExists
)

// String returns a short label for logs.
func (v Verdict) String() string {
	switch v {
	case Pass:
		return "pass"
	case EmptyName:
		return "emptyName"
	case InvalidName:
		return "invalidNpmName"
	case AlreadyExists:
		return "alreadyExistsOnNpm"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Status maps the verdict to the pipeline status it terminates with.
// Pass has no terminal status and maps to "".
func (v Verdict) Status() model.Status {
	switch v {
	case EmptyName:
		return model.StatusEmptyName
	case InvalidName:
		return model.StatusInvalidNpmName
	case AlreadyExists:
		return model.StatusAlreadyExistsOnNpm
	default:
		return ""
	}
}

// Lookup answers whether a package name is already published.
// *registry.Client satisfies it.
type Lookup interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// Validator runs the naming rules and the registry lookup.
type Validator struct {
	// Rules evaluates the naming rules. Defaults to Validate.
	Rules func(name string) Result

	// Lookup queries the registry.
	Lookup Lookup
}

// NewValidator returns a Validator using the standard naming rules.
func NewValidator(lookup Lookup) *Validator {
	return &Validator{Rules: Validate, Lookup: lookup}
}

// Check decides whether name can be used for a new project.
//
// Order of checks:
//  1. blank name -> EmptyName (never skipped)
//  2. skip set -> Pass, without evaluating rules or contacting the registry
//  3. naming rules -> InvalidName, every problem logged at error level
//  4. registry lookup -> AlreadyExists
//
// A failed registry lookup is returned as an error.
func (v *Validator) Check(ctx context.Context, name string, skip bool) (Verdict, error) {
	if strings.TrimSpace(name) == "" {
		output.Warn("Given project name is empty")
		return EmptyName, nil
	}

	if skip {
		output.Debug("Skipping npm name check", "name", name)
		return Pass, nil
	}

	rules := v.Rules
	if rules == nil {
		rules = Validate
	}
	if problems := rules(name).Problems(); len(problems) > 0 {
		output.Error("Invalid npm package name", "name", name)
		for _, problem := range problems {
			output.Error(problem)
		}
		return InvalidName, nil
	}

	if v.Lookup == nil {
		return Pass, fmt.Errorf("no registry lookup configured")
	}
	exists, err := v.Lookup.Exists(ctx, name)
	if err != nil {
		return Pass, fmt.Errorf("checking registry for %s: %w", name, err)
	}
	if exists {
		output.Error("Already exists: https://yarnpkg.com/package/" + name)
		return AlreadyExists, nil
	}

	return Pass, nil
}
