// Package npmname decides whether a project name can be published to npm.
//
// The naming rules mirror the registry's own (the validate-npm-package-name
// rules npm applies on publish): hard errors for names that can never be
// published and warnings for names that were accepted historically but are
// rejected for new packages. A new project must be free of both.
//
// After the rules pass, the Validator asks the registry whether the name is
// already taken.
package npmname
