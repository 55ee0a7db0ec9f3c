// Package materialize turns a template repository into a new, published
// project.
//
// A run is a fixed sequence of stages (validate the name, clone, patch,
// rewrite identifiers, create history, install, upgrade, publish, open).
// Each stage either lets the run continue, ends it with a named status such
// as dirAlreadyExists, or fails with an error, which ends the run with
// unknownError. Nothing a stage does is rolled back: a failed run leaves the
// project directory as far as it got, and the caller decides whether to
// remove it (see Cleanup).
//
// Every external effect goes through a collaborator interface, so the
// pipeline can be exercised with fakes and the dry-run mode is nothing more
// than a different set of collaborators.
package materialize
