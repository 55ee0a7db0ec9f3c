// Package vcs provides the Git operations the materialization pipeline
// needs: fetching a template repository, initializing a fresh history,
// staging, committing and checking for uncommitted changes.
//
// All Git operations are performed via os/exec calls to the git binary,
// rather than using a Git library like go-git. This approach:
//   - Avoids CGO dependencies (libgit2)
//   - Uses the exact same Git behavior the user sees in their terminal,
//     including their identity and commit signing configuration
//
// Templates are fetched with a shallow clone whose .git directory is removed
// afterwards, so the new project starts with its own history.
package vcs
