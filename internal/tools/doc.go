// Package tools wraps the outward-facing programs the pipeline drives once a
// project is materialized locally: the hub CLI (remote repository creation
// and push), the code editor and the system URL opener.
//
// Every collaborator comes in two flavors. The real one executes the program;
// the Dry one prints the exact command line it would have run, prefixed with
// "[Dry]", and succeeds. The choice is made once when the pipeline is wired,
// so stages never branch on dry-run themselves.
package tools
