// Package registry is a minimal client for the public npm registry.
//
// Only two questions are ever asked of the registry: does a package with a
// given name exist, and what is its latest published version. Both are
// answered from the abbreviated package document ("corgi" format), which is
// the same document npm itself fetches during install.
package registry
