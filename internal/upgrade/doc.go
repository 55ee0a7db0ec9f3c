// Package upgrade bumps the dependency ranges of a package.json to the
// latest published versions, the way `npm-check-updates -u` does.
//
// Only plain ranges are touched: "1.2.3", "^1.2.3" and "~1.2.3". Git URLs,
// file paths, tags such as "latest", workspace references and compound ranges
// are left as they are. The range operator is kept, so "^1.2.3" becomes
// "^2.0.0" rather than "2.0.0". Versions are never downgraded.
package upgrade
