package upgrade

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"

	"github.com/shinji-kodama/new-project/internal/manifest"
	"github.com/shinji-kodama/new-project/internal/output"
	"github.com/shinji-kodama/new-project/internal/registry"
)

// maxConcurrentLookups bounds parallel registry requests.
const maxConcurrentLookups = 8

// VersionSource resolves the latest published version of a package.
// *registry.Client satisfies it.
type VersionSource interface {
	LatestVersion(ctx context.Context, name string) (string, error)
}

// Change records one upgraded range.
type Change struct {
	Section manifest.Section
	Name    string
	From    string
	To      string
}

// Report summarizes an upgrade run.
type Report struct {
	Changes []Change
	// Skipped lists dependencies whose range could not be upgraded, either
	// because it is not a plain version range or the registry does not know
	// the package.
	Skipped []string
}

// Upgrader rewrites dependency ranges using a VersionSource.
type Upgrader struct {
	source VersionSource
}

// NewUpgrader creates an Upgrader.
func NewUpgrader(source VersionSource) *Upgrader {
	return &Upgrader{source: source}
}

// pending is a dependency waiting for its registry lookup.
type pending struct {
	section manifest.Section
	dep     manifest.Dependency
	rng     versionRange
	latest  string
	missing bool
}

// Upgrade loads the manifest at manifestPath, looks up every upgradable
// dependency and writes the file back if any range changed.
//
// Lookups honor ctx; a cancelled or expired context aborts the run without
// modifying the file.
func (u *Upgrader) Upgrade(ctx context.Context, manifestPath string) (*Report, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	var work []*pending
	for _, section := range manifest.UpgradableSections {
		deps, err := m.Dependencies(section)
		if err != nil {
			return nil, err
		}
		for _, dep := range deps {
			rng, ok := parseRange(dep.Spec)
			if !ok {
				output.Debug("Skipping non-version range", "package", dep.Name, "range", dep.Spec)
				report.Skipped = append(report.Skipped, dep.Name)
				continue
			}
			work = append(work, &pending{section: section, dep: dep, rng: rng})
		}
	}

	if err := u.lookup(ctx, work); err != nil {
		return nil, err
	}

	for _, p := range work {
		if p.missing {
			output.Warn("Package not found in registry", "package", p.dep.Name)
			report.Skipped = append(report.Skipped, p.dep.Name)
			continue
		}

		latest, err := semver.NewVersion(p.latest)
		if err != nil {
			output.Warn("Registry returned an invalid version", "package", p.dep.Name, "version", p.latest)
			report.Skipped = append(report.Skipped, p.dep.Name)
			continue
		}
		if !latest.GreaterThan(p.rng.version) {
			continue
		}

		to := p.rng.operator + latest.Original()
		if err := m.SetDependency(p.section, p.dep.Name, to); err != nil {
			return nil, err
		}
		report.Changes = append(report.Changes, Change{
			Section: p.section,
			Name:    p.dep.Name,
			From:    p.dep.Spec,
			To:      to,
		})
	}

	if len(report.Changes) > 0 {
		if err := m.Save(); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// lookup fills in the latest version of every pending dependency.
func (u *Upgrader) lookup(ctx context.Context, work []*pending) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for _, p := range work {
		g.Go(func() error {
			latest, err := u.source.LatestVersion(ctx, p.dep.Name)
			if errors.Is(err, registry.ErrNotFound) {
				p.missing = true
				return nil
			}
			if err != nil {
				return fmt.Errorf("looking up %s: %w", p.dep.Name, err)
			}
			p.latest = latest
			return nil
		})
	}
	return g.Wait()
}

// versionRange is a parsed plain range such as "^1.2.3".
type versionRange struct {
	operator string
	version  *semver.Version
}

// parseRange accepts an exact version optionally prefixed by ^ or ~.
func parseRange(spec string) (versionRange, bool) {
	spec = strings.TrimSpace(spec)

	operator := ""
	if strings.HasPrefix(spec, "^") || strings.HasPrefix(spec, "~") {
		operator = spec[:1]
		spec = spec[1:]
	}

	v, err := semver.StrictNewVersion(spec)
	if err != nil {
		return versionRange{}, false
	}
	return versionRange{operator: operator, version: v}, true
}
