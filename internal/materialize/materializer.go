package materialize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shinji-kodama/new-project/internal/manifest"
	"github.com/shinji-kodama/new-project/internal/model"
	"github.com/shinji-kodama/new-project/internal/output"
	"github.com/shinji-kodama/new-project/internal/rewrite"
	"github.com/shinji-kodama/new-project/internal/tmpl"
	"github.com/shinji-kodama/new-project/internal/tools"
	"github.com/shinji-kodama/new-project/internal/upgrade"
)

// DefaultUpgradeTimeout bounds the upgrade stage unless overridden.
const DefaultUpgradeTimeout = 5 * time.Minute

// Templates holds the configurable texts of a run. Each one is rendered with
// the run's bindings ({{owner}}, {{template}}, {{initialVersion}},
// {{projectName}}).
type Templates struct {
	Readme                        string
	Description                   string
	InitialCommitMessage          string
	LockfileCreationCommitMessage string
	UpgradeCommitMessage          string
	Homepage                      string
	OpenURLs                      []string
}

// Materializer runs the stage pipeline.
type Materializer struct {
	c              Collaborators
	templates      Templates
	upgradeTimeout time.Duration
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithUpgradeTimeout overrides DefaultUpgradeTimeout. Non-positive values are
// ignored.
func WithUpgradeTimeout(d time.Duration) Option {
	return func(m *Materializer) {
		if d > 0 {
			m.upgradeTimeout = d
		}
	}
}

// New creates a Materializer.
func New(c Collaborators, t Templates, opts ...Option) *Materializer {
	m := &Materializer{
		c:              c,
		templates:      t,
		upgradeTimeout: DefaultUpgradeTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// rendered holds the templates resolved for one run.
type rendered struct {
	readme         string
	description    string
	homepage       string
	initialCommit  string
	lockfileCommit string
	upgradeCommit  string
	openURLs       []string
}

// run is the mutable state of one Run call.
type run struct {
	req    model.ProjectRequest
	result *model.ProjectResult
	text   rendered
}

func (r *run) dir() string {
	return r.result.ProjectDir
}

// stage is one step of the pipeline. A non-empty status ends the run with
// that status; an error ends it with unknownError.
type stage struct {
	name string
	fn   func(ctx context.Context, r *run) (model.Status, error)
}

func (m *Materializer) stages() []stage {
	return []stage{
		{"validate", m.validate},
		{"checkTargetAbsent", m.checkTargetAbsent},
		{"renderTemplates", m.renderTemplates},
		{"clone", m.clone},
		{"writeReadme", m.writeReadme},
		{"patchManifest", m.patchManifest},
		{"rewriteIdentifiers", m.rewriteIdentifiers},
		{"initVersionControl", m.initVersionControl},
		{"install", m.install},
		{"commitLockfile", m.commitLockfile},
		{"upgrade", m.upgrade},
		{"reinstall", m.reinstall},
		{"upgradeCommit", m.upgradeCommit},
		{"createRemote", m.createRemote},
		{"pushRemote", m.pushRemote},
		{"openEditor", m.openEditor},
		{"openUrls", m.openURLs},
	}
}

// Run materializes req and returns the outcome. It never panics and never
// returns nil: every failure is reported through the result's status.
func (m *Materializer) Run(ctx context.Context, req model.ProjectRequest) *model.ProjectResult {
	result := &model.ProjectResult{}
	result.SetStatus(model.StatusUnknownError)

	projectsFolder, err := filepath.Abs(req.ProjectsFolder)
	if err != nil {
		output.Error("Could not resolve projects folder", "path", req.ProjectsFolder, "err", err)
		return result
	}
	result.ProjectsFolder = projectsFolder
	result.ProjectDir = filepath.Join(projectsFolder, req.Name)

	output.Info("Project: " + req.Name)
	output.Info("New folder: " + result.ProjectDir)
	if req.Template != "" {
		output.Info("Template: " + req.Template)
	}

	r := &run{req: req, result: result}
	for _, s := range m.stages() {
		if err := ctx.Err(); err != nil {
			output.Error("Run cancelled", "stage", s.name, "err", err)
			return result
		}

		output.Debug("Stage", "name", s.name)
		status, err := runStage(ctx, s, r)
		if err != nil {
			output.Error("Stage failed", "stage", s.name, "err", err)
			result.SetStatus(model.StatusUnknownError)
			return result
		}
		if status != "" {
			result.SetStatus(status)
			return result
		}
	}

	result.SetStatus(model.StatusOK)
	return result
}

// runStage calls s, converting a panic into an error.
func runStage(ctx context.Context, s stage, r *run) (status model.Status, err error) {
	defer func() {
		if p := recover(); p != nil {
			status = ""
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return s.fn(ctx, r)
}

func (m *Materializer) validate(ctx context.Context, r *run) (model.Status, error) {
	verdict, err := m.c.Names.Check(ctx, r.req.Name, r.req.SkipNameCheck)
	if err != nil {
		return "", err
	}
	return verdict.Status(), nil
}

func (m *Materializer) checkTargetAbsent(_ context.Context, r *run) (model.Status, error) {
	_, err := os.Lstat(r.dir())
	if err == nil {
		output.Error(r.dir() + " already exists!")
		return model.StatusDirAlreadyExists, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking %s: %w", r.dir(), err)
	}
	return "", nil
}

// renderTemplates resolves every configured text up front, so a broken
// template fails the run before anything is written to disk.
func (m *Materializer) renderTemplates(_ context.Context, r *run) (model.Status, error) {
	resolver := tmpl.NewResolver(tmpl.Bindings{
		Owner:          r.req.Owner,
		Template:       r.req.Template,
		InitialVersion: r.req.InitialVersion,
		ProjectName:    r.req.Name,
	})

	fields := []struct {
		name string
		text string
		dst  *string
	}{
		{"readme", m.templates.Readme, &r.text.readme},
		{"description", m.templates.Description, &r.text.description},
		{"homepage", m.templates.Homepage, &r.text.homepage},
		{"initialCommitMessage", m.templates.InitialCommitMessage, &r.text.initialCommit},
		{"lockfileCreationCommitMessage", m.templates.LockfileCreationCommitMessage, &r.text.lockfileCommit},
		{"upgradeCommitMessage", m.templates.UpgradeCommitMessage, &r.text.upgradeCommit},
	}
	for _, f := range fields {
		value, err := resolver.Resolve(f.text)
		if err != nil {
			return "", fmt.Errorf("rendering %s: %w", f.name, err)
		}
		*f.dst = value
	}

	urls, err := resolver.ResolveAll(m.templates.OpenURLs)
	if err != nil {
		return "", fmt.Errorf("rendering openUrls: %w", err)
	}
	r.text.openURLs = urls

	// An explicit description wins over the configured template.
	if r.req.Description != "" {
		r.text.description = r.req.Description
	}
	return "", nil
}

func (m *Materializer) clone(ctx context.Context, r *run) (model.Status, error) {
	output.Info("Cloning from " + r.req.CloneID())

	if err := m.c.Fetcher.Fetch(ctx, r.req.Owner, r.req.Template, r.dir()); err != nil {
		output.Error("Fetching template failed", "err", err)
	}

	// The directory on disk decides, not the fetch error.
	if _, err := os.Stat(r.dir()); err != nil {
		output.Error(fmt.Sprintf("Could not clone %s to %s for some reason", r.req.CloneID(), r.dir()))
		return model.StatusCouldNotClone, nil
	}
	r.result.CreatedDir = true
	return "", nil
}

func (m *Materializer) writeReadme(_ context.Context, r *run) (model.Status, error) {
	output.Info("Transforming file contents")

	path, err := findReadme(r.dir())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(r.text.readme), 0o644); err != nil {
		return "", fmt.Errorf("writing readme: %w", err)
	}
	return "", nil
}

// findReadme returns the template's readme.md in whatever case it is
// spelled, or dir/readme.md when there is none.
func findReadme(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.EqualFold(entry.Name(), "readme.md") {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return filepath.Join(dir, "readme.md"), nil
}

func (m *Materializer) patchManifest(_ context.Context, r *run) (model.Status, error) {
	pkg, err := manifest.Load(manifest.PathIn(r.dir()))
	if err != nil {
		return "", err
	}
	if err := pkg.SetDescription(r.text.description); err != nil {
		return "", err
	}
	if err := pkg.SetVersion(r.req.InitialVersion); err != nil {
		return "", err
	}
	return "", pkg.Save()
}

func (m *Materializer) rewriteIdentifiers(ctx context.Context, r *run) (model.Status, error) {
	report, err := rewrite.NewRewriter(r.req.Template, r.req.Name).RewriteTree(ctx, r.dir())
	if err != nil {
		return "", fmt.Errorf("rewriting identifiers: %w", err)
	}
	output.Debug("Rewrote identifiers", "scanned", report.Scanned, "changed", len(report.Changed))
	return "", nil
}

func (m *Materializer) initVersionControl(ctx context.Context, r *run) (model.Status, error) {
	output.Info("Creating git repository")
	if err := m.c.VCS.Init(ctx, r.dir()); err != nil {
		return "", err
	}
	return "", m.commitAll(ctx, r, r.text.initialCommit)
}

func (m *Materializer) install(ctx context.Context, r *run) (model.Status, error) {
	output.Info("Installing dependencies")
	return "", m.runInstall(ctx, r, "Installing dependencies")
}

// commitLockfile records what the first install produced. A template that
// already ships an up-to-date lockfile leaves nothing to commit.
func (m *Materializer) commitLockfile(ctx context.Context, r *run) (model.Status, error) {
	return "", m.commitIfDirty(ctx, r, r.text.lockfileCommit)
}

func (m *Materializer) upgrade(ctx context.Context, r *run) (model.Status, error) {
	output.Info("Upgrading dependencies")

	ctx, cancel := context.WithTimeout(ctx, m.upgradeTimeout)
	defer cancel()

	var report *upgrade.Report
	err := output.RunWithSpinner(ctx, func() error {
		var err error
		report, err = m.c.Upgrader.Upgrade(ctx, manifest.PathIn(r.dir()))
		return err
	}, output.WithTitle("Upgrading dependencies"))
	if err != nil {
		return "", fmt.Errorf("upgrading dependencies: %w", err)
	}
	if report != nil {
		for _, c := range report.Changes {
			output.Debug("Upgraded", "package", c.Name, "from", c.From, "to", c.To)
		}
		output.Info("Upgraded dependencies", "changed", len(report.Changes), "skipped", len(report.Skipped))
	}
	return "", nil
}

func (m *Materializer) reinstall(ctx context.Context, r *run) (model.Status, error) {
	output.Info("Installing dependencies again")
	return "", m.runInstall(ctx, r, "Installing upgraded dependencies")
}

func (m *Materializer) upgradeCommit(ctx context.Context, r *run) (model.Status, error) {
	return "", m.commitIfDirty(ctx, r, r.text.upgradeCommit)
}

func (m *Materializer) createRemote(ctx context.Context, r *run) (model.Status, error) {
	output.Info("Creating remote repository", "homepage", r.text.homepage)
	return "", m.c.Host.CreateRemote(ctx, r.dir(), tools.RemoteOptions{
		Private:     r.req.PrivateRepo,
		Description: r.text.description,
		Homepage:    r.text.homepage,
	})
}

func (m *Materializer) pushRemote(ctx context.Context, r *run) (model.Status, error) {
	branch, err := m.c.VCS.CurrentBranch(ctx, r.dir())
	if err != nil {
		return "", err
	}
	output.Info("Pushing", "branch", branch)
	return "", m.c.Host.Push(ctx, r.dir(), branch)
}

func (m *Materializer) openEditor(ctx context.Context, r *run) (model.Status, error) {
	return "", m.c.Editor.Open(ctx, r.dir())
}

// openURLs is best effort: a URL that cannot be opened is only a warning.
func (m *Materializer) openURLs(ctx context.Context, r *run) (model.Status, error) {
	for _, url := range r.text.openURLs {
		if err := m.c.Opener.Open(ctx, url); err != nil {
			output.Warn("Could not open URL", "url", url, "err", err)
		}
	}
	return "", nil
}

func (m *Materializer) runInstall(ctx context.Context, r *run, title string) error {
	return output.RunWithSpinner(ctx, func() error {
		return m.c.Packages.Install(ctx, r.dir())
	}, output.WithTitle(title))
}

func (m *Materializer) commitAll(ctx context.Context, r *run, message string) error {
	if err := m.c.VCS.AddAll(ctx, r.dir()); err != nil {
		return err
	}
	output.Info("Commit: " + firstLine(message))
	return m.c.VCS.Commit(ctx, r.dir(), message)
}

func (m *Materializer) commitIfDirty(ctx context.Context, r *run, message string) error {
	dirty, err := m.c.VCS.IsDirty(ctx, r.dir())
	if err != nil {
		return err
	}
	if !dirty {
		output.Debug("Nothing to commit", "message", firstLine(message))
		return nil
	}
	return m.commitAll(ctx, r, message)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
