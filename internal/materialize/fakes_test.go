package materialize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shinji-kodama/new-project/internal/npmname"
	"github.com/shinji-kodama/new-project/internal/tools"
	"github.com/shinji-kodama/new-project/internal/upgrade"
)

// recorder collects the side effects of every fake in call order.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recorder) count(event string) int {
	n := 0
	for _, e := range r.list() {
		if e == event {
			n++
		}
	}
	return n
}

type fakeNames struct {
	rec     *recorder
	verdict npmname.Verdict
	err     error
}

func (f *fakeNames) Check(_ context.Context, name string, skip bool) (npmname.Verdict, error) {
	f.rec.add("check %s skip=%t", name, skip)
	return f.verdict, f.err
}

// templateFiles is the tree the fake fetcher materializes.
var templateFiles = map[string]string{
	"package.json": `{"name": "my-template", "version": "1.0.0", "description": "old", "main": "index.js"}`,
	"README.md":    "# my-template\n",
	"index.js":     "module.exports = function myTemplate() {}\n",
}

type fakeFetcher struct {
	rec *recorder

	// skipWrite leaves dest absent.
	skipWrite bool

	// files overrides templateFiles.
	files map[string]string

	err error
}

func (f *fakeFetcher) Fetch(_ context.Context, owner, template, dest string) error {
	f.rec.add("fetch %s/%s", owner, template)
	if !f.skipWrite {
		files := f.files
		if files == nil {
			files = templateFiles
		}
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return err
		}
		for name, content := range files {
			if err := os.WriteFile(filepath.Join(dest, name), []byte(content), 0o644); err != nil {
				return err
			}
		}
	}
	return f.err
}

type fakeVCS struct {
	rec *recorder

	// dirty answers successive IsDirty calls; false once exhausted.
	dirty     []bool
	branch    string
	commitErr error
}

func (f *fakeVCS) Init(_ context.Context, _ string) error {
	f.rec.add("git init")
	return nil
}

func (f *fakeVCS) AddAll(_ context.Context, _ string) error {
	f.rec.add("git add")
	return nil
}

func (f *fakeVCS) Commit(_ context.Context, _ string, message string) error {
	f.rec.add("git commit %s", message)
	return f.commitErr
}

func (f *fakeVCS) IsDirty(_ context.Context, _ string) (bool, error) {
	f.rec.add("git status")
	if len(f.dirty) == 0 {
		return false, nil
	}
	d := f.dirty[0]
	f.dirty = f.dirty[1:]
	return d, nil
}

func (f *fakeVCS) CurrentBranch(_ context.Context, _ string) (string, error) {
	f.rec.add("git branch")
	if f.branch == "" {
		return "main", nil
	}
	return f.branch, nil
}

type fakePackages struct {
	rec *recorder
	err error
}

func (f *fakePackages) Install(_ context.Context, _ string) error {
	f.rec.add("npm install")
	return f.err
}

type fakeUpgrader struct {
	rec *recorder
	fn  func(ctx context.Context, manifestPath string) (*upgrade.Report, error)
}

func (f *fakeUpgrader) Upgrade(ctx context.Context, manifestPath string) (*upgrade.Report, error) {
	f.rec.add("upgrade %s", filepath.Base(manifestPath))
	if f.fn != nil {
		return f.fn(ctx, manifestPath)
	}
	return &upgrade.Report{}, nil
}

type fakeHost struct {
	rec     *recorder
	created []tools.RemoteOptions
	dir     string
}

func (f *fakeHost) CreateRemote(_ context.Context, dir string, opts tools.RemoteOptions) error {
	f.rec.add("hub create")
	f.created = append(f.created, opts)
	f.dir = dir
	return nil
}

func (f *fakeHost) Push(_ context.Context, _ string, branch string) error {
	f.rec.add("hub push %s", branch)
	return nil
}

type fakeEditor struct {
	rec   *recorder
	panic bool
}

func (f *fakeEditor) Open(_ context.Context, dir string) error {
	f.rec.add("editor open %s", filepath.Base(dir))
	if f.panic {
		panic("editor exploded")
	}
	return nil
}

type fakeOpener struct {
	rec  *recorder
	fail bool
}

func (f *fakeOpener) Open(_ context.Context, url string) error {
	f.rec.add("open %s", url)
	if f.fail {
		return errors.New("no browser")
	}
	return nil
}

// fixture wires a Materializer from fakes that all report into one recorder.
type fixture struct {
	rec      *recorder
	names    *fakeNames
	fetcher  *fakeFetcher
	vcs      *fakeVCS
	packages *fakePackages
	upgrader *fakeUpgrader
	host     *fakeHost
	editor   *fakeEditor
	opener   *fakeOpener
}

func newFixture() *fixture {
	rec := &recorder{}
	return &fixture{
		rec:      rec,
		names:    &fakeNames{rec: rec},
		fetcher:  &fakeFetcher{rec: rec},
		vcs:      &fakeVCS{rec: rec, dirty: []bool{true, true}},
		packages: &fakePackages{rec: rec},
		upgrader: &fakeUpgrader{rec: rec},
		host:     &fakeHost{rec: rec},
		editor:   &fakeEditor{rec: rec},
		opener:   &fakeOpener{rec: rec},
	}
}

func (f *fixture) collaborators() Collaborators {
	return Collaborators{
		Names:    f.names,
		Fetcher:  f.fetcher,
		VCS:      f.vcs,
		Packages: f.packages,
		Upgrader: f.upgrader,
		Host:     f.host,
		Editor:   f.editor,
		Opener:   f.opener,
	}
}

func (f *fixture) materializer(opts ...Option) *Materializer {
	return New(f.collaborators(), testTemplates(), opts...)
}

func testTemplates() Templates {
	return Templates{
		Readme:                        "# {{projectName}}\n\nfrom {{owner}}/{{template}}\n",
		Description:                   "{{projectName}} by {{owner}}",
		InitialCommitMessage:          "Initial commit from {{template}}",
		LockfileCreationCommitMessage: "Created lockfile",
		UpgradeCommitMessage:          "Upgraded dependencies",
		Homepage:                      "https://github.com/{{owner}}/{{projectName}}",
		OpenURLs: []string{
			"https://github.com/{{owner}}/{{projectName}}",
			"https://npmjs.com/package/{{projectName}}",
		},
	}
}
