package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// fixedNow is the clock used by every test that depends on tag age.
var fixedNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// fixtureRepo is an upstream repository built in a temp dir.
type fixtureRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	wt   *git.Worktree
	n    int
}

func newFixtureRepo(t *testing.T) *fixtureRepo {
	t.Helper()
	return newFixtureRepoAt(t, t.TempDir())
}

// newFixtureRepoAt initializes the upstream at dir, creating it if needed.
func newFixtureRepoAt(t *testing.T, dir string) *fixtureRepo {
	t.Helper()

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	if err := repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName("master"))); err != nil {
		t.Fatalf("SetReference: %v", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}

	return &fixtureRepo{t: t, dir: dir, repo: repo, wt: wt}
}

func signature(when time.Time) *object.Signature {
	return &object.Signature{Name: "Test", Email: "test@example.com", When: when}
}

// commit adds a new file and commits it with both author and committer
// time set to when.
func (f *fixtureRepo) commit(when time.Time) plumbing.Hash {
	f.t.Helper()
	f.n++

	name := fmt.Sprintf("file-%d.txt", f.n)
	if err := os.WriteFile(filepath.Join(f.dir, name), []byte(name), 0o644); err != nil {
		f.t.Fatalf("WriteFile: %v", err)
	}
	if _, err := f.wt.Add(name); err != nil {
		f.t.Fatalf("Add: %v", err)
	}

	hash, err := f.wt.Commit(name, &git.CommitOptions{
		Author:    signature(when),
		Committer: signature(when),
	})
	if err != nil {
		f.t.Fatalf("Commit: %v", err)
	}
	return hash
}

func (f *fixtureRepo) lightweightTag(name string, hash plumbing.Hash) {
	f.t.Helper()
	if _, err := f.repo.CreateTag(name, hash, nil); err != nil {
		f.t.Fatalf("CreateTag %s: %v", name, err)
	}
}

// annotatedTag tags hash with a tagger time that differs from the commit
// time, so tests can tell which timestamp was used.
func (f *fixtureRepo) annotatedTag(name string, hash plumbing.Hash) {
	f.t.Helper()
	if _, err := f.repo.CreateTag(name, hash, &git.CreateTagOptions{
		Tagger:  signature(fixedNow.Add(365 * day)),
		Message: "release " + name,
	}); err != nil {
		f.t.Fatalf("CreateTag %s: %v", name, err)
	}
}

func daysAgo(days int) time.Time {
	return fixedNow.Add(-time.Duration(days) * day)
}

func availableChecker() *DependencyChecker {
	return &DependencyChecker{
		LookPath:  func(string) (string, error) { return "/usr/bin/git", nil },
		BuildInfo: func() (*debug.BuildInfo, bool) { return nil, false },
	}
}

func testLocation(t *testing.T, remote string) RepositoryLocation {
	t.Helper()
	return RepositoryLocation{
		RemoteURL: remote,
		LocalPath: filepath.Join(t.TempDir(), "ns-3-dev"),
		Branch:    "master",
	}
}
