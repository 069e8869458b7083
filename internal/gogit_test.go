package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneRepositoryChecksOutDefaultBranch(t *testing.T) {
	upstream := newFixtureRepo(t)
	head := upstream.commit(daysAgo(100))
	upstream.lightweightTag("ns-3.40", head)

	loc := testLocation(t, upstream.dir)
	repo, err := CloneRepository(context.Background(), loc)
	require.NoError(t, err)

	got, err := repo.Head(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "master", got.Name)
	assert.False(t, got.Detached)
	assert.Equal(t, head.String(), got.Hash)

	_, err = os.Stat(filepath.Join(loc.LocalPath, "file-1.txt"))
	assert.NoError(t, err)
}

func TestCloneRepositoryBadRemote(t *testing.T) {
	loc := testLocation(t, filepath.Join(t.TempDir(), "missing"))

	_, err := CloneRepository(context.Background(), loc)
	assert.ErrorIs(t, err, ErrSyncFailure)

	_, statErr := os.Stat(loc.LocalPath)
	assert.True(t, os.IsNotExist(statErr), "partial clone left at %s", loc.LocalPath)
}

func TestCloneRepositoryKeepsExistingDirectoryOnFailure(t *testing.T) {
	loc := testLocation(t, filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, os.MkdirAll(loc.LocalPath, 0755))

	_, err := CloneRepository(context.Background(), loc)
	assert.ErrorIs(t, err, ErrSyncFailure)

	_, statErr := os.Stat(loc.LocalPath)
	assert.NoError(t, statErr)
}

func TestOpenRepositoryNotARepo(t *testing.T) {
	_, err := OpenRepository(t.TempDir())
	assert.Error(t, err)
}

func TestTagsPeelsAnnotatedTags(t *testing.T) {
	upstream := newFixtureRepo(t)
	first := upstream.commit(daysAgo(300))
	second := upstream.commit(daysAgo(20))
	upstream.lightweightTag("ns-3.41", first)
	upstream.annotatedTag("ns-3.42", second)

	repo, err := CloneRepository(context.Background(), testLocation(t, upstream.dir))
	require.NoError(t, err)

	tags, err := repo.Tags(context.Background())
	require.NoError(t, err)
	SortTags(tags)

	want := []Tag{
		{Name: "ns-3.42", Hash: second.String(), Committed: daysAgo(20)},
		{Name: "ns-3.41", Hash: first.String(), Committed: daysAgo(300)},
	}
	// The annotated tag's tagger date is a year ahead; the commit date wins.
	if diff := cmp.Diff(want, tags, cmp.Comparer(func(a, b Tag) bool {
		return a.Name == b.Name && a.Hash == b.Hash && a.Committed.Equal(b.Committed)
	})); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestTagsEmpty(t *testing.T) {
	upstream := newFixtureRepo(t)
	upstream.commit(daysAgo(1))

	repo, err := CloneRepository(context.Background(), testLocation(t, upstream.dir))
	require.NoError(t, err)

	tags, err := repo.Tags(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestFetchAllFetchesEveryRemote(t *testing.T) {
	ctx := context.Background()

	origin := newFixtureRepo(t)
	origin.lightweightTag("origin-old", origin.commit(daysAgo(400)))

	upstream := newFixtureRepo(t)
	upstream.lightweightTag("upstream-new", upstream.commit(daysAgo(2)))

	loc := testLocation(t, origin.dir)
	_, err := CloneRepository(ctx, loc)
	require.NoError(t, err)
	addRemote(t, loc.LocalPath, "upstream", upstream.dir)

	// New tag on origin after the clone.
	origin.lightweightTag("origin-later", origin.commit(daysAgo(100)))

	repo, err := OpenRepository(loc.LocalPath)
	require.NoError(t, err)

	fetched, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"origin", "upstream"}, fetched)

	tags, err := repo.Tags(ctx)
	require.NoError(t, err)
	var names []string
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	assert.ElementsMatch(t, []string{"origin-old", "origin-later", "upstream-new"}, names)
}

func TestFetchAllAlreadyUpToDate(t *testing.T) {
	ctx := context.Background()
	origin := newFixtureRepo(t)
	origin.lightweightTag("v1", origin.commit(daysAgo(1)))

	loc := testLocation(t, origin.dir)
	repo, err := CloneRepository(ctx, loc)
	require.NoError(t, err)

	fetched, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"origin"}, fetched)
}

func TestFetchAllFailingRemote(t *testing.T) {
	ctx := context.Background()
	origin := newFixtureRepo(t)
	origin.commit(daysAgo(1))

	loc := testLocation(t, origin.dir)
	repo, err := CloneRepository(ctx, loc)
	require.NoError(t, err)
	addRemote(t, loc.LocalPath, "broken", filepath.Join(t.TempDir(), "gone"))

	fetched, err := repo.FetchAll(ctx)
	assert.True(t, errors.Is(err, ErrSyncFailure), "got %v", err)
	assert.Contains(t, err.Error(), `"broken"`)
	assert.Empty(t, fetched, "broken sorts before origin")
}

func addRemote(t *testing.T, path, name, url string) {
	t.Helper()
	repo, err := git.PlainOpen(path)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}})
	require.NoError(t, err)
}
