package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/chainguard-dev/clog"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// maxTagDepth bounds how many annotated tags are followed when peeling.
const maxTagDepth = 8

// GitRepository is a working copy on local disk.
type GitRepository struct {
	repo *git.Repository
	path string
}

func newStorage(path string) *filesystem.Storage {
	return filesystem.NewStorage(osfs.New(filepath.Join(path, git.GitDirName)), cache.NewObjectLRUDefault())
}

// CloneRepository clones loc.RemoteURL into loc.LocalPath with loc.Branch
// checked out and every tag fetched. If the clone fails and the directory
// did not exist before, it is removed so the next run clones again.
func CloneRepository(ctx context.Context, loc RepositoryLocation) (*GitRepository, error) {
	log := clog.FromContext(ctx)
	log.Infof("Cloning %s into %s", loc.RemoteURL, loc.LocalPath)

	_, statErr := os.Stat(loc.LocalPath)
	created := os.IsNotExist(statErr)

	if err := os.MkdirAll(loc.LocalPath, 0755); err != nil {
		return nil, fmt.Errorf("%w: create directory: %w", ErrSyncFailure, err)
	}

	repo, err := git.CloneContext(ctx, newStorage(loc.LocalPath), osfs.New(loc.LocalPath), &git.CloneOptions{
		URL:           loc.RemoteURL,
		ReferenceName: plumbing.NewBranchReferenceName(loc.Branch),
		Tags:          git.AllTags,
	})
	if err != nil {
		if created {
			if rmErr := os.RemoveAll(loc.LocalPath); rmErr != nil {
				log.With("path", loc.LocalPath).Warnf("Removing partial clone: %v", rmErr)
			}
		}
		return nil, fmt.Errorf("%w: clone %s: %w", ErrSyncFailure, loc.RemoteURL, err)
	}

	return &GitRepository{repo: repo, path: loc.LocalPath}, nil
}

func OpenRepository(path string) (*GitRepository, error) {
	repo, err := git.Open(newStorage(path), osfs.New(path))
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}

	return &GitRepository{repo: repo, path: path}, nil
}

func (r *GitRepository) Path() string {
	return r.path
}

// FetchAll fetches every configured remote in name order and returns the
// names fetched. It stops at the first failure; remotes fetched before it keep
// their updates.
func (r *GitRepository) FetchAll(ctx context.Context) ([]string, error) {
	remotes, err := r.repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("%w: list remotes: %w", ErrSyncFailure, err)
	}

	sort.Slice(remotes, func(i, j int) bool {
		return remotes[i].Config().Name < remotes[j].Config().Name
	})

	fetched := make([]string, 0, len(remotes))
	for _, remote := range remotes {
		name := remote.Config().Name
		clog.FromContext(ctx).With("remote", name).Debug("Fetching remote")

		err := remote.FetchContext(ctx, &git.FetchOptions{
			RemoteName: name,
			Tags:       git.AllTags,
		})
		if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
			return fetched, fmt.Errorf("%w: fetch remote %q: %w", ErrSyncFailure, name, err)
		}
		fetched = append(fetched, name)
	}

	return fetched, nil
}

// Tags lists every tag that resolves to a commit, unsorted.
func (r *GitRepository) Tags(ctx context.Context) ([]Tag, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer iter.Close()

	var tags []Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()

		hash, ok := r.peel(ref.Hash())
		if !ok {
			clog.FromContext(ctx).With("tag", name).Debug("Skipping tag that does not point at a commit")
			return nil
		}

		commit, err := r.repo.CommitObject(hash)
		if err != nil {
			return fmt.Errorf("get commit for tag %s: %w", name, err)
		}

		tags = append(tags, Tag{
			Name:      name,
			Hash:      hash.String(),
			Committed: commit.Committer.When,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tags, nil
}

func (r *GitRepository) Head(ctx context.Context) (*Head, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("get HEAD: %w", err)
	}

	head := &Head{Hash: ref.Hash().String()}
	if ref.Name().IsBranch() {
		head.Name = ref.Name().Short()
	} else {
		head.Detached = true
	}
	return head, nil
}

// CheckoutHash detaches HEAD at hash. Unstaged changes make it fail.
func (r *GitRepository) CheckoutHash(ctx context.Context, hash string) error {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("get worktree: %w", err)
	}

	if err := worktree.Checkout(&git.CheckoutOptions{
		Hash: plumbing.NewHash(hash),
	}); err != nil {
		return fmt.Errorf("checkout %s: %w", hash, err)
	}

	return nil
}

// peel follows annotated tags down to a commit. Lightweight tags point at
// the commit directly.
func (r *GitRepository) peel(hash plumbing.Hash) (plumbing.Hash, bool) {
	if _, err := r.repo.CommitObject(hash); err == nil {
		return hash, true
	}

	cur := hash
	for range maxTagDepth {
		tag, err := r.repo.TagObject(cur)
		if err != nil {
			return plumbing.ZeroHash, false
		}
		switch tag.TargetType {
		case plumbing.CommitObject:
			return tag.Target, true
		case plumbing.TagObject:
			cur = tag.Target
		default:
			return plumbing.ZeroHash, false
		}
	}
	return plumbing.ZeroHash, false
}
