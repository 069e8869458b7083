package v1

import (
	"time"

	"github.com/4thel00z/graceclone/internal"
)

var (
	ErrMissingDependency = internal.ErrMissingDependency
	ErrSyncFailure       = internal.ErrSyncFailure
	ErrNoTagsFound       = internal.ErrNoTagsFound
	ErrCheckoutFailure   = internal.ErrCheckoutFailure
	ErrInvalidConfig     = internal.ErrInvalidConfig
)

// Tag represents a release tag peeled to its commit.
type Tag struct {
	Name      string    `json:"name"`
	Commit    string    `json:"commit"`
	Committed time.Time `json:"committed"`
}

// Target is the checkout decision for the newest tag.
type Target struct {
	Checkout bool `json:"checkout"`
	Tag      Tag  `json:"tag"`
	AgeDays  int  `json:"age_days"`
}

// Result describes one completed run.
type Result struct {
	Path     string   `json:"path"`
	Cloned   bool     `json:"cloned"`
	Remotes  []string `json:"remotes,omitempty"`
	Target   Target   `json:"target"`
	Head     string   `json:"head"`
	Detached bool     `json:"detached"`
}

func toTag(t internal.Tag) Tag {
	return Tag{Name: t.Name, Commit: t.Hash, Committed: t.Committed}
}

func toTarget(t internal.CheckoutTarget) Target {
	return Target{Checkout: t.IsCheckout(), Tag: toTag(t.Tag), AgeDays: t.Age}
}
