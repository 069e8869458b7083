package internal

import (
	"context"
	"errors"
	"time"
)

var (
	ErrMissingDependency = errors.New("missing dependency")
	ErrSyncFailure       = errors.New("repository sync failed")
	ErrNoTagsFound       = errors.New("no tags found")
	ErrCheckoutFailure   = errors.New("checkout failed")
	ErrInvalidConfig     = errors.New("invalid config")
)

// Tag is a release tag peeled to the commit it points at.
type Tag struct {
	Name      string
	Hash      string // commit hash
	Committed time.Time
}

type TargetKind string

const (
	TargetCheckoutTag TargetKind = "checkout-tag"
	TargetNoop        TargetKind = "no-op"
)

// CheckoutTarget is the outcome of comparing the newest tag against the grace
// period.
type CheckoutTarget struct {
	Kind TargetKind
	Tag  Tag
	Age  int // whole days between the tag commit and now
}

func (t CheckoutTarget) IsCheckout() bool {
	return t.Kind == TargetCheckoutTag
}

func (t CheckoutTarget) String() string {
	if t.IsCheckout() {
		return "checkout tag " + t.Tag.Name
	}
	return "no-op"
}

type Head struct {
	Name     string // short branch name, empty when detached
	Hash     string
	Detached bool
}

// TagRepository is the read side of a working copy.
type TagRepository interface {
	Tags(ctx context.Context) ([]Tag, error)
	Head(ctx context.Context) (*Head, error)
}

// Checkouter moves a working copy onto a tag.
type Checkouter interface {
	Checkout(ctx context.Context, path string, tag Tag) error
}
