package internal

import (
	"fmt"
	"sort"
	"time"
)

const (
	DefaultGracePeriodDays = 45

	day = 24 * time.Hour
)

// GracePeriodPolicy decides whether a release tag is recent enough to be
// preferred over the development branch.
type GracePeriodPolicy struct {
	Days int
	Now  func() time.Time
}

func NewGracePeriodPolicy(days int, now func() time.Time) GracePeriodPolicy {
	if now == nil {
		now = time.Now
	}
	return GracePeriodPolicy{Days: days, Now: now}
}

// SortTags orders tags newest commit first. Equal timestamps fall back to the
// tag name so the order is total.
func SortTags(tags []Tag) {
	sort.SliceStable(tags, func(i, j int) bool {
		ti, tj := tags[i].Committed, tags[j].Committed
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return tags[i].Name < tags[j].Name
	})
}

// WholeDays floors d to whole days, rounding toward negative infinity.
func WholeDays(d time.Duration) int {
	days := int(d / day)
	if d < 0 && d%day != 0 {
		days--
	}
	return days
}

// Select picks the checkout target from tags. The slice is sorted in place.
func (p GracePeriodPolicy) Select(tags []Tag) (CheckoutTarget, error) {
	if len(tags) == 0 {
		return CheckoutTarget{}, ErrNoTagsFound
	}
	if p.Days <= 0 {
		return CheckoutTarget{}, fmt.Errorf("%w: grace period must be positive, got %d", ErrInvalidConfig, p.Days)
	}

	SortTags(tags)
	newest := tags[0]

	now := p.Now().UTC()
	age := WholeDays(now.Sub(newest.Committed))

	target := CheckoutTarget{Kind: TargetNoop, Tag: newest, Age: age}
	if age < p.Days {
		target.Kind = TargetCheckoutTag
	}
	return target, nil
}
