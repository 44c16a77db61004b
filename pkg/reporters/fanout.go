package reporters

import (
	"context"
	"errors"
	"fmt"
)

// Fanout delivers a report to every configured reporter.
type Fanout struct {
	reporters []Reporter
}

func NewFanout(reps []Reporter) *Fanout {
	cp := make([]Reporter, 0, len(reps))
	for _, r := range reps {
		if r == nil {
			continue
		}
		cp = append(cp, r)
	}
	return &Fanout{reporters: cp}
}

// Publish forwards r to every reporter and returns how many succeeded.
func (f *Fanout) Publish(ctx context.Context, r Report) (int, error) {
	if f == nil || len(f.reporters) == 0 {
		return 0, nil
	}

	var errs []error
	successful := 0
	for _, rep := range f.reporters {
		if err := rep.Publish(ctx, r); err != nil {
			errs = append(errs, fmt.Errorf("%s reporter[%s]: %w", rep.Type(), rep.ID(), err))
		} else {
			successful++
		}
	}
	return successful, errors.Join(errs...)
}

// Size returns the number of active reporters.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.reporters)
}

// Close releases reporters that hold connections.
func (f *Fanout) Close() error {
	if f == nil {
		return nil
	}
	var errs []error
	for _, rep := range f.reporters {
		if c, ok := rep.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s reporter[%s]: %w", rep.Type(), rep.ID(), err))
			}
		}
	}
	return errors.Join(errs...)
}
