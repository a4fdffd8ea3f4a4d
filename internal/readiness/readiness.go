// Package readiness checks that optional backing services answer before
// an orchestrator routes traffic to this instance.  Liveness (/health)
// never goes through here.
package readiness

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

// Checker is a single dependency probe.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckFunc adapts a function to Checker.
type CheckFunc struct {
	ID string
	Fn func(ctx context.Context) error
}

func (f CheckFunc) Name() string                    { return f.ID }
func (f CheckFunc) Check(ctx context.Context) error { return f.Fn(ctx) }

// Redis pings a go-redis client.
func Redis(rdb *redis.Client) Checker {
	return CheckFunc{ID: "redis", Fn: func(ctx context.Context) error {
		return errors.Wrap(rdb.Ping(ctx).Err(), "ping")
	}}
}

// SQL pings a database/sql pool.
func SQL(name string, db *sql.DB) Checker {
	return CheckFunc{ID: name, Fn: func(ctx context.Context) error {
		return errors.Wrap(db.PingContext(ctx), "ping")
	}}
}

// Failure is one failed check.
type Failure struct {
	Name string
	Err  error
}

// Report is the outcome of one probe round.
type Report struct {
	Failures []Failure
}

// Ready is true when no check failed.
func (r Report) Ready() bool { return len(r.Failures) == 0 }

func (r Report) String() string {
	if r.Ready() {
		return "OK"
	}
	parts := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Name, f.Err))
	}
	return "NOT READY: " + strings.Join(parts, "; ")
}

// Probe runs its checkers in order, each bounded by Timeout.
type Probe struct {
	checkers []Checker
	timeout  time.Duration
}

// NewProbe returns a Probe.  A non-positive timeout falls back to 2s.
func NewProbe(timeout time.Duration, checkers ...Checker) *Probe {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Probe{checkers: checkers, timeout: timeout}
}

// Run checks every dependency and collects the failures.
func (p *Probe) Run(ctx context.Context) Report {
	var rep Report
	for _, c := range p.checkers {
		cctx, cancel := context.WithTimeout(ctx, p.timeout)
		err := c.Check(cctx)
		cancel()
		if err != nil {
			rep.Failures = append(rep.Failures, Failure{Name: c.Name(), Err: err})
		}
	}
	return rep
}
