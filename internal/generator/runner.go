// Package generator drives a generation run: it loops over synthetic users,
// feeds their sessions to the output manager and stops when the bulk file
// reaches its size cap.
package generator

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/dreamware/moviegen/internal/output"
	"github.com/dreamware/moviegen/internal/record"
)

// ProgressEvery is the number of users between progress log lines
const ProgressEvery = 100

// Sessions produces the records of one user's session.
// *session.Generator implements it.
type Sessions interface {
	Generate(userID string, minCount, maxCount int) ([]record.Record, error)
}

// Summary describes a finished run
type Summary struct {
	output.Summary
	Users int // Users processed, including one cut short by a stop
}

// Runner runs the generation loop
type Runner struct {
	Sessions   Sessions
	Output     *output.Manager
	MinRatings int
	MaxRatings int

	// MaxRecords stops the run after this many records. Zero means no limit.
	MaxRecords int

	// NewUserID returns the identifier of the next synthetic user
	NewUserID func() string

	Logger *log.Logger
}

// Run generates records until the bulk file reaches its cap, MaxRecords is
// hit or ctx is cancelled, then writes the final bulk and shard files.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	if err := r.Output.Init(); err != nil {
		return Summary{}, err
	}

	users := 0
	stopped := false
	for !stopped && ctx.Err() == nil {
		userID := r.NewUserID()
		records, err := r.Sessions.Generate(userID, r.MinRatings, r.MaxRatings)
		if err != nil {
			return Summary{}, fmt.Errorf("session for user %s: %w", userID, err)
		}

		for _, rec := range records {
			if ctx.Err() != nil {
				stopped = true
				break
			}
			done, err := r.emit(rec)
			if err != nil {
				return Summary{}, err
			}
			if done {
				stopped = true
				break
			}
		}

		users++
		if users%ProgressEvery == 0 && !stopped {
			logger.Printf("progress: %d users processed, %d ratings total", users, r.Output.Total())
		}
	}

	if ctx.Err() != nil {
		logger.Printf("generation interrupted after %d ratings", r.Output.Total())
	}

	out, err := r.Output.Finish()
	if err != nil {
		return Summary{}, err
	}
	return Summary{Summary: out, Users: users}, nil
}

// emit hands one record to the output manager and reports whether the run
// should stop
func (r *Runner) emit(rec record.Record) (bool, error) {
	if err := r.Output.Record(rec); err != nil {
		return false, err
	}
	if _, err := r.Output.MaybeFlushShard(); err != nil {
		return false, err
	}
	reached, err := r.Output.MaybeCheckpoint()
	if err != nil {
		return false, err
	}
	if reached {
		return true, nil
	}
	return r.MaxRecords > 0 && r.Output.Total() >= r.MaxRecords, nil
}
