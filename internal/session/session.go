// Package session generates the batch of ratings a single synthetic user
// submits in one pass: a random number of movies, each rated once.
//
// Titles never repeat within a session. Uniqueness is enforced by rejection
// sampling against the session's seen set with a bounded number of draws per
// record; once the bound is hit the last drawn title gets a numeric suffix,
// "Iron Gate (2)", "Iron Gate (3)" and so on, until it is novel. Titles may
// repeat freely across sessions.
package session

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/dreamware/moviegen/internal/catalog"
	"github.com/dreamware/moviegen/internal/record"
)

const (
	// DefaultMinRatings is the fewest ratings a user submits per session
	DefaultMinRatings = 10
	// DefaultMaxRatings is the most ratings a user submits per session
	DefaultMaxRatings = 50
	// DefaultMaxAttempts bounds the draws spent looking for an unseen title
	DefaultMaxAttempts = 1000
)

// ErrInvalidRange is returned when a session size range is empty or negative
var ErrInvalidRange = errors.New("invalid session size range")

// Source produces movies and ratings. *catalog.Synthesizer implements it.
type Source interface {
	Movie() catalog.Movie
	Rating() record.Rating
}

// Generator builds sessions from a Source
type Generator struct {
	src Source
	rng *rand.Rand

	// MaxAttempts is the number of draws per record before falling back to
	// a suffixed title. Values below 1 mean DefaultMaxAttempts.
	MaxAttempts int

	// Fallbacks counts records whose title needed a suffix
	Fallbacks int
}

// NewGenerator creates a generator drawing session sizes from rng
func NewGenerator(src Source, rng *rand.Rand) *Generator {
	return &Generator{src: src, rng: rng, MaxAttempts: DefaultMaxAttempts}
}

// NewUserID returns a random UUID string identifying a synthetic user
func NewUserID() string {
	return uuid.NewString()
}

// Generate produces between minCount and maxCount records, inclusive, for
// userID. Records are returned in generation order.
func (g *Generator) Generate(userID string, minCount, maxCount int) ([]record.Record, error) {
	if minCount < 0 || maxCount < minCount {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, minCount, maxCount)
	}

	count := minCount + g.rng.IntN(maxCount-minCount+1)
	seen := make(map[string]struct{}, count)
	records := make([]record.Record, 0, count)

	for i := 0; i < count; i++ {
		movie := g.uniqueMovie(seen)
		seen[movie.Title] = struct{}{}
		records = append(records, record.Record{
			UserID: userID,
			Title:  movie.Title,
			Genres: movie.Genres,
			Rating: g.src.Rating(),
		})
	}
	return records, nil
}

func (g *Generator) uniqueMovie(seen map[string]struct{}) catalog.Movie {
	attempts := g.MaxAttempts
	if attempts < 1 {
		attempts = DefaultMaxAttempts
	}

	var movie catalog.Movie
	for i := 0; i < attempts; i++ {
		movie = g.src.Movie()
		if _, dup := seen[movie.Title]; !dup {
			return movie
		}
	}

	g.Fallbacks++
	base := movie.Title
	for n := 2; ; n++ {
		movie.Title = fmt.Sprintf("%s (%d)", base, n)
		if _, dup := seen[movie.Title]; !dup {
			return movie
		}
	}
}

// SeededUserIDs returns a UUID source drawing its randomness from rng, so
// seeded runs produce the same user identifiers
func SeededUserIDs(rng *rand.Rand) func() string {
	r := rngReader{rng: rng}
	return func() string {
		id, err := uuid.NewRandomFromReader(r)
		if err != nil {
			// rngReader never fails
			panic(err)
		}
		return id.String()
	}
}

type rngReader struct {
	rng *rand.Rand
}

func (r rngReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint32())
	}
	return len(p), nil
}
