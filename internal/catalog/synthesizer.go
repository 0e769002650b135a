package catalog

import (
	"math/rand/v2"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dreamware/moviegen/internal/record"
)

// DefaultMaxGenres is the largest number of genres a movie is given
const DefaultMaxGenres = 3

// Movie is a synthetic movie. Genres are distinct and hold at least one entry.
type Movie struct {
	Title  string
	Genres []string
}

// Synthesizer draws movies and ratings from a random source.
// It is not safe for concurrent use.
type Synthesizer struct {
	rng       *rand.Rand
	vocab     Vocabulary
	maxGenres int
	caser     cases.Caser
}

// NewSynthesizer creates a synthesizer over vocab. maxGenres is clamped to
// [1, len(vocab.Genres)].
func NewSynthesizer(rng *rand.Rand, vocab Vocabulary, maxGenres int) *Synthesizer {
	if maxGenres > len(vocab.Genres) {
		maxGenres = len(vocab.Genres)
	}
	if maxGenres < 1 {
		maxGenres = 1
	}
	return &Synthesizer{
		rng:       rng,
		vocab:     vocab,
		maxGenres: maxGenres,
		caser:     cases.Title(language.Und),
	}
}

// Movie assembles a title from one of four templates and picks its genres
func (s *Synthesizer) Movie() Movie {
	var parts []string
	switch s.rng.IntN(4) {
	case 0:
		parts = []string{s.pick(s.vocab.Prefixes), s.pick(s.vocab.Adjectives), s.pick(s.vocab.Nouns)}
	case 1:
		parts = []string{s.pick(s.vocab.Adjectives), s.pick(s.vocab.Nouns)}
	case 2:
		parts = []string{s.pick(s.vocab.Nouns), s.pick(s.vocab.Connectors), s.pick(s.vocab.Nouns)}
	default:
		parts = []string{s.pick(s.vocab.Prefixes), s.pick(s.vocab.Nouns)}
	}

	return Movie{
		Title:  s.caser.String(strings.Join(parts, " ")),
		Genres: s.genres(),
	}
}

// Rating draws a uniform rating in [1.0, 5.0] rounded to one decimal place
func (s *Synthesizer) Rating() record.Rating {
	v := record.MinRating + s.rng.Float64()*(record.MaxRating-record.MinRating)
	return record.NewRating(v)
}

func (s *Synthesizer) pick(words []string) string {
	return words[s.rng.IntN(len(words))]
}

// genres samples without replacement using a partial Fisher-Yates shuffle
func (s *Synthesizer) genres() []string {
	if len(s.vocab.Genres) == 0 {
		return []string{}
	}
	n := 1 + s.rng.IntN(s.maxGenres)
	pool := slices.Clone(s.vocab.Genres)
	for i := 0; i < n; i++ {
		j := i + s.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n:n]
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
