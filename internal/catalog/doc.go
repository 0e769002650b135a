// Package catalog synthesizes movies and ratings from fixed vocabularies.
//
// Titles follow one of four templates, each chosen with equal probability:
//
//	<prefix> <adjective> <noun>     The Silent Gate
//	<adjective> <noun>              Crimson Phoenix
//	<noun> <connector> <noun>       Echo And The Storm
//	<prefix> <noun>                 Escape From Winter
//
// Words are drawn with replacement and the result is title-cased, so
// multi-word prefixes and connectors are capitalized too ("Legend Of The").
// Genres are sampled without replacement from 19 entries, between one and
// the configured maximum per movie.
//
// A Synthesizer is a pure function of its *rand.Rand: two synthesizers with
// equally seeded sources produce the same sequence.
package catalog
