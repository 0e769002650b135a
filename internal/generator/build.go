package generator

import (
	"log"
	"math/rand/v2"

	"github.com/dreamware/moviegen/internal/catalog"
	"github.com/dreamware/moviegen/internal/config"
	"github.com/dreamware/moviegen/internal/output"
	"github.com/dreamware/moviegen/internal/session"
)

// New assembles a Runner writing to the files named by cfg
func New(cfg config.Config, logger *log.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	synth := catalog.NewSynthesizer(rng, catalog.DefaultVocabulary(), cfg.MaxGenres)
	bulk, shards := cfg.Stores()

	newUserID := session.NewUserID
	if cfg.Seed != 0 {
		newUserID = session.SeededUserIDs(rng)
	}

	return &Runner{
		Sessions:   session.NewGenerator(synth, rng),
		Output:     output.NewManager(bulk, shards, cfg.OutputOptions(), logger),
		MinRatings: cfg.MinRatings,
		MaxRatings: cfg.MaxRatings,
		MaxRecords: cfg.MaxRecords,
		NewUserID:  newUserID,
		Logger:     logger,
	}, nil
}
