package catalog

// Vocabulary holds the word lists titles and genres are drawn from
type Vocabulary struct {
	Prefixes   []string
	Adjectives []string
	Nouns      []string
	Connectors []string
	Genres     []string
}

// DefaultVocabulary returns the built-in word lists
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Prefixes: []string{
			"The", "A", "An", "Project:", "Operation:", "Chronicles of", "The Story of",
			"Legend of the", "Rise of the", "Fall of the", "Beyond the", "Escape from",
		},
		Adjectives: []string{
			"Red", "Black", "Silent", "Forgotten", "Lost", "Final", "Eternal", "Crimson",
			"Golden", "Invisible", "Broken", "Last", "First", "Quantum", "Galactic",
			"Secret", "Dark", "Hollow", "Iron", "Crystal", "Shadow",
		},
		Nouns: []string{
			"Dragon", "Sun", "River", "Mountain", "Knight", "Code", "Protocol", "Echo",
			"Storm", "Serpent", "Phoenix", "Gate", "Key", "Sanctuary", "Revenge",
			"Legacy", "Prophecy", "Gambit", "Horizon", "Steel", "Winter", "Silence",
		},
		Connectors: []string{"of", "and the", "in the"},
		Genres: []string{
			"action", "comedy", "drama", "romance", "sci-fi", "horror", "thriller",
			"animation", "adventure", "fantasy", "crime", "mystery", "documentary",
			"family", "musical", "history", "war", "western", "superhero",
		},
	}
}
