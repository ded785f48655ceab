// Package names generates throwaway sandbox names.
package names

import "math/rand/v2"

var adjectives = []string{
	"amber", "bold", "brisk", "calm", "clever", "crimson", "eager",
	"fuzzy", "gentle", "golden", "happy", "jolly", "lucky", "mellow",
	"nimble", "quiet", "rapid", "shiny", "sly", "witty",
}

var nouns = []string{
	"badger", "comet", "falcon", "fjord", "heron", "lemur", "lynx",
	"marmot", "meadow", "otter", "panda", "pebble", "quokka", "raven",
	"sparrow", "thicket", "tundra", "walrus", "wombat", "yak",
}

// Generate picks a uniform adjective-noun pair from the given source.
// Names are cosmetic, not unique: a collision simply resumes or recreates
// the sandbox that already carries the name.
func Generate(r *rand.Rand) string {
	return adjectives[r.IntN(len(adjectives))] + "-" + nouns[r.IntN(len(nouns))]
}
