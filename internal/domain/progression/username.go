package progression

import (
	"fmt"
	"math/rand/v2"
)

var (
	nameAdjectives = []string{
		"amber", "brisk", "calm", "dusty", "eager", "fuzzy", "gentle", "hollow",
		"icy", "jolly", "keen", "lucky", "mellow", "nimble", "odd", "proud",
		"quiet", "rapid", "shy", "tidy", "urban", "vivid", "witty", "young",
	}
	nameNouns = []string{
		"otter", "falcon", "maple", "comet", "badger", "harbor", "lynx", "pixel",
		"raven", "cedar", "ember", "gecko", "koala", "meadow", "nomad", "orbit",
		"pebble", "quartz", "river", "sparrow", "tundra", "walrus", "yak", "zephyr",
	}
)

// GenerateUsername returns a readable handle such as "quietotter427".
func GenerateUsername() string {
	adj := nameAdjectives[rand.IntN(len(nameAdjectives))]
	noun := nameNouns[rand.IntN(len(nameNouns))]
	return fmt.Sprintf("%s%s%d", adj, noun, 100+rand.IntN(900))
}
