// Package parser converts typed command lines into Command structs.
// Intentionally dumb: no NLP, just aliases and pattern matching.
package parser

import (
	"strconv"
	"strings"
)

// Command is a parsed player input. Object and Target are free-form entity
// names for the engine's resolvers; Number carries a trailing numeric
// argument for dialogue choices and dial-style use actions.
type Command struct {
	Verb   string
	Object string
	Target string
	Number *float64
}

var verbAliases = map[string]string{
	// Look / Examine
	"l":        "look",
	"x":        "examine",
	"inspect":  "examine",
	"check":    "examine",
	"study":    "examine",
	"observe":  "examine",
	"describe": "examine",
	"read":     "examine",

	// Movement
	"walk":    "go",
	"run":     "go",
	"move":    "go",
	"head":    "go",
	"enter":   "go",
	"travel":  "go",

	// Take
	"get":  "take",
	"grab": "take",

	// Talk
	"ask":      "talk",
	"speak":    "talk",
	"chat":     "talk",
	"converse": "talk",

	// Use
	"apply":    "use",
	"activate": "use",
	"operate":  "use",

	// Miscellaneous
	"i":     "inventory",
	"inv":   "inventory",
	"items": "inventory",
	"help":  "hint",
	"where": "status",
}

// Bare direction words that stand in for "go <direction>".
var directionWords = map[string]string{
	"n": "north", "s": "south", "e": "east", "w": "west",
	"ne": "northeast", "nw": "northwest", "se": "southeast", "sw": "southwest",
	"u": "up", "d": "down",
	"north": "north", "south": "south", "east": "east", "west": "west",
	"northeast": "northeast", "northwest": "northwest",
	"southeast": "southeast", "southwest": "southwest",
	"up": "up", "down": "down", "in": "in", "out": "out",
}

var prepositions = map[string]bool{
	"on": true, "at": true, "with": true, "in": true, "to": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts one input line into a Command. Empty input yields the
// zero Command.
func Parse(input string) Command {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(words) == 0 {
		return Command{}
	}

	// Bare "n", "north", etc. move without a verb.
	if len(words) == 1 {
		if dir, ok := directionWords[words[0]]; ok {
			return Command{Verb: "go", Object: dir}
		}
	}

	words = expandMultiWordVerbs(words)
	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := stripArticles(words[1:])

	cmd := Command{Verb: verb}
	if verb == "talk" || verb == "use" {
		rest, cmd.Number = extractTrailingNumber(rest)
	}
	cmd.Object, cmd.Target = splitOnPreposition(rest)

	// "go to the library" leaves "to" as a delimiter with an empty
	// object; the destination lands in Target.
	if verb == "go" && cmd.Object == "" && cmd.Target != "" {
		cmd.Object, cmd.Target = cmd.Target, ""
	}
	return cmd
}

// expandMultiWordVerbs rewrites "look at", "pick up", "talk to" phrases.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}
	switch words[0] {
	case "look":
		if words[1] == "at" || words[1] == "in" || words[1] == "under" {
			return append([]string{"examine"}, words[2:]...)
		}
	case "pick":
		if words[1] == "up" {
			return append([]string{"take"}, words[2:]...)
		}
	case "talk", "speak", "chat":
		if words[1] == "to" || words[1] == "with" {
			return append([]string{"talk"}, words[2:]...)
		}
	}
	return words
}

func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}

// splitOnPreposition splits words at the first preposition into object and
// target phrases.
func splitOnPreposition(words []string) (object, target string) {
	for i, w := range words {
		if prepositions[w] {
			return strings.Join(words[:i], " "), strings.Join(words[i+1:], " ")
		}
	}
	return strings.Join(words, " "), ""
}

// extractTrailingNumber pulls a numeric final word off the phrase, as in
// "talk guard 2" or "use dial on safe 7".
func extractTrailingNumber(words []string) ([]string, *float64) {
	if len(words) == 0 {
		return words, nil
	}
	n, err := strconv.ParseFloat(words[len(words)-1], 64)
	if err != nil {
		return words, nil
	}
	return words[:len(words)-1], &n
}
