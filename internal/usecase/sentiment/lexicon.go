package sentiment

// Polarity lexicon for product reviews. Deliberately small: the scorer is a
// deterministic heuristic, not a learned model.
var (
	positiveWords = map[string]bool{
		"amazing":     true,
		"awesome":     true,
		"best":        true,
		"comfortable": true,
		"crisp":       true,
		"durable":     true,
		"excellent":   true,
		"fantastic":   true,
		"fast":        true,
		"good":        true,
		"great":       true,
		"happy":       true,
		"impressive":  true,
		"love":        true,
		"loved":       true,
		"nice":        true,
		"perfect":     true,
		"premium":     true,
		"recommend":   true,
		"reliable":    true,
		"satisfied":   true,
		"sharp":       true,
		"smooth":      true,
		"solid":       true,
		"superb":      true,
		"value":       true,
		"worth":       true,
	}

	negativeWords = map[string]bool{
		"awful":         true,
		"bad":           true,
		"broke":         true,
		"broken":        true,
		"cheap":         true,
		"defective":     true,
		"disappointed":  true,
		"disappointing": true,
		"faulty":        true,
		"flimsy":        true,
		"horrible":      true,
		"issue":         true,
		"issues":        true,
		"lag":           true,
		"laggy":         true,
		"mediocre":      true,
		"overpriced":    true,
		"poor":          true,
		"problem":       true,
		"problems":      true,
		"refund":        true,
		"regret":        true,
		"return":        true,
		"returned":      true,
		"slow":          true,
		"terrible":      true,
		"uncomfortable": true,
		"useless":       true,
		"waste":         true,
		"worst":         true,
	}

	// negators flip the polarity of the next sentiment-bearing word.
	negators = map[string]bool{
		"not":     true,
		"no":      true,
		"never":   true,
		"hardly":  true,
		"isnt":    true,
		"wasnt":   true,
		"dont":    true,
		"didnt":   true,
		"doesnt":  true,
		"wont":    true,
		"cant":    true,
		"couldnt": true,
	}
)
