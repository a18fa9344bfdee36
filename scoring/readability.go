package scoring

import "strings"

// ReadabilityScorer converts prose into a 0-15 readability sub-score.
type ReadabilityScorer interface {
	Score(content string) int
}

// FleschScorer scores with the Flesch Reading Ease formula.
type FleschScorer struct{}

// Score maps reading ease to points: 60+ easy (15), 30+ moderate (10),
// otherwise difficult (5).
func (FleschScorer) Score(content string) int {
	ease := fleschReadingEase(content)
	switch {
	case ease >= 60:
		return 15
	case ease >= 30:
		return 10
	default:
		return 5
	}
}

// HeuristicScorer approximates readability from average sentence length.
// Used when the Flesch formula is not wanted.
type HeuristicScorer struct{}

func (HeuristicScorer) Score(content string) int {
	words := len(strings.Fields(content))
	sentences := strings.Count(content, ".") + strings.Count(content, "!") + strings.Count(content, "?")
	if sentences == 0 {
		return 5
	}

	avg := float64(words) / float64(sentences)
	switch {
	case avg <= 15:
		return 15
	case avg <= 25:
		return 10
	default:
		return 5
	}
}

func fleschReadingEase(content string) float64 {
	words := strings.Fields(content)
	if len(words) == 0 {
		return 0
	}

	sentences := strings.Count(content, ".") + strings.Count(content, "!") + strings.Count(content, "?")
	if sentences == 0 {
		sentences = 1
	}

	var syllables int
	for _, word := range words {
		syllables += countSyllables(word)
	}

	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))

	return 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
}

// countSyllables approximates syllables as vowel groups, with a correction
// for a trailing silent e. Every word counts at least one.
func countSyllables(word string) int {
	word = strings.ToLower(strings.Trim(word, ".,;:!?\"'()[]"))
	if word == "" {
		return 1
	}

	isVowel := func(r rune) bool {
		return strings.ContainsRune("aeiouy", r)
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}
