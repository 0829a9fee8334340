package session

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"

	"github.com/studyflowhq/studyflow/internal/models"
)

// Verdict classifies a typed answer against the expected one.
type Verdict int

const (
	VerdictWrong Verdict = iota
	VerdictClose
	VerdictCorrect
)

func (v Verdict) String() string {
	switch v {
	case VerdictCorrect:
		return "correct"
	case VerdictClose:
		return "close"
	default:
		return "wrong"
	}
}

// closeThreshold is the minimum word-overlap fraction for a near miss.
const closeThreshold = 0.7

// EvaluateTyped compares a free-text answer against the expected answer.
// Both are normalized (lowercased, punctuation stripped, whitespace
// collapsed); an exact normalized match is correct, a word-overlap
// fraction of at least 0.7 is close (the user adjudicates), anything
// else is wrong.
func EvaluateTyped(given, want string) Verdict {
	g := normalize(given)
	w := normalize(want)
	if w == "" {
		return VerdictWrong
	}
	if g == w {
		return VerdictCorrect
	}

	givenWords := strings.Fields(g)
	wantWords := strings.Fields(w)
	if len(givenWords) == 0 {
		return VerdictWrong
	}

	matched := 0
	for _, ww := range wantWords {
		for _, gw := range givenWords {
			if gw == ww || strings.Contains(gw, ww) || strings.Contains(ww, gw) {
				matched++
				break
			}
		}
	}
	if float64(matched)/float64(len(wantWords)) >= closeThreshold {
		return VerdictClose
	}
	return VerdictWrong
}

// normalize lowercases, strips punctuation, and collapses whitespace.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// choiceCount is the number of options presented in a multiple-choice
// question: the correct answer plus three distractors.
const choiceCount = 4

// Choices builds the shuffled option list for the current card: its
// answer plus up to three distractors drawn from other cards in the
// session, deduplicated and padded with placeholders when the set is
// too small.
func (s *Session) Choices() ([]string, error) {
	card, err := s.Current()
	if err != nil {
		return nil, err
	}
	return buildChoices(card, s.cards, s.rng), nil
}

func buildChoices(card models.Card, pool []models.Card, rng *rand.Rand) []string {
	seen := map[string]bool{card.Back: true}
	var distractors []string
	for _, other := range pool {
		if other.ID == card.ID || seen[other.Back] {
			continue
		}
		seen[other.Back] = true
		distractors = append(distractors, other.Back)
	}
	rng.Shuffle(len(distractors), func(i, j int) {
		distractors[i], distractors[j] = distractors[j], distractors[i]
	})
	if len(distractors) > choiceCount-1 {
		distractors = distractors[:choiceCount-1]
	}

	options := append([]string{card.Back}, distractors...)
	for i := len(options); i < choiceCount; i++ {
		options = append(options, fmt.Sprintf("None of these (%d)", i))
	}
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// MatchingPair is one front/back pairing on a matching board.
type MatchingPair struct {
	CardID int64  `json:"card_id"`
	Front  string `json:"front"`
	Back   string `json:"back"`
}

// MatchingBoard returns up to size pairs for the matching stage, fronts
// in deck order and backs shuffled independently.
func (s *Session) MatchingBoard(size int) (fronts []MatchingPair, backs []string, err error) {
	if s.status != StatusActive {
		return nil, nil, fmt.Errorf("session is %s, not active", s.status)
	}
	if size <= 0 || size > len(s.working) {
		size = len(s.working)
	}
	for _, c := range s.working[:size] {
		fronts = append(fronts, MatchingPair{CardID: c.ID, Front: c.Front, Back: c.Back})
		backs = append(backs, c.Back)
	}
	s.rng.Shuffle(len(backs), func(i, j int) {
		backs[i], backs[j] = backs[j], backs[i]
	})
	return fronts, backs, nil
}
