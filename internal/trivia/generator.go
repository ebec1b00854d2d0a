package trivia

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"flicksclub/internal/models"
)

// Question sources, carried through to the client so it can badge
// machine-generated questions differently from member-submitted ones.
const (
	SourceGenerated = "generated"
	SourceUser      = "user"
)

// Defaults for one game session
const (
	DefaultGeneratedCount = 5
	DefaultSessionSize    = 10
)

// minFlicksForGeneration is the floor below which no questions are
// generated: with fewer flicks the date question has no plausible
// distractors.
const minFlicksForGeneration = 3

// Question is one multiple-choice trivia question. Options are already
// shuffled; CorrectAnswer matches exactly one option by string equality.
type Question struct {
	Text          string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Source        string   `json:"source"`
}

// Generator builds trivia questions from watch-log data. The random
// source is injected so tests can run deterministically.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator backed by rng. A nil rng gets a
// time-seeded source.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// Generate produces up to count machine-generated questions from the
// watch log. Fewer than three flicks yields an empty set; per-flick
// generation failures are skipped silently.
func (g *Generator) Generate(flicks []models.WatchedFlick, count int) []Question {
	if len(flicks) < minFlicksForGeneration {
		return nil
	}

	shuffled := make([]models.WatchedFlick, len(flicks))
	copy(shuffled, flicks)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	var questions []Question
	n := count
	if n > len(shuffled) {
		n = len(shuffled)
	}

	for i := 0; i < n; i++ {
		flick := shuffled[i]

		var q *Question
		switch g.rng.Intn(3) {
		case 0:
			q = g.highestRaterQuestion(flick)
		case 1:
			q = g.meanRatingQuestion(flick)
		default:
			q = g.watchDateQuestion(flick, shuffled)
		}

		// Partially-formed questions are dropped, not errors
		if q != nil && len(q.Options) >= 2 {
			questions = append(questions, *q)
		}
	}

	return questions
}

// highestRaterQuestion asks who gave the flick its highest rating.
// Needs at least two present ratings; ties become one compound answer
// with the winning names sorted and joined by " / ". Skipped when all
// raters tie, because no real distractor can be formed.
func (g *Generator) highestRaterQuestion(flick models.WatchedFlick) *Question {
	type rater struct {
		name   string
		rating float64
	}

	var present []rater
	for _, name := range models.RaterNames {
		if r := flick.RatingByName(name); r != nil && !math.IsNaN(*r) {
			present = append(present, rater{name: name, rating: *r})
		}
	}
	if len(present) < 2 {
		return nil
	}

	highest := present[0].rating
	for _, r := range present[1:] {
		if r.rating > highest {
			highest = r.rating
		}
	}

	winners := make(map[string]bool)
	var winnerNames []string
	for _, r := range present {
		if r.rating == highest {
			winners[r.name] = true
			winnerNames = append(winnerNames, r.name)
		}
	}
	sort.Strings(winnerNames)
	correct := joinNames(winnerNames)

	var incorrect []string
	for _, name := range models.RaterNames {
		if !winners[name] {
			incorrect = append(incorrect, name)
		}
	}
	if len(incorrect) == 0 {
		return nil
	}

	// Top up with filler labels, never duplicating an existing option
	for _, filler := range []string{"Nobody", "The whole club", "A guest"} {
		if len(incorrect) >= 3 {
			break
		}
		if filler != correct && !contains(incorrect, filler) {
			incorrect = append(incorrect, filler)
		}
	}

	return &Question{
		Text:          fmt.Sprintf("Who gave the highest rating (%s) to %q?", formatRatingValue(highest), flick.Title),
		Options:       g.shuffledOptions(correct, incorrect),
		CorrectAnswer: correct,
		Source:        SourceGenerated,
	}
}

// meanRatingQuestion asks for the flick's average rating. Distractors
// perturb the mean by fixed offsets, then random values fill any gap
// left by clamping or collisions.
func (g *Generator) meanRatingQuestion(flick models.WatchedFlick) *Question {
	mean, ok := flick.MeanRating()
	if !ok {
		return nil
	}
	correct := models.FormatRating(mean)

	var incorrect []string
	for _, offset := range []float64{1.1, -0.8, 2.3} {
		candidate := models.FormatRating(clampRating(mean + offset))
		if candidate != correct && !contains(incorrect, candidate) {
			incorrect = append(incorrect, candidate)
		}
	}
	for len(incorrect) < 3 {
		candidate := models.FormatRating(g.rng.Float64() * 10)
		if candidate != correct && !contains(incorrect, candidate) {
			incorrect = append(incorrect, candidate)
		}
	}

	return &Question{
		Text:          fmt.Sprintf("What was the average rating for %q?", flick.Title),
		Options:       g.shuffledOptions(correct, incorrect),
		CorrectAnswer: correct,
		Source:        SourceGenerated,
	}
}

// watchDateQuestion asks which title the club watched on a given date.
// Distractors are other titles from the shuffled log, topped up with
// synthesized titles when the log is small.
func (g *Generator) watchDateQuestion(flick models.WatchedFlick, shuffled []models.WatchedFlick) *Question {
	if flick.WatchedOn.IsZero() {
		return nil
	}
	correct := flick.Title

	var incorrect []string
	for _, other := range shuffled {
		if len(incorrect) >= 3 {
			break
		}
		if other.ID == flick.ID {
			continue
		}
		if other.Title != correct && !contains(incorrect, other.Title) {
			incorrect = append(incorrect, other.Title)
		}
	}
	for i := 1; len(incorrect) < 3; i++ {
		filler := fmt.Sprintf("Mystery Flick #%d", i)
		if filler != correct && !contains(incorrect, filler) {
			incorrect = append(incorrect, filler)
		}
	}

	return &Question{
		Text:          fmt.Sprintf("Which movie did the club watch on %s?", flick.WatchedOn.Format("Jan 2, 2006")),
		Options:       g.shuffledOptions(correct, incorrect),
		CorrectAnswer: correct,
		Source:        SourceGenerated,
	}
}

// FormatUserQuestion converts a member-submitted question to the common
// game shape. Returns nil for records missing the question text, the
// correct answer, or the first incorrect answer, and for records whose
// usable option list would be shorter than two.
func (g *Generator) FormatUserQuestion(q models.UserQuestion) *Question {
	if q.QuestionText == "" || q.CorrectAnswer == "" {
		return nil
	}
	if q.IncorrectAnswer1 == nil || *q.IncorrectAnswer1 == "" {
		return nil
	}

	var incorrect []string
	for _, ans := range []*string{q.IncorrectAnswer1, q.IncorrectAnswer2, q.IncorrectAnswer3} {
		if ans == nil || *ans == "" {
			continue
		}
		if *ans != q.CorrectAnswer && !contains(incorrect, *ans) {
			incorrect = append(incorrect, *ans)
		}
	}
	if len(incorrect) == 0 {
		return nil
	}

	return &Question{
		Text:          q.QuestionText,
		Options:       g.shuffledOptions(q.CorrectAnswer, incorrect),
		CorrectAnswer: q.CorrectAnswer,
		Source:        SourceUser,
	}
}

// BuildPool assembles one game session: generated questions plus
// approved user questions, shuffled together and truncated to
// sessionSize. An empty result means "no questions available" and is
// the caller's signal not to start a game.
func (g *Generator) BuildPool(flicks []models.WatchedFlick, userQuestions []models.UserQuestion, generatedCount, sessionSize int) []Question {
	pool := g.Generate(flicks, generatedCount)

	var userPool []Question
	for _, uq := range userQuestions {
		if q := g.FormatUserQuestion(uq); q != nil {
			userPool = append(userPool, *q)
		}
	}
	g.rng.Shuffle(len(userPool), func(i, j int) {
		userPool[i], userPool[j] = userPool[j], userPool[i]
	})

	combined := append(pool, userPool...)
	g.rng.Shuffle(len(combined), func(i, j int) {
		combined[i], combined[j] = combined[j], combined[i]
	})

	if len(combined) > sessionSize {
		combined = combined[:sessionSize]
	}
	return combined
}

// shuffledOptions combines the correct answer with its distractors and
// shuffles the result uniformly.
func (g *Generator) shuffledOptions(correct string, incorrect []string) []string {
	options := make([]string, 0, len(incorrect)+1)
	options = append(options, correct)
	options = append(options, incorrect...)
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

func joinNames(names []string) string {
	out := ""
	for i, name := range names {
		if i > 0 {
			out += " / "
		}
		out += name
	}
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func clampRating(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

// formatRatingValue renders a rating the way raters entered it: whole
// numbers without a trailing ".0".
func formatRatingValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
