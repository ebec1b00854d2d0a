package trivia

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"flicksclub/internal/models"
)

func ratingPtr(v float64) *float64 {
	return &v
}

func testFlicks(n int) []models.WatchedFlick {
	flicks := make([]models.WatchedFlick, 0, n)
	for i := 0; i < n; i++ {
		flicks = append(flicks, models.WatchedFlick{
			ID:          int64(i + 1),
			Title:       "Flick " + string(rune('A'+i)),
			WatchedOn:   time.Date(2025, time.January, i+1, 0, 0, 0, 0, time.UTC),
			RatingMegan: ratingPtr(float64(5 + i%3)),
			RatingAlex:  ratingPtr(float64(4 + i%4)),
			RatingTim:   ratingPtr(float64(6 + i%2)),
		})
	}
	return flicks
}

func TestGenerateTooFewFlicks(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(1)))

	if got := g.Generate(testFlicks(2), 5); got != nil {
		t.Errorf("Generate() with 2 flicks = %d questions, want none", len(got))
	}
}

func TestGenerateQuestionShape(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(42)))

	questions := g.Generate(testFlicks(8), 5)
	if len(questions) == 0 {
		t.Fatal("Generate() returned no questions")
	}

	for _, q := range questions {
		if q.Text == "" {
			t.Error("question has empty text")
		}
		if q.Source != SourceGenerated {
			t.Errorf("question source = %q, want %q", q.Source, SourceGenerated)
		}
		if len(q.Options) < 2 {
			t.Errorf("question %q has %d options, want at least 2", q.Text, len(q.Options))
		}

		found := 0
		seen := make(map[string]bool)
		for _, opt := range q.Options {
			if seen[opt] {
				t.Errorf("question %q has duplicate option %q", q.Text, opt)
			}
			seen[opt] = true
			if opt == q.CorrectAnswer {
				found++
			}
		}
		if found != 1 {
			t.Errorf("question %q contains correct answer %d times, want exactly once", q.Text, found)
		}
	}
}

func TestHighestRaterQuestionTies(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(7)))

	tests := []struct {
		name  string
		flick models.WatchedFlick
		want  string
	}{
		{
			name: "single winner",
			flick: models.WatchedFlick{
				Title:       "Solo",
				RatingMegan: ratingPtr(9),
				RatingAlex:  ratingPtr(5),
				RatingTim:   ratingPtr(6),
			},
			want: "Megan",
		},
		{
			name: "two-way tie joins sorted names",
			flick: models.WatchedFlick{
				Title:       "Split",
				RatingMegan: ratingPtr(8),
				RatingAlex:  ratingPtr(5),
				RatingTim:   ratingPtr(8),
			},
			want: "Megan / Tim",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := g.highestRaterQuestion(tt.flick)
			if q == nil {
				t.Fatal("highestRaterQuestion() = nil")
			}
			if q.CorrectAnswer != tt.want {
				t.Errorf("correct answer = %q, want %q", q.CorrectAnswer, tt.want)
			}
		})
	}
}

func TestHighestRaterQuestionSkipCases(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(7)))

	tests := []struct {
		name  string
		flick models.WatchedFlick
	}{
		{
			name: "all three tie leaves no distractor",
			flick: models.WatchedFlick{
				Title:       "Unanimous",
				RatingMegan: ratingPtr(7),
				RatingAlex:  ratingPtr(7),
				RatingTim:   ratingPtr(7),
			},
		},
		{
			name: "only one rating present",
			flick: models.WatchedFlick{
				Title:       "Lonely",
				RatingMegan: ratingPtr(7),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if q := g.highestRaterQuestion(tt.flick); q != nil {
				t.Errorf("highestRaterQuestion() = %+v, want nil", q)
			}
		})
	}
}

func TestMeanRatingQuestion(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(3)))

	flick := models.WatchedFlick{
		Title:       "Average Joe",
		RatingMegan: ratingPtr(6),
		RatingAlex:  ratingPtr(7),
		RatingTim:   ratingPtr(8),
	}

	q := g.meanRatingQuestion(flick)
	if q == nil {
		t.Fatal("meanRatingQuestion() = nil")
	}
	if q.CorrectAnswer != "7.0" {
		t.Errorf("correct answer = %q, want %q", q.CorrectAnswer, "7.0")
	}
	if len(q.Options) != 4 {
		t.Errorf("got %d options, want 4", len(q.Options))
	}

	if q := g.meanRatingQuestion(models.WatchedFlick{Title: "Unrated"}); q != nil {
		t.Errorf("meanRatingQuestion() on unrated flick = %+v, want nil", q)
	}
}

func TestFormatUserQuestion(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(9)))

	wrong1 := "Blue"
	wrong2 := "Green"
	empty := ""

	tests := []struct {
		name        string
		question    models.UserQuestion
		wantNil     bool
		wantOptions int
	}{
		{
			name: "full question",
			question: models.UserQuestion{
				QuestionText:     "What color was the car?",
				CorrectAnswer:    "Red",
				IncorrectAnswer1: &wrong1,
				IncorrectAnswer2: &wrong2,
			},
			wantOptions: 3,
		},
		{
			name: "minimum two options",
			question: models.UserQuestion{
				QuestionText:     "Who dies first?",
				CorrectAnswer:    "The drummer",
				IncorrectAnswer1: &wrong1,
			},
			wantOptions: 2,
		},
		{
			name: "missing first incorrect answer",
			question: models.UserQuestion{
				QuestionText:  "Trick question?",
				CorrectAnswer: "Yes",
			},
			wantNil: true,
		},
		{
			name: "empty first incorrect answer",
			question: models.UserQuestion{
				QuestionText:     "Still a trick?",
				CorrectAnswer:    "Yes",
				IncorrectAnswer1: &empty,
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := g.FormatUserQuestion(tt.question)
			if tt.wantNil {
				if q != nil {
					t.Errorf("FormatUserQuestion() = %+v, want nil", q)
				}
				return
			}
			if q == nil {
				t.Fatal("FormatUserQuestion() = nil")
			}
			if q.Source != SourceUser {
				t.Errorf("source = %q, want %q", q.Source, SourceUser)
			}
			if len(q.Options) != tt.wantOptions {
				t.Errorf("got %d options, want %d", len(q.Options), tt.wantOptions)
			}
		})
	}
}

func TestBuildPoolTruncatesToSessionSize(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(11)))

	wrong := "Nope"
	var userQuestions []models.UserQuestion
	for i := 0; i < 15; i++ {
		userQuestions = append(userQuestions, models.UserQuestion{
			QuestionText:     "Question " + string(rune('A'+i)),
			CorrectAnswer:    "Yep",
			IncorrectAnswer1: &wrong,
		})
	}

	pool := g.BuildPool(testFlicks(6), userQuestions, DefaultGeneratedCount, DefaultSessionSize)
	if len(pool) != DefaultSessionSize {
		t.Errorf("BuildPool() = %d questions, want %d", len(pool), DefaultSessionSize)
	}
}

func TestBuildPoolEmptyInputs(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(13)))

	pool := g.BuildPool(nil, nil, DefaultGeneratedCount, DefaultSessionSize)
	if len(pool) != 0 {
		t.Errorf("BuildPool() with no inputs = %d questions, want 0", len(pool))
	}
}

func TestGenerateSingleRaterFlicks(t *testing.T) {
	flicks := make([]models.WatchedFlick, 0, 5)
	for i := 0; i < 5; i++ {
		flicks = append(flicks, models.WatchedFlick{
			ID:          int64(i + 1),
			Title:       "Solo " + string(rune('A'+i)),
			WatchedOn:   time.Date(2025, time.February, i+1, 0, 0, 0, 0, time.UTC),
			RatingMegan: ratingPtr(float64(4 + i)),
		})
	}

	// With one rating per flick the highest-rater question can never
	// form, so only average-rating and watch-date questions may appear.
	for seed := int64(0); seed < 10; seed++ {
		g := NewGenerator(rand.New(rand.NewSource(seed)))
		for _, q := range g.Generate(flicks, 5) {
			switch {
			case strings.HasPrefix(q.Text, "What was the average rating"):
			case strings.HasPrefix(q.Text, "Which movie did the club watch"):
			default:
				t.Errorf("seed %d produced %q, want only average-rating or watch-date questions", seed, q.Text)
			}
		}
	}
}
