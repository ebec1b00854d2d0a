package models

import "time"

// UserQuestion is a trivia question submitted by a club member about a
// specific watched flick. Unapproved questions never enter gameplay.
type UserQuestion struct {
	ID               int64
	WatchedFlickID   int64
	UserID           int64
	QuestionText     string
	CorrectAnswer    string
	IncorrectAnswer1 *string
	IncorrectAnswer2 *string
	IncorrectAnswer3 *string
	IsApproved       bool
	CreatedAt        time.Time
}

// TriviaSession is the persisted record of one trivia game
type TriviaSession struct {
	ID             int64
	UserID         int64
	TotalQuestions int
	Score          int
	StartedAt      time.Time
	CompletedAt    *time.Time
}
