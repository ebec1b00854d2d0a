package handlers

import (
	"time"

	"flicksclub/internal/models"
	"flicksclub/internal/study"
)

// View models shape API responses. Dates travel as "2006-01-02",
// timestamps as RFC 3339; absent ratings and means are null.

type userView struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

func newUserView(u *models.User) userView {
	return userView{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		IsAdmin: u.IsAdmin,
	}
}

type flickView struct {
	ID             int64    `json:"id"`
	WatchedOn      string   `json:"watchedOn"`
	Title          string   `json:"title"`
	RatingMegan    *float64 `json:"ratingMegan"`
	RatingAlex     *float64 `json:"ratingAlex"`
	RatingTim      *float64 `json:"ratingTim"`
	MeanRating     *string  `json:"meanRating"`
	Description    string   `json:"description,omitempty"`
	CommentMegan   string   `json:"commentMegan,omitempty"`
	CommentAlex    string   `json:"commentAlex,omitempty"`
	CommentTim     string   `json:"commentTim,omitempty"`
	PosterFilename string   `json:"posterFilename,omitempty"`
}

func newFlickView(f *models.WatchedFlick) flickView {
	v := flickView{
		ID:             f.ID,
		WatchedOn:      f.WatchedOn.Format("2006-01-02"),
		Title:          f.Title,
		RatingMegan:    f.RatingMegan,
		RatingAlex:     f.RatingAlex,
		RatingTim:      f.RatingTim,
		Description:    f.Description,
		CommentMegan:   f.CommentMegan,
		CommentAlex:    f.CommentAlex,
		CommentTim:     f.CommentTim,
		PosterFilename: f.PosterFilename,
	}
	if mean, ok := f.MeanRatingDisplay(); ok {
		v.MeanRating = &mean
	}
	return v
}

func newFlickViews(flicks []models.WatchedFlick) []flickView {
	views := make([]flickView, 0, len(flicks))
	for i := range flicks {
		views = append(views, newFlickView(&flicks[i]))
	}
	return views
}

type suggestionView struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	IMDBLink        string `json:"imdbLink,omitempty"`
	SuggestedByID   int64  `json:"suggestedById"`
	SuggestedByName string `json:"suggestedByName"`
	CreatedAt       string `json:"createdAt"`
}

func newSuggestionView(s *models.SuggestedFlick) suggestionView {
	return suggestionView{
		ID:              s.ID,
		Title:           s.Title,
		IMDBLink:        s.IMDBLink,
		SuggestedByID:   s.SuggestedByUserID,
		SuggestedByName: s.SuggestedByName,
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
	}
}

type questionView struct {
	ID             int64  `json:"id"`
	WatchedFlickID int64  `json:"watchedFlickId"`
	QuestionText   string `json:"questionText"`
	CorrectAnswer  string `json:"correctAnswer"`
	IsApproved     bool   `json:"isApproved"`
	CreatedAt      string `json:"createdAt"`
}

func newQuestionView(q *models.UserQuestion) questionView {
	return questionView{
		ID:             q.ID,
		WatchedFlickID: q.WatchedFlickID,
		QuestionText:   q.QuestionText,
		CorrectAnswer:  q.CorrectAnswer,
		IsApproved:     q.IsApproved,
		CreatedAt:      q.CreatedAt.Format(time.RFC3339),
	}
}

type deckView struct {
	PublicID  string `json:"id"`
	Name      string `json:"name"`
	CardCount int    `json:"cardCount"`
	CreatedAt string `json:"createdAt"`
}

func newDeckView(d *models.Deck) deckView {
	return deckView{
		PublicID:  d.PublicID,
		Name:      d.Name,
		CardCount: d.CardCount,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
	}
}

type cardView struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func newCardView(c *models.Flashcard) cardView {
	return cardView{
		ID:       c.ID,
		Question: c.Question,
		Answer:   c.Answer,
	}
}

// studyView is the full study session state sent after every action
type studyView struct {
	DeckID       string           `json:"deckId"`
	DeckName     string           `json:"deckName"`
	Position     int              `json:"position"`
	Total        int              `json:"total"`
	Flipped      bool             `json:"flipped"`
	Card         cardView         `json:"card"`
	CardStatus   study.CardStatus `json:"cardStatus"`
	CardStarred  bool             `json:"cardStarred"`
	KnownCount   int              `json:"knownCount"`
	ReviewCount  int              `json:"reviewCount"`
	StarredCount int              `json:"starredCount"`
}

func newStudyView(deckPublicID string, s *study.Session) studyView {
	card := s.Current()
	position, total := s.Position()
	known, review, starred := s.Counts()
	return studyView{
		DeckID:       deckPublicID,
		DeckName:     s.DeckName,
		Position:     position,
		Total:        total,
		Flipped:      s.Flipped(),
		Card:         newCardView(&card),
		CardStatus:   s.StatusOf(card.ID),
		CardStarred:  s.IsStarred(card.ID),
		KnownCount:   known,
		ReviewCount:  review,
		StarredCount: starred,
	}
}

type projectView struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ClientName string `json:"clientName,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

func newProjectView(p *models.Project) projectView {
	return projectView{
		ID:         p.ID,
		Name:       p.Name,
		ClientName: p.ClientName,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
}

type timeEntryView struct {
	ID          int64  `json:"id"`
	ProjectID   *int64 `json:"projectId"`
	ProjectName string `json:"projectName,omitempty"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Duration    string `json:"duration"`
	Description string `json:"description,omitempty"`
}

func newTimeEntryView(e *models.TimeEntry) timeEntryView {
	return timeEntryView{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		ProjectName: e.ProjectName,
		StartTime:   e.StartTime.Format(time.RFC3339),
		EndTime:     e.EndTime.Format(time.RFC3339),
		Duration:    e.DurationDisplay(),
		Description: e.Description,
	}
}

type documentView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
	CreatedAt   string `json:"createdAt"`
}

func newDocumentView(d *models.Document) documentView {
	return documentView{
		ID:          d.ID,
		Name:        d.Name,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
}

type gameHistoryView struct {
	ID             int64  `json:"id"`
	TotalQuestions int    `json:"totalQuestions"`
	Score          int    `json:"score"`
	StartedAt      string `json:"startedAt"`
	Completed      bool   `json:"completed"`
}

func newGameHistoryView(s *models.TriviaSession) gameHistoryView {
	return gameHistoryView{
		ID:             s.ID,
		TotalQuestions: s.TotalQuestions,
		Score:          s.Score,
		StartedAt:      s.StartedAt.Format(time.RFC3339),
		Completed:      s.CompletedAt != nil,
	}
}
