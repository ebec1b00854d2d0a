package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateRequiredText checks that a free-text field is non-empty
func ValidateRequiredText(field, text string) error {
	if strings.TrimSpace(text) == "" {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	return nil
}

// ValidateRating checks that a present rating lies in [0,10].
// A nil rating is valid: absent ratings are allowed everywhere.
func ValidateRating(field string, rating *float64) error {
	if rating == nil {
		return nil
	}
	if *rating < 0 || *rating > 10 {
		return ValidationError{Field: field, Message: "rating must be between 0 and 10"}
	}
	return nil
}

// ValidateWatchDate parses a YYYY-MM-DD watch date
func ValidateWatchDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ValidationError{Field: "watched_on", Message: "watch date is required"}
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, ValidationError{Field: "watched_on", Message: "watch date must be YYYY-MM-DD"}
	}
	return t, nil
}

// ValidateLink checks an optional http(s) URL (e.g. an IMDB link)
func ValidateLink(field, link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil
	}
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ValidationError{Field: field, Message: "must be a valid http(s) URL"}
	}
	return nil
}
