package validation

import (
	"testing"
	"time"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid email", "megan@example.com", false},
		{"valid with plus", "tim+club@example.co.uk", false},
		{"empty", "", true},
		{"missing at", "alec.example.com", true},
		{"missing domain", "alec@", true},
		{"missing tld", "alec@example", true},
		{"whitespace only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password", "correct-horse", false},
		{"exactly eight", "12345678", false},
		{"too short", "1234567", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRating(t *testing.T) {
	inRange := 7.5
	zero := 0.0
	ten := 10.0
	negative := -0.1
	tooHigh := 10.5

	tests := []struct {
		name    string
		rating  *float64
		wantErr bool
	}{
		{"nil rating is valid", nil, false},
		{"in range", &inRange, false},
		{"zero boundary", &zero, false},
		{"ten boundary", &ten, false},
		{"negative", &negative, true},
		{"above ten", &tooHigh, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRating("rating_megan", tt.rating)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRating() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWatchDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "valid date",
			value: "2025-08-14",
			want:  time.Date(2025, time.August, 14, 0, 0, 0, 0, time.UTC),
		},
		{"empty", "", time.Time{}, true},
		{"wrong format", "14/08/2025", time.Time{}, true},
		{"not a date", "movie night", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateWatchDate(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateWatchDate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ValidateWatchDate(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestValidateLink(t *testing.T) {
	tests := []struct {
		name    string
		link    string
		wantErr bool
	}{
		{"empty link is allowed", "", false},
		{"https link", "https://www.imdb.com/title/tt0111161/", false},
		{"http link", "http://example.com", false},
		{"no scheme", "www.imdb.com/title/tt0111161", true},
		{"wrong scheme", "ftp://example.com/file", true},
		{"scheme only", "https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLink("imdb_link", tt.link)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLink(%q) error = %v, wantErr %v", tt.link, err, tt.wantErr)
			}
		})
	}
}
