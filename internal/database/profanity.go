package database

import (
	"bufio"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const profanityListURL = "https://raw.githubusercontent.com/LDNOOBW/List-of-Dirty-Naughty-Obscene-and-Otherwise-Bad-Words/refs/heads/master/en"

// SeedProfanityList downloads and seeds the profanity word list used to
// screen user-submitted trivia questions and suggestions.
func (db *DB) SeedProfanityList() error {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM profanity_words").Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check profanity word count: %w", err)
	}

	if count > 0 {
		log.Printf("Profanity filter already populated with %d words", count)
		return nil
	}

	log.Println("Downloading profanity word list...")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(profanityListURL)
	if err != nil {
		return fmt.Errorf("failed to download profanity list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status code from profanity list URL: %d", resp.StatusCode)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuery := db.Dialect.RewriteQuery("INSERT INTO profanity_words (word) VALUES (?)")
	stmt, err := tx.Prepare(insertQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	scanner := bufio.NewScanner(resp.Body)
	wordsAdded := 0
	for scanner.Scan() {
		word := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if word == "" {
			continue
		}

		// Skip duplicates or per-row errors, continue adding others
		if _, err := stmt.Exec(word); err != nil {
			continue
		}
		wordsAdded++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading profanity list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Profanity filter populated with %d words", wordsAdded)
	return nil
}

// ContainsProfanity reports whether any word of the given text is in the
// profanity list. Text is lowercased and split on whitespace; punctuation
// around words is trimmed.
func (db *DB) ContainsProfanity(text string) (bool, error) {
	for _, raw := range strings.Fields(strings.ToLower(text)) {
		word := strings.Trim(raw, ".,!?;:\"'()[]")
		if word == "" {
			continue
		}

		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM profanity_words WHERE word = ?", word).Scan(&count)
		if err != nil {
			return false, fmt.Errorf("failed to check word: %w", err)
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
