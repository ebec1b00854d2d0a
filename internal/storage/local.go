package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// LocalStore keeps objects as plain files under a base directory.
// Download URLs point at the application's own /files/{key} route and
// carry an HMAC signature over the key and expiry, so the route can
// serve them without a session.
type LocalStore struct {
	baseDir string
	baseURL string
	secret  []byte
}

// NewLocalStore creates a local store rooted at baseDir. baseURL is the
// application base URL used to build download links.
func NewLocalStore(baseDir, baseURL, secret string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStore{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  []byte(secret),
	}, nil
}

// path maps a key to a file path, refusing keys that escape the base
// directory.
func (s *LocalStore) path(key string) (string, error) {
	cleaned := filepath.Clean("/" + key)
	if cleaned == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}

// Save writes the object under key, replacing any previous object
func (s *LocalStore) Save(ctx context.Context, key, contentType string, r io.Reader) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write file: %w", err)
	}

	return f.Close()
}

// Open returns a reader over the object's bytes
func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Delete removes the object. Deleting a missing key is not an error.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// SignedURL returns a /files/{key} link valid until the expiry
func (s *LocalStore) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	expires := time.Now().Add(expiry).Unix()
	sig := s.sign(key, expires)
	return fmt.Sprintf("%s/files/%s?expires=%d&sig=%s",
		s.baseURL, url.PathEscape(key), expires, sig), nil
}

// VerifySignature checks a /files/{key} request's signature and expiry
func (s *LocalStore) VerifySignature(key, expiresParam, sig string) bool {
	expires, err := strconv.ParseInt(expiresParam, 10, 64)
	if err != nil {
		return false
	}
	if time.Now().Unix() > expires {
		return false
	}
	expected := s.sign(key, expires)
	return hmac.Equal([]byte(expected), []byte(sig))
}

func (s *LocalStore) sign(key string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%d", key, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
