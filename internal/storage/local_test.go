package storage

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8080", "test-secret")
	if err != nil {
		t.Fatalf("NewLocalStore() error: %v", err)
	}
	return store
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	content := []byte("club meeting notes")
	if err := store.Save(ctx, "abc123.txt", "text/plain", bytes.NewReader(content)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reader, err := store.Open(ctx, "abc123.txt")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer reader.Close()

	got, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("read back %q, want %q", got, content)
	}
}

func TestLocalStoreOpenMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Open(context.Background(), "no-such-key")
	if err != ErrNotFound {
		t.Errorf("Open() error = %v, want ErrNotFound", err)
	}
}

func TestLocalStoreDeleteMissingIsNoError(t *testing.T) {
	store := newTestStore(t)

	if err := store.Delete(context.Background(), "never-existed"); err != nil {
		t.Errorf("Delete() on missing key error = %v, want nil", err)
	}
}

func TestLocalStoreRejectsTraversalKeys(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	keys := []string{"../outside", "a/../../etc/passwd", ".."}
	for _, key := range keys {
		if err := store.Save(ctx, key, "text/plain", strings.NewReader("x")); err == nil {
			t.Errorf("Save(%q) accepted a traversal key", key)
		}
	}
}

func TestSignedURLVerifies(t *testing.T) {
	store := newTestStore(t)

	signed, err := store.SignedURL(context.Background(), "report.pdf", time.Hour)
	if err != nil {
		t.Fatalf("SignedURL() error: %v", err)
	}

	parsed, err := url.Parse(signed)
	if err != nil {
		t.Fatalf("signed URL does not parse: %v", err)
	}
	expires := parsed.Query().Get("expires")
	sig := parsed.Query().Get("sig")

	if !store.VerifySignature("report.pdf", expires, sig) {
		t.Error("VerifySignature() rejected a freshly signed URL")
	}
	if store.VerifySignature("other.pdf", expires, sig) {
		t.Error("VerifySignature() accepted a signature for a different key")
	}
	if store.VerifySignature("report.pdf", expires, sig+"00") {
		t.Error("VerifySignature() accepted a tampered signature")
	}
}

func TestSignedURLExpires(t *testing.T) {
	store := newTestStore(t)

	signed, err := store.SignedURL(context.Background(), "old.pdf", -time.Minute)
	if err != nil {
		t.Fatalf("SignedURL() error: %v", err)
	}

	parsed, _ := url.Parse(signed)
	expires := parsed.Query().Get("expires")
	sig := parsed.Query().Get("sig")

	if store.VerifySignature("old.pdf", expires, sig) {
		t.Error("VerifySignature() accepted an expired URL")
	}
}

func TestSignedURLDiffersPerSecret(t *testing.T) {
	storeA := newTestStore(t)
	storeB, err := NewLocalStore(t.TempDir(), "http://localhost:8080", "another-secret")
	if err != nil {
		t.Fatalf("NewLocalStore() error: %v", err)
	}

	signed, _ := storeA.SignedURL(context.Background(), "doc.txt", time.Hour)
	parsed, _ := url.Parse(signed)
	expires := parsed.Query().Get("expires")
	sig := parsed.Query().Get("sig")

	if storeB.VerifySignature("doc.txt", expires, sig) {
		t.Error("VerifySignature() accepted a signature made with a different secret")
	}
}
