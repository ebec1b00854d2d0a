package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"flicksclub/internal/service"
	"flicksclub/internal/storage"
)

// DocumentHandler handles document upload and download HTTP requests.
// The local store is only set when files live on disk; S3 downloads go
// straight to the bucket via presigned URLs.
type DocumentHandler struct {
	documentService *service.DocumentService
	local           *storage.LocalStore
	maxUploadSize   int64
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *service.DocumentService, local *storage.LocalStore, maxUploadSize int64) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		local:           local,
		maxUploadSize:   maxUploadSize,
	}
}

// List returns the member's documents
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	documents, err := h.documentService.GetDocuments(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to list documents", err)
		return
	}

	views := make([]documentView, 0, len(documents))
	for i := range documents {
		views = append(views, newDocumentView(&documents[i]))
	}
	respondWithJSON(w, http.StatusOK, views)
}

// Upload stores a multipart file upload
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+1024)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, "File is too large", "", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing file field", "", nil)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	document, err := h.documentService.Upload(r.Context(), user.ID, header.Filename, contentType, header.Size, file)
	if err != nil {
		if errors.Is(err, service.ErrFileTooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "File is too large", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to store document", err)
		}
		return
	}
	respondWithJSON(w, http.StatusCreated, newDocumentView(document))
}

// DownloadURL returns a short-lived signed URL for a document
func (h *DocumentHandler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid document ID", "", nil)
		return
	}

	url, err := h.documentService.SignedURL(r.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			respondWithError(w, http.StatusNotFound, "Document not found", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to sign download URL", err)
		}
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"url": url})
}

// Delete removes a document and its stored bytes
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid document ID", "", nil)
		return
	}

	if err := h.documentService.Delete(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			respondWithError(w, http.StatusNotFound, "Document not found", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to delete document", err)
		}
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ServeFile streams a locally stored file. Auth happens through the
// HMAC signature baked into the URL, not the session, so links work in
// contexts without cookies.
func (h *DocumentHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	if h.local == nil {
		http.NotFound(w, r)
		return
	}

	key := r.PathValue("key")
	expires := r.URL.Query().Get("expires")
	sig := r.URL.Query().Get("sig")
	if !h.local.VerifySignature(key, expires, sig) {
		respondWithError(w, http.StatusForbidden, "Invalid or expired link", "", nil)
		return
	}

	document, reader, err := h.documentService.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, service.ErrDocumentNotFound) {
			http.NotFound(w, r)
		} else {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to open document", err)
		}
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", document.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", document.Name))
	if document.SizeBytes > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", document.SizeBytes))
	}
	if _, err := io.Copy(w, reader); err != nil {
		log.Printf("Failed to stream document %s: %v", key, err)
	}
}
