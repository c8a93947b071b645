package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kjannette/ifsol-backend/internal/imagegen"
)

func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	png, ok := s.renderCard(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", "attachment; filename=ifsol-result.png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (s *Server) handleImagePreview(w http.ResponseWriter, r *http.Request) {
	png, ok := s.renderCard(w, r)
	if !ok {
		return
	}
	name, err := s.deps.Images.Save(png)
	if err != nil {
		fmt.Printf("[IMAGE] Error storing preview: %v\n", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate image")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"imageUrl": name})
}

func (s *Server) handleImagePreviewInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "This endpoint requires a POST request with product data"})
}

func (s *Server) renderCard(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	var card imagegen.Card
	if err := decodeJSON(w, r, &card); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	png, err := s.deps.Renderer.Render(card)
	if err != nil {
		fmt.Printf("[IMAGE] Error rendering card for %q: %v\n", card.ProductName, err)
		writeError(w, http.StatusInternalServerError, "Failed to generate image")
		return nil, false
	}
	return png, true
}

func (s *Server) handleSharedImage(w http.ResponseWriter, r *http.Request) {
	s.serveImage(w, r.PathValue("filename"))
}

func (s *Server) handleImageByQuery(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("file")
	if name == "" {
		writeError(w, http.StatusBadRequest, "Missing filename parameter")
		return
	}
	s.serveImage(w, name)
}

func (s *Server) serveImage(w http.ResponseWriter, name string) {
	data, err := s.deps.Images.Open(name)
	switch {
	case errors.Is(err, imagegen.ErrInvalidName):
		writeError(w, http.StatusBadRequest, "Invalid filename")
		return
	case errors.Is(err, imagegen.ErrNotFound):
		writeError(w, http.StatusNotFound, "Image not found")
		return
	case err != nil:
		fmt.Printf("[IMAGE] Error serving %s: %v\n", name, err)
		writeError(w, http.StatusInternalServerError, "Error serving image")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=31536000")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
