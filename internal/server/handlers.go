package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cobalt-ridge/gleaner/internal/cache"
	"github.com/cobalt-ridge/gleaner/internal/document"
	"github.com/cobalt-ridge/gleaner/internal/export"
	"github.com/cobalt-ridge/gleaner/internal/model"
)

type extractRequest struct {
	Text          *string  `json:"text"`
	EntityTypes   []string `json:"entity_types"`
	ExtractEvents *bool    `json:"extract_events"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, msgTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, "No text provided")
		return
	}
	if req.Text == nil {
		writeError(w, http.StatusBadRequest, "No text provided")
		return
	}
	text := strings.TrimSpace(*req.Text)
	if text == "" {
		writeError(w, http.StatusBadRequest, "Empty text provided")
		return
	}

	selected := req.EntityTypes
	if selected == nil {
		selected = []string{}
	}
	includeEvents := true
	if req.ExtractEvents != nil {
		includeEvents = *req.ExtractEvents
	}

	key := cache.Key(text, selected)
	if cached, ok := s.cache.Get(key); ok {
		slog.Debug("serving cached extraction", "key", key)
		writeJSON(w, http.StatusOK, cached)
		return
	}

	started := s.now()
	res := s.engine.Process(r.Context(), text, selected, includeEvents)
	elapsed := s.now().Sub(started)

	res.Metadata = &model.Metadata{
		ProcessingTime: math.Round(elapsed.Seconds()*1000) / 1000,
		Timestamp:      s.now().Format(time.RFC3339),
		TextLength:     len(text),
		SelectedTypes:  selected,
	}

	s.cache.Put(key, res)
	writeJSON(w, http.StatusOK, res)
}

type uploadResponse struct {
	Success     bool     `json:"success"`
	Filenames   []string `json:"filenames"`
	FullContent string   `json:"full_content"`
	Size        int      `json:"size"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, msgTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, "No files provided")
		return
	}

	files := r.MultipartForm.File["files"]
	named := false
	for _, fh := range files {
		if fh.Filename != "" {
			named = true
			break
		}
	}
	if !named {
		writeError(w, http.StatusBadRequest, "No files provided")
		return
	}

	var contents, names []string
	for _, fh := range files {
		if fh.Filename == "" || !document.Allowed(fh.Filename) {
			continue
		}
		content, err := s.extractUpload(r, fh)
		if err != nil {
			slog.Warn("upload processing failed", "file", fh.Filename, "error", err)
			continue
		}
		contents = append(contents, content)
		names = append(names, fh.Filename)
	}
	if len(contents) == 0 {
		msg := "No valid files found. Allowed types: " + strings.Join(document.AllowedExtensions(), ", ")
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	full := document.Join(contents)
	writeJSON(w, http.StatusOK, uploadResponse{
		Success:     true,
		Filenames:   names,
		FullContent: full,
		Size:        len(full),
	})
}

// extractUpload spools one uploaded file to disk so extension-dispatched
// readers (pdftotext, zip) can open it by path.
func (s *Server) extractUpload(r *http.Request, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	tmp, err := os.CreateTemp("", "gleaner-upload-*"+filepath.Ext(fh.Filename))
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, f); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	return s.reader.Extract(r.Context(), tmp.Name()), nil
}

type exportRequest struct {
	Format  string          `json:"format"`
	Results json.RawMessage `json:"results"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "No data provided")
		return
	}

	format := req.Format
	if format == "" {
		format = "json"
	}
	renderer, ok := export.For(format)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unsupported export format")
		return
	}

	var res model.Result
	if len(req.Results) > 0 {
		if err := json.Unmarshal(req.Results, &res); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid results payload")
			return
		}
	}

	data, err := renderer.Render(res)
	if err != nil {
		slog.Error("export render failed", "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	if fn := renderer.Filename(); fn != "" {
		w.Header().Set("Content-Disposition", "attachment; filename="+fn)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("write export", "error", err)
	}
}

func (s *Server) handleSampleText(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.samplePath)
	if err != nil {
		writeError(w, http.StatusNotFound, "Sample text file not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"text":  strings.TrimSpace(string(data)),
		"title": "Sample News Text",
	})
}
