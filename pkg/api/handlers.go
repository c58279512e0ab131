package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jiro4989/tkfmw/pkg/errors"
	"github.com/jiro4989/tkfmw/pkg/geometry"
	"github.com/jiro4989/tkfmw/pkg/imgio"
	"github.com/jiro4989/tkfmw/pkg/session"
)

// layerRequest is the body for POST /v1/layer.
type layerRequest struct {
	X         int `json:"x"`
	Y         int `json:"y"`
	Width     int `json:"width"`
	Height    int `json:"height"`
	MaxWidth  int `json:"max_width"`
	MaxHeight int `json:"max_height"`
}

// handleLayer computes a layer partition for a focus rectangle.
func (s *Server) handleLayer(w http.ResponseWriter, r *http.Request) {
	var req layerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if err := errors.ValidateBounds(req.MaxWidth, req.MaxHeight); err != nil {
		writeError(w, err)
		return
	}

	layer := geometry.Partition(req.X, req.Y, req.Width, req.Height, req.MaxWidth, req.MaxHeight)
	writeJSON(w, http.StatusOK, layer)
}

// tilePosRequest is the body for POST /v1/tilepos.
type tilePosRequest struct {
	Index  int `json:"index"`
	Rows   int `json:"rows"`
	Cols   int `json:"cols"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// handleTilePos computes the pixel offset for a tile index.
func (s *Server) handleTilePos(w http.ResponseWriter, r *http.Request) {
	var req tilePosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	pos := geometry.TilePosition(req.Index, req.Rows, req.Cols, req.Width, req.Height)
	writeJSON(w, http.StatusOK, pos)
}

// handleCrop accepts a multipart image upload plus a focus rectangle
// and responds with the cropped image as PNG.
func (s *Server) handleCrop(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid multipart form"))
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "missing image field"))
		return
	}
	defer file.Close()

	img, err := imgio.Decode(file)
	if err != nil {
		writeError(w, err)
		return
	}

	focus := geometry.Rect{
		X:      formInt(r, "x"),
		Y:      formInt(r, "y"),
		Width:  formInt(r, "width"),
		Height: formInt(r, "height"),
	}
	layer := geometry.PartitionRect(focus, img.Bounds().Dx(), img.Bounds().Dy())
	if layer.Focus.Empty() {
		writeError(w, errors.New(errors.ErrCodeInvalidRect, "focus rectangle is empty after clamping"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := imgio.Encode(w, imgio.CropRect(img, layer.Focus), "png"); err != nil {
		s.logger.Error("encode crop failed", "err", err)
	}
}

// createSessionRequest is the body for POST /v1/sessions.
type createSessionRequest struct {
	Image     string        `json:"image"`
	ImageHash string        `json:"image_hash"`
	Focus     geometry.Rect `json:"focus"`
	MaxWidth  int           `json:"max_width"`
	MaxHeight int           `json:"max_height"`
}

// handleCreateSession computes the layer for the request and stores it
// as a new session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if req.Image == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "image is required"))
		return
	}
	if err := errors.ValidateBounds(req.MaxWidth, req.MaxHeight); err != nil {
		writeError(w, err)
		return
	}

	layer := geometry.PartitionRect(req.Focus, req.MaxWidth, req.MaxHeight)
	sess := session.New(req.Image, req.ImageHash, layer, s.ttl)
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "failed to store session"))
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

// handleGetSession returns a stored session.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		if stderrors.Is(err, session.ErrNotFound) || stderrors.Is(err, session.ErrExpired) {
			writeError(w, errors.Wrap(errors.ErrCodeSessionNotFound, err, "session %s", id))
			return
		}
		writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "failed to load session"))
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// handleDeleteSession removes a stored session.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.sessions.Delete(r.Context(), id); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "failed to delete session"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// formInt reads an integer form value, defaulting to zero.
func formInt(r *http.Request, key string) int {
	v, _ := strconv.Atoi(r.FormValue(key))
	return v
}
