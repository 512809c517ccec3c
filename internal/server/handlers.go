package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/go-chi/chi"
	"github.com/google/uuid"

	"maskeraser"
	"maskeraser/internal/gemini"
	"maskeraser/internal/httputil"
)

// defaultInstruction is used when the client sends no instruction text.
const defaultInstruction = "Remove the watermark inside the white area of the mask and reconstruct the background seamlessly."

type uploadResponse struct {
	ID            string `json:"id"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Preview       string `json:"preview"`
	PreviewWidth  int    `json:"preview_width"`
	PreviewHeight int    `json:"preview_height"`
}

type selectionRequest struct {
	// Either a raw gesture in display coordinates plus the viewport it
	// happened in, or a ready-made rectangle in image-native coordinates.
	Viewport *maskeraser.Viewport  `json:"viewport,omitempty"`
	Press    *maskeraser.Point     `json:"press,omitempty"`
	Moves    []maskeraser.Point    `json:"moves,omitempty"`
	Release  *maskeraser.Point     `json:"release,omitempty"`
	Rect     *maskeraser.Rectangle `json:"rect,omitempty"`
}

type selectionResponse struct {
	Updated bool                  `json:"updated"`
	Rect    *maskeraser.Rectangle `json:"rect"`
	Mask    *string               `json:"mask"`
}

type editRequest struct {
	Instruction string `json:"instruction"`
}

type editResponse struct {
	Image string `json:"image"`
	MIME  string `json:"mime"`
	Text  string `json:"text,omitempty"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(s.cfg.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "upload too large or malformed", err.Error(), "upload")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "missing image file", err.Error(), "upload")
		return
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(file); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "reading upload failed", err.Error(), "upload")
		return
	}

	img, format, err := maskeraser.DecodeImageBytes(buf.Bytes())
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "unsupported or corrupt image", err.Error(), "upload")
		return
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// The browser needs a display-sized preview; the mask is always
	// rasterized against the natural resolution.
	preview := img
	if width > s.cfg.PreviewMaxPx || height > s.cfg.PreviewMaxPx {
		preview = imaging.Fit(img, s.cfg.PreviewMaxPx, s.cfg.PreviewMaxPx, imaging.Lanczos)
	}
	previewURL, err := maskeraser.PNGDataURL(preview)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "preview encoding failed", err.Error(), "upload")
		return
	}

	sess := &Session{
		ID:     uuid.NewString(),
		Source: buf.Bytes(),
		MIME:   "image/" + format,
		Width:  width,
		Height: height,
	}
	s.store.Put(sess)

	s.log.WithField("id", sess.ID).WithField("size", fmt.Sprintf("%dx%d", width, height)).Info("image uploaded")

	pb := preview.Bounds()
	httputil.WriteJSON(w, http.StatusCreated, uploadResponse{
		ID:            sess.ID,
		Width:         width,
		Height:        height,
		Preview:       previewURL,
		PreviewWidth:  pb.Dx(),
		PreviewHeight: pb.Dy(),
	})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) *Session {
	sess, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "unknown image", err.Error(), "session")
		return nil
	}
	return sess
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	var req selectionRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "malformed selection payload", err.Error(), "selection")
		return
	}

	var sel *maskeraser.Selection
	var err error
	switch {
	case req.Rect != nil:
		sel, err = rasterizeRect(*req.Rect, sess.Width, sess.Height)
	case req.Press != nil && req.Release != nil:
		sel, err = s.runGesture(sess, req)
	default:
		httputil.WriteError(w, http.StatusBadRequest, "selection needs a rect or a press/release pair", "", "selection")
		return
	}
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "selection failed", err.Error(), "selection")
		return
	}

	if sel == nil {
		// Degenerate gesture: nothing committed, prior selection kept.
		writeSelectionState(w, sess, false)
		return
	}

	var png bytes.Buffer
	if err := maskeraser.EncodePNG(&png, sel.Mask); err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "mask encoding failed", err.Error(), "selection")
		return
	}
	sess.SetSelection(sel, png.Bytes())

	s.log.WithField("id", sess.ID).WithField("rect", fmt.Sprintf("%+v", sel.Rect)).Info("selection committed")

	writeSelectionState(w, sess, true)
}

// runGesture feeds the raw display-space gesture through the core pipeline.
func (s *Server) runGesture(sess *Session, req selectionRequest) (*maskeraser.Selection, error) {
	vp := maskeraser.Viewport{}
	if req.Viewport != nil {
		vp = *req.Viewport
	}
	// The server is authoritative for the natural resolution.
	vp.NaturalWidth = sess.Width
	vp.NaturalHeight = sess.Height

	ed := maskeraser.NewEditor(vp, nil)
	ed.Press(req.Press.X, req.Press.Y)
	for _, m := range req.Moves {
		ed.Move(m.X, m.Y)
	}
	return ed.Release(req.Release.X, req.Release.Y)
}

// rasterizeRect commits a rectangle already expressed in native coordinates.
func rasterizeRect(rect maskeraser.Rectangle, width, height int) (*maskeraser.Selection, error) {
	mask, err := maskeraser.RasterizeMask(rect, width, height)
	if err != nil || mask == nil {
		return nil, err
	}
	url, err := maskeraser.PNGDataURL(mask)
	if err != nil {
		return nil, err
	}
	return &maskeraser.Selection{Rect: rect, Mask: mask, DataURL: url}, nil
}

func writeSelectionState(w http.ResponseWriter, sess *Session, updated bool) {
	resp := selectionResponse{Updated: updated}
	if sel, _ := sess.Selection(); sel != nil {
		rect := sel.Rect
		url := sel.DataURL
		resp.Rect = &rect
		resp.Mask = &url
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	sess.ClearSelection()
	httputil.WriteJSON(w, http.StatusOK, selectionResponse{Updated: true})
}

func (s *Server) handleMaskPNG(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	_, png := sess.Selection()
	if png == nil {
		httputil.WriteError(w, http.StatusNotFound, "no active selection", "", "selection")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png) //nolint:errcheck
}

func (s *Server) handleSuggestion(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	rect, ok := maskeraser.SuggestSelection(sess.Width, sess.Height)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "image too small for a suggestion", "", "suggestion")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]maskeraser.Rectangle{"rect": rect})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	if s.editor == nil {
		httputil.WriteError(w, http.StatusServiceUnavailable, "editing is not configured", "no API key supplied", "config")
		return
	}

	var req editRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "malformed edit payload", err.Error(), "edit")
		return
	}
	if req.Instruction == "" {
		req.Instruction = defaultInstruction
	}

	_, maskPNG := sess.Selection()
	result, err := s.editor.EditImage(r.Context(), gemini.EditRequest{
		Image:       sess.Source,
		MIME:        sess.MIME,
		Mask:        maskPNG,
		Instruction: req.Instruction,
		AspectRatio: maskeraser.AspectRatioHint(sess.Width, sess.Height),
	})
	if err != nil {
		s.writeEditError(w, sess.ID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, editResponse{
		Image: maskeraser.DataURL(result.MIME, result.Image),
		MIME:  result.MIME,
		Text:  result.Text,
	})
}

// writeEditError maps client errors to the spec's taxonomy: refusals are a
// distinct category; everything else is a generic failure with detail. The
// session keeps its pre-request state either way.
func (s *Server) writeEditError(w http.ResponseWriter, id string, err error) {
	s.log.WithField("id", id).WithError(err).Warn("edit failed")

	var refusal *gemini.RefusalError
	switch {
	case errors.As(err, &refusal):
		httputil.WriteError(w, http.StatusUnprocessableEntity, "the model declined this edit", refusal.Detail, "refusal")
	case errors.Is(err, gemini.ErrNoImage):
		httputil.WriteError(w, http.StatusBadGateway, "the model returned no image", err.Error(), "no_image")
	default:
		httputil.WriteError(w, http.StatusBadGateway, "edit request failed", err.Error(), "upstream")
	}
}
