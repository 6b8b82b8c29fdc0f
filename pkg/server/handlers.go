package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/treelayout/pkg/buildinfo"
	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/generate"
	"github.com/matzehuels/treelayout/pkg/pipeline"
	"github.com/matzehuels/treelayout/pkg/storage"
	"github.com/matzehuels/treelayout/pkg/tree"
)

// CreateRequest is the body of POST /v1/layouts.
type CreateRequest struct {
	Name    string           `json:"name,omitempty"`
	Tree    tree.Data        `json:"tree"`
	Options generate.Options `json:"options,omitempty"`
}

// ListResponse is the body of GET /v1/layouts.
type ListResponse struct {
	Layouts []*storage.Document `json:"layouts"`
	Limit   int                 `json:"limit"`
	Offset  int                 `json:"offset"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) createLayout(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, tlerrors.Wrap(tlerrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if err := tlerrors.ValidateLabel(req.Name); err != nil {
		writeError(w, tlerrors.Wrap(tlerrors.ErrCodeInvalidInput, err, "invalid name"))
		return
	}

	t, err := tree.FromData(req.Tree)
	if err != nil {
		writeError(w, err)
		return
	}

	opts := s.defaults
	if v := req.Options.DepthSpacing; v != 0 {
		opts.DepthSpacing = v
	}
	if v := req.Options.OffsetSpacing; v != 0 {
		opts.OffsetSpacing = v
	}
	if v := req.Options.RootGap; v != 0 {
		opts.RootGap = v
	}
	l, err := s.runner.Layout(r.Context(), t, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	gen := opts.GenerateOptions()
	gen.SetDefaults()
	doc := storage.NewDocument(req.Name, t, l, gen)
	if err := s.store.Put(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/layouts/"+doc.ID)
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) listLayouts(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, err)
		return
	}

	docs, err := s.store.List(r.Context(), storage.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []*storage.Document{}
	}
	writeJSON(w, http.StatusOK, ListResponse{Layouts: docs, Limit: limit, Offset: offset})
}

func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	doc, err := s.document(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) deleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := tlerrors.ValidateID(id); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) renderLayout(w http.ResponseWriter, r *http.Request) {
	doc, err := s.document(r)
	if err != nil {
		writeError(w, err)
		return
	}
	t, err := doc.TreeValue()
	if err != nil {
		writeError(w, err)
		return
	}
	l, err := doc.LayoutValue()
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts := s.defaults
	opts.Formats = []string{format}
	if style := q.Get("style"); style != "" {
		opts.Style = style
	}
	if v := q.Get("labels"); v != "" {
		labels, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, tlerrors.Wrap(tlerrors.ErrCodeInvalidInput, err, "invalid labels parameter"))
			return
		}
		opts.Labels = labels
	}

	artifacts, err := s.runner.Render(r.Context(), l, t, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) document(r *http.Request) (*storage.Document, error) {
	id := chi.URLParam(r, "id")
	if err := tlerrors.ValidateID(id); err != nil {
		return nil, err
	}
	return s.store.Get(r.Context(), id)
}

func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, tlerrors.New(tlerrors.ErrCodeInvalidInput, "invalid %s parameter: %q", name, v)
	}
	return n, nil
}
