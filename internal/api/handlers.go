package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dnrgps/dnrgps/pkg/buildinfo"
	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/graphics"
	"github.com/dnrgps/dnrgps/pkg/layertree"
	"github.com/dnrgps/dnrgps/pkg/table"
)

// =============================================================================
// Wire types
// =============================================================================

type healthResponse struct {
	Status   string `json:"status"`
	Attached bool   `json:"attached"`
	Version  string `json:"version"`
}

type layerItem struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

type pointRequest struct {
	Lat         float64               `json:"lat"`
	Lon         float64               `json:"lon"`
	Heading     float64               `json:"heading"`
	Breadcrumbs *graphics.Breadcrumbs `json:"breadcrumbs,omitempty"`
}

type cepRequest struct {
	Lat   float64   `json:"lat"`
	Lon   float64   `json:"lon"`
	Radii []float64 `json:"radii"`
}

type refreshRequest struct {
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	Percent float64  `json:"percent"`
}

type idResponse struct {
	ID graphics.GraphicID `json:"id"`
}

type injectResponse struct {
	Rows     int `json:"rows"`
	Graphics int `json:"graphics"`
	Skipped  int `json:"skipped"`
}

type refreshResponse struct {
	Moved bool `json:"moved"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Attached: s.ctl.Attached(),
		Version:  buildinfo.Version,
	})
}

func (s *Server) layers(w http.ResponseWriter, r *http.Request) {
	ls, err := s.ctl.FeatureLayers()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layerItems(ls))
}

func (s *Server) allLayers(w http.ResponseWriter, r *http.Request) {
	ls, err := s.ctl.AllFeatureLayers()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layerItems(ls))
}

func layerItems(ls []layertree.NamedLayer) []layerItem {
	items := make([]layerItem, 0, len(ls))
	for _, nl := range ls {
		items = append(items, layerItem{Address: nl.Address.String(), Name: nl.Name})
	}
	return items
}

func (s *Server) layerData(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t, err := s.ctl.LayerData(r.Context(), q.Get("address"), splitList(q.Get("fields")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeTable(w, t)
}

func (s *Server) graphics(w http.ResponseWriter, r *http.Request) {
	t, err := s.ctl.Graphics(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeTable(w, t)
}

func (s *Server) addGraphics(w http.ResponseWriter, r *http.Request) {
	t, err := table.Decode(r.Body, table.JSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.ctl.AddGraphics(r.Context(), t)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, injectResponse(res))
}

func (s *Server) drawPoint(w http.ResponseWriter, r *http.Request) {
	var req pointRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Breadcrumbs != nil {
		s.ctl.Breadcrumbs = *req.Breadcrumbs
	}
	id, err := s.ctl.DrawPoint(r.Context(), req.Lat, req.Lon, req.Heading)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) drawCEP(w http.ResponseWriter, r *http.Request) {
	var req cepRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.ctl.DrawCEP(r.Context(), req.Lat, req.Lon, req.Radii)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) clearAll(w http.ResponseWriter, r *http.Request) {
	if err := s.ctl.ClearAll(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "graphic id %q is not an integer", raw))
		return
	}
	if err := s.ctl.Clear(r.Context(), graphics.GraphicID(id)); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Lat == nil || req.Lon == nil {
		if err := s.ctl.RefreshDisplay(); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, refreshResponse{})
		return
	}
	if req.Percent == 0 {
		req.Percent = 1
	}
	moved, err := s.ctl.RefreshDisplayAt(*req.Lat, *req.Lon, req.Percent)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Moved: moved})
}

// =============================================================================
// Helpers
// =============================================================================

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func writeTable(w http.ResponseWriter, t *table.Table) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = table.Encode(w, t, table.JSON)
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
