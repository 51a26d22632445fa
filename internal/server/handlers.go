package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rfgds/rfgds/pkg/catalog"
	"github.com/rfgds/rfgds/pkg/generate"
	"github.com/rfgds/rfgds/pkg/geometry"
	"github.com/rfgds/rfgds/pkg/layout"
	"github.com/rfgds/rfgds/pkg/pipeline"
	"github.com/rfgds/rfgds/pkg/resolve"
	"github.com/rfgds/rfgds/pkg/tech"
)

// maxDesignSize caps uploaded design bodies at 4 MiB.
const maxDesignSize = 4 << 20

// convertResponse is the body returned by POST /convert. Artifact
// bytes are base64-encoded by encoding/json.
type convertResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Technology string            `json:"technology"`
	Components int               `json:"components"`
	Polygons   int               `json:"polygons"`
	Ports      int               `json:"ports"`
	Duration   string            `json:"duration"`
	Cached     bool              `json:"cached"`
	Artifacts  map[string][]byte `json:"artifacts,omitempty"`
}

// errorResponse is the body returned for any failed request.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleConvert runs the pipeline on the posted YAML design and stores
// the conversion in the catalog.
//
// Query parameters: formats (comma-separated, default gds),
// technology (override), refresh (bypass cache).
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	source, err := io.ReadAll(io.LimitReader(r.Body, maxDesignSize))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if len(source) == 0 {
		s.writeError(w, r, http.StatusBadRequest, errors.New("empty request body"))
		return
	}

	opts := pipeline.Options{
		DesignSource: source,
		Technology:   r.URL.Query().Get("technology"),
		Refresh:      r.URL.Query().Get("refresh") == "true",
		Logger:       s.logger,
	}
	if formats := r.URL.Query().Get("formats"); formats != "" {
		opts.Formats = strings.Split(formats, ",")
	}

	start := time.Now()
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	layoutJSON := result.Artifacts[pipeline.FormatJSON]
	if layoutJSON == nil {
		layoutJSON, err = layout.MarshalNode(result.Layout.Root)
		if err != nil {
			s.writeError(w, r, http.StatusInternalServerError, err)
			return
		}
	}

	doc := catalog.NewDocument(result.Design, source, layoutJSON, result.Artifacts)
	if err := s.store.Put(r.Context(), doc); err != nil {
		s.logger.Error("catalog put failed", "error", err, "request_id", requestIDFrom(r.Context()))
	}

	writeJSON(w, http.StatusOK, convertResponse{
		ID:         doc.ID,
		Name:       result.Design.Name,
		Technology: result.Technology.Name,
		Components: result.Stats.Components,
		Polygons:   result.Stats.Polygons,
		Ports:      result.Stats.Ports,
		Duration:   time.Since(start).Round(time.Millisecond).String(),
		Cached:     result.CacheInfo.LayoutHit,
		Artifacts:  result.Artifacts,
	})
}

func (s *Server) handleListDesigns(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if entries == nil {
		entries = []catalog.Summary{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetDesign(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDesign(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListComponents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, generate.All())
}

// technologyInfo is the listing view of one registered technology.
type technologyInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Layers      []string `json:"layers"`
}

func (s *Server) handleListTechnologies(w http.ResponseWriter, r *http.Request) {
	var out []technologyInfo
	for _, name := range tech.Names() {
		t, err := tech.Get(name)
		if err != nil {
			continue
		}
		out = append(out, technologyInfo{
			Name:        t.Name,
			Description: t.Description,
			Layers:      t.LayerRoles(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// statusFor maps pipeline errors onto HTTP status codes: malformed
// designs are the client's fault (422), missing documents are 404,
// anything else is a 500.
func statusFor(err error) int {
	if errors.Is(err, catalog.ErrNotFound) {
		return http.StatusNotFound
	}

	var (
		paramErr        *geometry.ParameterError
		missingErr      *generate.MissingParameterError
		invalidErr      *generate.InvalidParameterError
		unknownTypeErr  *generate.UnknownTypeError
		unmappedErr     *tech.UnmappedLayerError
		ambiguousErr    *resolve.AmbiguousPlacementError
		unplacedErr     *resolve.UnplacedComponentError
		inconsistentErr *resolve.InconsistentPlacementError
		validationErr   *layout.ValidationError
	)
	switch {
	case errors.As(err, &paramErr),
		errors.As(err, &missingErr),
		errors.As(err, &invalidErr),
		errors.As(err, &unknownTypeErr),
		errors.As(err, &unmappedErr),
		errors.As(err, &ambiguousErr),
		errors.As(err, &unplacedErr),
		errors.As(err, &inconsistentErr),
		errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	}

	// Parse and schema-validation failures surface as wrapped plain
	// errors from the parse stage.
	if strings.Contains(err.Error(), "parse:") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", requestIDFrom(r.Context()))
	}
	writeJSON(w, status, errorResponse{
		Error:     err.Error(),
		RequestID: requestIDFrom(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
