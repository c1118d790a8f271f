package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/arbor/pkg/buildinfo"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/pipeline"
	"github.com/matzehuels/arbor/pkg/render"
	"github.com/matzehuels/arbor/pkg/tree"
)

// HeaderCache reports whether the answer came from the cache ("hit") or was
// computed ("miss").
const HeaderCache = "X-Arbor-Cache"

// request is the body of POST /v1/layouts and POST /v1/render. Exactly one
// of Tree and Layout is set; layouts are only accepted by render.
type request struct {
	Tree    *tree.Node      `json:"tree,omitempty"`
	Layout  *tree.Layout    `json:"layout,omitempty"`
	Options json.RawMessage `json:"options,omitempty"`
}

// renderResponse answers a render request for several formats. Artifacts
// are base64 in JSON.
type renderResponse struct {
	LayoutID  string            `json:"layout_id"`
	Cached    bool              `json:"cached"`
	Artifacts map[string][]byte `json:"artifacts"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, opts, err := s.decode(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if req.Layout != nil {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "layouts endpoint takes a tree, not a layout"))
		return
	}
	root, err := requireTree(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	l, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), root, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	data, err := tree.MarshalLayout(l)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set(HeaderCache, cacheStatus(hit))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, opts, err := s.decode(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, r, err)
		return
	}

	var (
		l         tree.Layout
		artifacts map[string][]byte
		cached    bool
	)
	if req.Layout != nil {
		if req.Tree != nil {
			writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "send either a tree or a layout, not both"))
			return
		}
		l = *req.Layout
		if err := l.Validate(); err != nil {
			writeError(w, r, err)
			return
		}
		artifacts, cached, err = s.runner.RenderWithCacheInfo(r.Context(), l, opts)
	} else {
		var root *hierarchy.Node[tree.Payload]
		if root, err = requireTree(req); err != nil {
			writeError(w, r, err)
			return
		}
		var result *pipeline.Result
		if result, err = s.runner.Execute(r.Context(), root, opts); err == nil {
			l, artifacts = result.Layout, result.Artifacts
			cached = result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
		}
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set(HeaderCache, cacheStatus(cached))
	if len(opts.Formats) == 1 {
		format := opts.Formats[0]
		data := artifacts[format]
		w.Header().Set("Content-Type", render.ContentType(format))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	writeJSON(w, http.StatusOK, renderResponse{LayoutID: l.ID, Cached: cached, Artifacts: artifacts})
}

// decode reads the request body and lays its options over the server
// defaults. Unknown fields are rejected.
func (s *Server) decode(r *http.Request) (request, pipeline.Options, error) {
	var req request
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, pipeline.Options{}, decodeError("request", err)
	}

	opts := s.defaults.Clone()
	if len(req.Options) > 0 {
		odec := json.NewDecoder(bytes.NewReader(req.Options))
		odec.DisallowUnknownFields()
		if err := odec.Decode(&opts); err != nil {
			return req, pipeline.Options{}, decodeError("options", err)
		}
	}
	opts.Logger = s.logger
	return req, opts, nil
}

func decodeError(what string, err error) error {
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s: %v", what, err)
}

func requireTree(req request) (*hierarchy.Node[tree.Payload], error) {
	if req.Tree == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request must contain a tree")
	}
	return tree.ToHierarchy(*req.Tree)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
