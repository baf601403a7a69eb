package server

import (
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/path"
	"github.com/matzehuels/kinship/pkg/pipeline"
)

// NoPathMessage is reported when two members are not connected.
const NoPathMessage = "No path exists between these members"

type errorResponse struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

type pathResponse struct {
	Outcome     string      `json:"outcome"`
	From        string      `json:"from"`
	To          string      `json:"to"`
	Nodes       []string    `json:"nodes,omitempty"`
	Steps       []path.Step `json:"steps,omitempty"`
	TotalWeight float64     `json:"total_weight"`
	Message     string      `json:"message,omitempty"`
}

type healthResponse struct {
	Status   string     `json:"status"`
	Snapshot string     `json:"snapshot,omitempty"`
	BuiltAt  *time.Time `json:"built_at,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if snap := s.runner.Current(); snap != nil {
		resp.Snapshot = snap.ID.String()
		resp.BuiltAt = &snap.BuiltAt
	} else {
		resp.Status = "loading"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	rows, err := s.runner.Members(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sum, err := s.runner.Summary(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from == "" || to == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidQuery, "from and to are required"))
		return
	}
	res, err := s.runner.Path(r.Context(), from, to)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := pathResponse{
		Outcome:     res.Outcome.String(),
		From:        from,
		To:          to,
		Nodes:       res.Nodes,
		Steps:       res.Steps,
		TotalWeight: res.TotalWeight,
	}
	if !res.Found() {
		resp.Message = NoPathMessage
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReach(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	if from == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidQuery, "from is required"))
		return
	}
	dist, err := s.runner.Reach(r.Context(), from)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dist)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	seed, err := seedParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := s.runner.Layout(r.Context(), seed)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleGraphSVG(w http.ResponseWriter, r *http.Request) {
	seed, err := seedParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	svg, err := s.runner.Render(r.Context(), pipeline.RenderOptions{
		From:   q.Get("from"),
		To:     q.Get("to"),
		Format: pipeline.DefaultFormat,
		Engine: q.Get("engine"),
		Seed:   seed,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	snap, err := s.runner.Reload(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Summary())
}

func seedParam(r *http.Request) (uint64, error) {
	v := r.URL.Query().Get("seed")
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "seed must be a non-negative integer")
	}
	return n, nil
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidQuery, errors.ErrCodeInvalidInput, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeDuplicateNode, errors.ErrCodeUnknownEndpoint, errors.ErrCodeInvalidWeight,
		errors.ErrCodeInvalidDataset, errors.ErrCodeInvalidFormat:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeFileNotFound, errors.ErrCodeNetwork:
		return http.StatusBadGateway
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if s.runner.Current() == nil && status == http.StatusInternalServerError {
		status = http.StatusServiceUnavailable
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", RequestID(r.Context()))
	}
	writeJSON(w, status, errorResponse{Code: code, Error: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
