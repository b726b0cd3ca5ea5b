package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"svw.info/sodo/internal/domain"
	"svw.info/sodo/internal/usecase"
)

type Handler struct {
	UC      *usecase.Service
	Metrics *Metrics
}

func New(uc *usecase.Service, m *Metrics) *Handler { return &Handler{UC: uc, Metrics: m} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/generate", h.handleGenerate)
	mux.HandleFunc("/api/solve", h.handleSolve)
	mux.HandleFunc("/api/validate", h.handleValidate)
	mux.HandleFunc("/api/hint", h.handleHint)
	mux.HandleFunc("/api/save", h.handleSave)
	mux.HandleFunc("/api/load", h.handleLoad)
	mux.HandleFunc("/api/list", h.handleList)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// gridPayload carries a grid in either interchange form; the compact
// string wins when both are present.
type gridPayload struct {
	Grid  string  `json:"grid,omitempty"`
	Cells [][]int `json:"cells,omitempty"`
}

func (p *gridPayload) toGrid() (*domain.Grid, error) {
	if p == nil {
		return nil, domain.ErrMalformedInput
	}
	if p.Grid != "" {
		return domain.ParseCompact(p.Grid)
	}
	if p.Cells != nil {
		return domain.FromNested(p.Cells)
	}
	return nil, domain.ErrMalformedInput
}

func payloadFrom(g *domain.Grid) gridPayload {
	return gridPayload{Grid: domain.FormatCompact(g), Cells: domain.ToNested(g)}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// statusFor maps the engine error taxonomy onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMalformedInput),
		errors.Is(err, domain.ErrOutOfRange),
		errors.Is(err, domain.ErrInvalidGrid):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnsolvable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrGenerationTimeout):
		return http.StatusServiceUnavailable
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type errResp struct {
	Error string `json:"error"`
}

func (h *Handler) fail(w http.ResponseWriter, op string, start time.Time, err error) {
	h.Metrics.observe(op, start, false)
	writeJSON(w, statusFor(err), errResp{Error: err.Error()})
}

// ---- Generate ----

type generateReq struct {
	Difficulty string `json:"difficulty,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
	Box        int    `json:"box,omitempty"`
}

type generateResp struct {
	ID         string      `json:"id"`
	Puzzle     gridPayload `json:"puzzle"`
	Solution   gridPayload `json:"solution"`
	Seed       int64       `json:"seed"`
	Difficulty string      `json:"difficulty"`
	DurationMs int64       `json:"durationMs"`
	Nodes      int         `json:"nodes"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errResp{Error: "method not allowed"})
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
		h.fail(w, "generate", start, domain.ErrMalformedInput)
		return
	}
	diff, err := domain.ParseDifficulty(req.Difficulty)
	if err != nil {
		h.fail(w, "generate", start, err)
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p, st, err := h.UC.Generate(r.Context(), seed, diff, req.Box)
	if err != nil {
		h.fail(w, "generate", start, err)
		return
	}
	h.Metrics.observe("generate", start, true)
	h.Metrics.observeNodes("generate", st.Nodes)
	writeJSON(w, http.StatusOK, generateResp{
		ID:         p.ID,
		Puzzle:     payloadFrom(p.Puzzle),
		Solution:   payloadFrom(p.Solution),
		Seed:       p.Seed,
		Difficulty: p.Difficulty.String(),
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
	})
}

// ---- Solve ----

type solveResp struct {
	Solution   gridPayload `json:"solution"`
	DurationMs int64       `json:"durationMs"`
	Nodes      int         `json:"nodes"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errResp{Error: "method not allowed"})
		return
	}
	var req gridPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, "solve", start, domain.ErrMalformedInput)
		return
	}
	g, err := req.toGrid()
	if err != nil {
		h.fail(w, "solve", start, err)
		return
	}
	out, st, err := h.UC.Solve(r.Context(), g)
	if err != nil {
		h.fail(w, "solve", start, err)
		return
	}
	h.Metrics.observe("solve", start, true)
	h.Metrics.observeNodes("solve", st.Nodes)
	writeJSON(w, http.StatusOK, solveResp{
		Solution:   payloadFrom(out),
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
	})
}

// ---- Validate ----

// validateReq checks one grid for legality, or, when solution is present,
// checks it as a completion of grid.
type validateReq struct {
	gridPayload
	Solution *gridPayload `json:"solution,omitempty"`
}

type validateResp struct {
	Valid     bool               `json:"valid"`
	Conflicts []domain.CellCoord `json:"conflicts,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errResp{Error: "method not allowed"})
		return
	}
	var req validateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, "validate", start, domain.ErrMalformedInput)
		return
	}
	g, err := req.toGrid()
	if err != nil {
		h.fail(w, "validate", start, err)
		return
	}
	if req.Solution != nil {
		sol, err := req.Solution.toGrid()
		if err != nil {
			h.fail(w, "validate", start, err)
			return
		}
		ok, err := h.UC.ValidateSolution(r.Context(), g, sol)
		if err != nil {
			h.fail(w, "validate", start, err)
			return
		}
		h.Metrics.observe("validate", start, true)
		writeJSON(w, http.StatusOK, validateResp{Valid: ok})
		return
	}
	ok, conflicts, err := h.UC.ValidateGrid(r.Context(), g)
	if err != nil {
		h.fail(w, "validate", start, err)
		return
	}
	h.Metrics.observe("validate", start, true)
	writeJSON(w, http.StatusOK, validateResp{Valid: ok, Conflicts: conflicts})
}

// ---- Hint ----

type hintResp struct {
	Found bool         `json:"found"`
	Hint  *domain.Hint `json:"hint,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errResp{Error: "method not allowed"})
		return
	}
	var req gridPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, "hint", start, domain.ErrMalformedInput)
		return
	}
	g, err := req.toGrid()
	if err != nil {
		h.fail(w, "hint", start, err)
		return
	}
	hh, found, err := h.UC.Hint(r.Context(), g)
	if err != nil {
		h.fail(w, "hint", start, err)
		return
	}
	h.Metrics.observe("hint", start, true)
	resp := hintResp{Found: found}
	if found {
		resp.Hint = &hh
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- Save / Load / List ----

type saveResp struct {
	ID string `json:"id"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errResp{Error: "method not allowed"})
		return
	}
	var p domain.Puzzle
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Puzzle == nil {
		h.fail(w, "save", start, domain.ErrMalformedInput)
		return
	}
	if err := p.Puzzle.CheckShape(); err != nil {
		h.fail(w, "save", start, err)
		return
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixNano()
	}
	if err := h.UC.Save(r.Context(), &p); err != nil {
		h.fail(w, "save", start, err)
		return
	}
	h.Metrics.observe("save", start, true)
	writeJSON(w, http.StatusOK, saveResp{ID: p.ID})
}

type loadReq struct {
	ID string `json:"id"`
}

type loadResp struct {
	Puzzle *domain.Puzzle `json:"puzzle"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errResp{Error: "method not allowed"})
		return
	}
	var req loadReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		h.fail(w, "load", start, domain.ErrMalformedInput)
		return
	}
	p, err := h.UC.Load(r.Context(), req.ID)
	if err != nil {
		h.fail(w, "load", start, err)
		return
	}
	h.Metrics.observe("load", start, true)
	writeJSON(w, http.StatusOK, loadResp{Puzzle: p})
}

type listResp struct {
	Puzzles []domain.PuzzleMeta `json:"puzzles"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errResp{Error: "method not allowed"})
		return
	}
	ps, err := h.UC.List(r.Context())
	if err != nil {
		h.fail(w, "list", start, err)
		return
	}
	h.Metrics.observe("list", start, true)
	writeJSON(w, http.StatusOK, listResp{Puzzles: ps})
}
