package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/lamim/prdforge/internal/wizard"
	"github.com/lamim/prdforge/internal/writer"
)

const maxBodyBytes = 64 * 1024

// errBadRequest marks a request body that could not be decoded
var errBadRequest = errors.New("bad request")

type textRequest struct {
	Text string `json:"text"`
}

type backendRequest struct {
	APIKey  string `json:"api_key"`
	Disable bool   `json:"disable"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Operation string `json:"operation,omitempty"`
}

// sessionView is the JSON representation of a session
type sessionView struct {
	ID     string       `json:"id"`
	State  wizard.State `json:"state"`
	Digest digestView   `json:"digest"`
}

// digestView carries the display-ready splits of the generated documents
type digestView struct {
	CurrentQuestion string                   `json:"current_question,omitempty"`
	QuestionHint    string                   `json:"question_hint,omitempty"`
	Answered        int                      `json:"answered"`
	Required        int                      `json:"required"`
	Iterations      []wizard.IterationDigest `json:"iterations,omitempty"`
	Stories         []wizard.StoryDigest     `json:"stories,omitempty"`
	PRDSections     []wizard.SectionDigest   `json:"prd_sections,omitempty"`
}

func newSessionView(id string, st wizard.State) sessionView {
	d := digestView{Required: wizard.RequiredAnswers}

	var log []wizard.Message
	switch st.Step {
	case wizard.StepBasics:
		log = st.BasicLog
	case wizard.StepDesign:
		log = st.DesignLog
	}
	for i := len(log) - 1; i >= 0; i-- {
		if log[i].IsQuestion() {
			d.CurrentQuestion = wizard.QuestionHeadline(log[i].Content)
			d.QuestionHint = log[i].Hint
			break
		}
	}
	d.Answered = wizard.AnswerCount(log)

	d.Iterations = wizard.ParseIterationSummary(st.IterationSummary)
	d.Stories = wizard.SplitUserStories(st.UserStories)
	d.PRDSections = wizard.ParseSectionSummary(st.PRDSummary)

	return sessionView{ID: id, State: st, Digest: d}
}

type actionFunc func(ctx context.Context, c *wizard.Controller, r *http.Request) error

// action runs fn against the session named in the path and replies with the new snapshot.
// Generations are not aborted when the client goes away.
func (s *Server) action(fn actionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		c, err := s.store.Get(id)
		if err != nil {
			s.writeError(w, id, err)
			return
		}

		if err := fn(context.WithoutCancel(r.Context()), c, r); err != nil {
			s.writeError(w, id, err)
			return
		}
		writeJSON(w, http.StatusOK, newSessionView(id, c.Snapshot()))
	}
}

func withText(fn func(ctx context.Context, c *wizard.Controller, text string) error) actionFunc {
	return func(ctx context.Context, c *wizard.Controller, r *http.Request) error {
		var req textRequest
		if err := decodeJSON(r, &req); err != nil {
			return err
		}
		return fn(ctx, c, req.Text)
	}
}

func submitProblem(ctx context.Context, c *wizard.Controller, text string) error {
	return c.SubmitProblem(ctx, text)
}

func submitAnswer(ctx context.Context, c *wizard.Controller, text string) error {
	return c.SubmitAnswer(ctx, text)
}

func requestModification(ctx context.Context, c *wizard.Controller, text string) error {
	return c.RequestModification(ctx, text)
}

func advance(ctx context.Context, c *wizard.Controller, _ *http.Request) error {
	return c.Advance(ctx)
}

func goBack(_ context.Context, c *wizard.Controller, _ *http.Request) error {
	return c.GoBack()
}

func restart(_ context.Context, c *wizard.Controller, _ *http.Request) error {
	return c.Restart()
}

func configureBackend(ctx context.Context, c *wizard.Controller, r *http.Request) error {
	var req backendRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if req.Disable {
		return c.DisableBackend()
	}
	return c.ConfigureBackend(ctx, req.APIKey)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	id, c, err := s.store.Create()
	if err != nil {
		s.writeError(w, "", err)
		return
	}
	s.updateSessionGauge()
	s.logger.Info("Session created", "id", id, "sessions", s.store.Len())
	writeJSON(w, http.StatusCreated, newSessionView(id, c.Snapshot()))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, err := s.store.Get(id)
	if err != nil {
		s.writeError(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(id, c.Snapshot()))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.Delete(id); err != nil {
		s.writeError(w, id, err)
		return
	}
	s.updateSessionGauge()
	s.logger.Info("Session deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// handleExport returns the final PRD as markdown
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, err := s.store.Get(id)
	if err != nil {
		s.writeError(w, id, err)
		return
	}

	st := c.Snapshot()
	if st.PRD == "" {
		s.writeError(w, id, fmt.Errorf("%w: the PRD has not been generated yet", wizard.ErrValidation))
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="prd.md"`)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, writer.PRDMarkdown(st.PRD)+"\n")
}

// handleSave writes every artifact of the session to the output directory
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, err := s.store.Get(id)
	if err != nil {
		s.writeError(w, id, err)
		return
	}
	if s.exporter == nil {
		writeJSON(w, http.StatusNotImplemented, errorBody{Error: errorDetail{Kind: "unsupported", Message: "export to disk is not configured"}})
		return
	}

	dir, files, err := s.exporter.Export(c.Snapshot())
	if err != nil {
		s.writeError(w, id, fmt.Errorf("%w: %v", wizard.ErrValidation, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"dir": dir, "files": files})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": s.store.Len(),
	})
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

// classify maps an error to its HTTP status and kind
func classify(err error) (int, string) {
	var genErr *wizard.GenerationError
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrSessionLimit):
		return http.StatusServiceUnavailable, "session_limit"
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, wizard.ErrBusy):
		return http.StatusConflict, "busy"
	case errors.Is(err, wizard.ErrMissingCredential):
		return http.StatusPreconditionFailed, "missing_credential"
	case errors.Is(err, wizard.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.As(err, &genErr):
		return http.StatusBadGateway, "generation"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (s *Server) writeError(w http.ResponseWriter, id string, err error) {
	status, kind := classify(err)
	detail := errorDetail{Kind: kind, Message: err.Error()}

	var genErr *wizard.GenerationError
	if errors.As(err, &genErr) {
		detail.Operation = genErr.Operation
	}

	if status >= http.StatusInternalServerError {
		s.logger.Warn("Request failed", "session", id, "kind", kind, "error", err)
	} else {
		s.logger.Debug("Request rejected", "session", id, "kind", kind, "error", err)
	}
	writeJSON(w, status, errorBody{Error: detail})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
