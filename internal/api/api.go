package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/joescharf/issueboard/internal/board"
	"github.com/joescharf/issueboard/internal/detail"
	"github.com/joescharf/issueboard/internal/dnd"
	"github.com/joescharf/issueboard/internal/models"
	"github.com/joescharf/issueboard/internal/refdata"
	"github.com/joescharf/issueboard/internal/sessions"
)

// SessionCookie names the cookie that binds a browser to its board.
const SessionCookie = "issueboard_session"

// Triager suggests a department for an issue.
type Triager interface {
	SuggestDepartment(ctx context.Context, issue *models.Issue, departments []string) (string, error)
}

// Server provides the REST API handlers.
type Server struct {
	sessions *sessions.Manager
	triage   Triager
	log      *slog.Logger
}

// NewServer creates a new API server.
// The triager may be nil if no API key is configured.
func NewServer(m *sessions.Manager, t Triager, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{sessions: m, triage: t, log: logger}
}

// Router returns an http.Handler for the API routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/board", s.getBoard)
	mux.HandleFunc("PUT /api/v1/board/filter", s.setFilter)
	mux.HandleFunc("GET /api/v1/departments", s.listDepartments)

	mux.HandleFunc("GET /api/v1/issues/{id}", s.getIssue)
	mux.HandleFunc("POST /api/v1/issues/{id}/status", s.moveIssue)
	mux.HandleFunc("POST /api/v1/issues/{id}/triage", s.triageIssue)

	mux.HandleFunc("POST /api/v1/drag/start", s.dragStart)
	mux.HandleFunc("POST /api/v1/drag/end", s.dragEnd)

	mux.HandleFunc("GET /api/v1/detail", s.getDetail)
	mux.HandleFunc("POST /api/v1/detail/open", s.openDetail)
	mux.HandleFunc("POST /api/v1/detail/close", s.closeDetail)
	mux.HandleFunc("POST /api/v1/detail/edit", s.editDetail)
	mux.HandleFunc("PUT /api/v1/detail/assignee", s.selectAssignee)
	mux.HandleFunc("POST /api/v1/detail/save", s.saveDetail)
	mux.HandleFunc("POST /api/v1/detail/cancel", s.cancelDetail)
	mux.HandleFunc("POST /api/v1/detail/reassign", s.openReassign)
	mux.HandleFunc("PUT /api/v1/detail/reassign", s.updateReassign)
	mux.HandleFunc("POST /api/v1/detail/reassign/confirm", s.confirmReassign)
	mux.HandleFunc("POST /api/v1/detail/reassign/cancel", s.cancelReassign)

	mux.HandleFunc("DELETE /api/v1/session", s.endSession)

	return corsMiddleware(s.sessionMiddleware(mux))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type pageKey struct{}

type sessionInfo struct {
	id   string
	page *sessions.Page
}

// sessionMiddleware binds the request to its session, creating one (and
// setting the cookie) when the browser has none.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(SessionCookie); err == nil {
			id = c.Value
		}
		newID, page := s.sessions.Get(id)
		if newID != id {
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    newID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), pageKey{}, sessionInfo{id: newID, page: page})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func session(r *http.Request) sessionInfo {
	info, _ := r.Context().Value(pageKey{}).(sessionInfo)
	return info
}

func page(r *http.Request) *sessions.Page {
	return session(r).page
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}

// writeDetailResult maps a detail-flow error to a status, or writes the page on success.
func writeDetailResult(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, page(r).Snapshot())
	case errors.Is(err, detail.ErrUnknownIssue):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, detail.ErrNotStaff), errors.Is(err, detail.ErrUnknownDepartment):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusConflict, err.Error())
	}
}

// --- Board ---

func (s *Server) getBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, page(r).Snapshot())
}

func (s *Server) setFilter(w http.ResponseWriter, r *http.Request) {
	var f board.Filter
	if !decode(w, r, &f) {
		return
	}
	if f.Priority != "" && f.Priority != board.AllPriorities {
		pr, err := models.ParsePriority(f.Priority)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		f.Priority = pr.String()
	}
	p := page(r)
	p.SetFilter(f)
	writeJSON(w, http.StatusOK, p.Snapshot())
}

type departmentsResponse struct {
	Departments []string            `json:"departments"`
	Staff       map[string][]string `json:"staff"`
}

func (s *Server) listDepartments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, departmentsResponse{
		Departments: refdata.Departments(),
		Staff:       refdata.StaffTable(),
	})
}

// --- Issues ---

func (s *Server) getIssue(w http.ResponseWriter, r *http.Request) {
	issue, ok := page(r).Store().Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "issue not found")
		return
	}
	writeJSON(w, http.StatusOK, issue)
}

type moveRequest struct {
	Status models.Status `json:"status"`
}

func (s *Server) moveIssue(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !decode(w, r, &req) {
		return
	}
	p := page(r)
	if _, err := p.Move(r.PathValue("id"), req.Status); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p.Snapshot())
}

type triageResponse struct {
	IssueID    string `json:"issue_id"`
	Department string `json:"department"`
}

func (s *Server) triageIssue(w http.ResponseWriter, r *http.Request) {
	if s.triage == nil {
		writeError(w, http.StatusServiceUnavailable, "triage is not configured (set anthropic.api_key)")
		return
	}
	issue, ok := page(r).Store().Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "issue not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	dept, err := s.triage.SuggestDepartment(ctx, issue, refdata.Departments())
	if err != nil {
		s.log.Error("triage failed", "issue", issue.ID, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, triageResponse{IssueID: issue.ID, Department: dept})
}

// --- Drag ---

type dragRequest struct {
	Subject string `json:"subject"`
	Target  string `json:"target"`
}

type dragEndResponse struct {
	Outcome dnd.Outcome       `json:"outcome"`
	Board   sessions.Snapshot `json:"board"`
}

func (s *Server) dragStart(w http.ResponseWriter, r *http.Request) {
	var req dragRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Subject == "" {
		writeError(w, http.StatusBadRequest, "subject is required")
		return
	}
	p := page(r)
	p.DragStart(req.Subject)
	writeJSON(w, http.StatusOK, p.Snapshot())
}

func (s *Server) dragEnd(w http.ResponseWriter, r *http.Request) {
	var req dragRequest
	if !decode(w, r, &req) {
		return
	}
	p := page(r)
	out := p.DragEnd(req.Subject, req.Target)
	writeJSON(w, http.StatusOK, dragEndResponse{Outcome: out, Board: p.Snapshot()})
}

// --- Detail ---

type openRequest struct {
	ID string `json:"id"`
}

type assigneeRequest struct {
	Assignee string `json:"assignee"`
}

type reassignRequest struct {
	Department string `json:"department"`
	Reason     string `json:"reason"`
}

func (s *Server) getDetail(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, page(r).Snapshot().Detail)
}

func (s *Server) openDetail(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if !decode(w, r, &req) {
		return
	}
	writeDetailResult(w, r, page(r).OpenIssue(req.ID))
}

func (s *Server) closeDetail(w http.ResponseWriter, r *http.Request) {
	page(r).CloseIssue()
	writeDetailResult(w, r, nil)
}

func (s *Server) editDetail(w http.ResponseWriter, r *http.Request) {
	writeDetailResult(w, r, page(r).Edit())
}

func (s *Server) selectAssignee(w http.ResponseWriter, r *http.Request) {
	var req assigneeRequest
	if !decode(w, r, &req) {
		return
	}
	writeDetailResult(w, r, page(r).SelectAssignee(req.Assignee))
}

func (s *Server) saveDetail(w http.ResponseWriter, r *http.Request) {
	writeDetailResult(w, r, page(r).Save())
}

func (s *Server) cancelDetail(w http.ResponseWriter, r *http.Request) {
	writeDetailResult(w, r, page(r).Cancel())
}

func (s *Server) openReassign(w http.ResponseWriter, r *http.Request) {
	writeDetailResult(w, r, page(r).OpenReassign())
}

func (s *Server) updateReassign(w http.ResponseWriter, r *http.Request) {
	var req reassignRequest
	if !decode(w, r, &req) {
		return
	}
	writeDetailResult(w, r, page(r).UpdateReassign(req.Department, req.Reason))
}

// confirmReassign accepts an optional {department, reason} body. When present
// the drafts are set and confirmed under one page lock.
func (s *Server) confirmReassign(w http.ResponseWriter, r *http.Request) {
	var req *reassignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	p := page(r)
	if req == nil {
		writeDetailResult(w, r, p.ConfirmReassign())
		return
	}
	writeDetailResult(w, r, p.SubmitReassign(req.Department, req.Reason))
}

func (s *Server) cancelReassign(w http.ResponseWriter, r *http.Request) {
	writeDetailResult(w, r, page(r).CancelReassign())
}

// --- Session ---

func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.End(session(r).id)
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}
