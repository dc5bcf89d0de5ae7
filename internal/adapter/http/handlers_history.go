package adapthttp

import (
	"net/http"
	"strings"

	"fitplanner/internal/app"
	"fitplanner/internal/domain"
)

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.plans.History(r.Context(), sessionFromContext(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	body := map[string]any{"items": entries}
	if len(entries) == 0 {
		body["message"] = app.EmptyHistoryMessage
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleReportDocument(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.lookupPlan(w, r)
	if !ok {
		return
	}
	report, err := s.reports.Render(*plan)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	attachment(w, report.FileName, report.ContentType, report.Data)
}

func (s *Server) handleReportText(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.lookupPlan(w, r)
	if !ok {
		return
	}
	body := strings.Join(s.reports.Lines(*plan), "\n") + "\n"
	attachment(w, domain.ReportFileName+".txt", "text/plain; charset=utf-8", []byte(body))
}

func (s *Server) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	if err := s.plans.EndSession(r.Context(), sessionFromContext(r)); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) lookupPlan(w http.ResponseWriter, r *http.Request) (*domain.Plan, bool) {
	pos, err := intVar(r, "pos")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	plan, err := s.plans.Get(r.Context(), sessionFromContext(r), pos)
	if isNotFound(err) {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return plan, true
}
