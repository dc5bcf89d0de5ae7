package adapthttp

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"fitplanner/internal/app"
	"fitplanner/internal/domain"
)

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"goals":     domain.Goals,
		"diets":     domain.DietTypes,
		"regions":   domain.Regions,
		"budgets":   domain.Budgets,
		"equipment": domain.Equipments,
		"age":       map[string]any{"min": domain.MinAge, "max": domain.MaxAge},
		"weight":    map[string]any{"min": domain.MinWeight, "max": domain.MaxWeight},
		"height":    map[string]any{"min": domain.MinHeight, "max": domain.MaxHeight},
	})
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	in, err := decodePlanInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	plan, pos, err := s.plans.Generate(r.Context(), sessionFromContext(r), in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.refreshSessionCookie(w, r)
	writeJSON(w, http.StatusOK, map[string]any{
		"position":  pos,
		"plan":      plan,
		"summary":   app.Summarize(*plan),
		"report":    s.reports.Lines(*plan),
		"reportUrl": fmt.Sprintf("/api/history/%d/report.pdf", pos),
	})
}

// decodePlanInput reads a submission sent either as JSON or as an HTML form.
func decodePlanInput(r *http.Request) (domain.PlanInput, error) {
	var in domain.PlanInput
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := parseJSON(r, &in); err != nil {
			return in, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		return in, nil
	}

	if err := r.ParseForm(); err != nil {
		return in, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	var err error
	if in.Age, err = strconv.Atoi(r.PostForm.Get("age")); err != nil {
		return in, fmt.Errorf("%w: age must be a whole number", domain.ErrInvalidInput)
	}
	if in.Weight, err = strconv.ParseFloat(r.PostForm.Get("weight"), 64); err != nil {
		return in, fmt.Errorf("%w: weight must be a number", domain.ErrInvalidInput)
	}
	if in.Height, err = strconv.ParseFloat(r.PostForm.Get("height"), 64); err != nil {
		return in, fmt.Errorf("%w: height must be a number", domain.ErrInvalidInput)
	}
	in.Name = r.PostForm.Get("name")
	in.Goal = domain.Goal(r.PostForm.Get("goal"))
	in.DietType = domain.DietType(r.PostForm.Get("diet"))
	in.Region = domain.Region(r.PostForm.Get("region"))
	in.Budget = domain.Budget(r.PostForm.Get("budget"))
	in.Equipment = domain.Equipment(r.PostForm.Get("equipment"))
	return in, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, app.ErrPlanNotFound)
}
