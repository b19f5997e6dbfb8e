package server

import (
	"context"
	"fmt"
	"net/http"

	"resumeradar/internal/analysis"
	"resumeradar/internal/errors"
	"resumeradar/internal/session"
	"resumeradar/internal/types"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// analysisHandler serves /analyze, /suggestions and /report. A resume too short to analyze
// is a normal 200 response with status no_analysis
func (s *Server) analysisHandler(operation string, include analysis.Include) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req types.AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			writeError(w, err)
			return
		}

		var sess *session.Session
		if req.SessionID != "" {
			var err error
			if sess, err = s.Sessions.Get(req.SessionID); err != nil {
				writeError(w, err)
				return
			}
		}

		persona, err := s.resolvePersona(req.Persona, sess)
		if err != nil {
			writeError(w, err)
			return
		}

		// scores-only runs leave the session's latest report alone so its suggestions stay
		// applicable
		tracked := sess != nil && include&analysis.IncludeSuggestions != 0
		var gen session.Generation
		if tracked {
			if gen, err = beginRun(sess, req.Generation); err != nil {
				writeError(w, err)
				return
			}
		}

		report, err := s.metrics.TrackAnalysis(ctx, s.tracer, operation, persona,
			func(ctx context.Context) (analysis.Report, error) {
				oteltrace.SpanFromContext(ctx).SetAttributes(attribute.Int("request.text_length", len(req.Text)))
				return s.Engine.Report(req.Text, persona, include)
			})
		if err != nil {
			writeError(w, err)
			return
		}

		resp := types.ReportResponse{Report: report}
		if sess != nil {
			resp.SessionID = sess.ID
		}
		if tracked {
			resp.Generation = uint64(gen)
			if !sess.Latest.Commit(gen, report) {
				resp.Stale = true
				s.metrics.RecordStaleResult(ctx, "http")
				s.Logger.Debug("Superseded analysis result",
					"session_id", sess.ID, "generation", gen, "operation", operation)
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// beginRun tags a run for sess. A caller-supplied generation is honored so clients can
// number their own edits; otherwise the session issues the next one
func beginRun(sess *session.Session, requested uint64) (session.Generation, error) {
	if requested == 0 {
		return sess.Latest.Begin(), nil
	}
	gen := session.Generation(requested)
	if !sess.Latest.Observe(gen) {
		return 0, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("generation must not exceed %d", uint64(session.MaxGeneration)), nil)
	}
	return gen, nil
}

// resolvePersona picks the request persona, then the session's, then the server default
func (s *Server) resolvePersona(raw string, sess *session.Session) (analysis.PersonaID, error) {
	if raw == "" {
		if sess != nil {
			return sess.Persona, nil
		}
		return s.DefaultPersona, nil
	}
	return analysis.ParsePersona(raw)
}

func (s *Server) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req types.CreateSessionRequest
	if r.ContentLength != 0 {
		if err := parseJSONRequest(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}

	persona, err := s.resolvePersona(req.Persona, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	if _, ok := s.Engine.Rules().Persona(persona); !ok {
		writeError(w, errors.NewValidationError(errors.ErrCodeUnknownPersona,
			"persona "+string(persona)+" is not loaded", nil))
		return
	}

	sess := s.Sessions.Create(persona)
	s.Logger.Debug("Session created", "session_id", sess.ID, "persona", persona)
	writeJSON(w, http.StatusCreated, sessionView(sess))
}

func (s *Server) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionView(sess))
}

func (s *Server) applySuggestionHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req types.ApplyRequest
	if err := parseJSONRequest(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.SuggestionID == "" {
		writeError(w, errors.NewValidationError(errors.ErrCodeInvalidRequest, "suggestionId is required", nil))
		return
	}

	added, err := sess.Apply(req.SuggestionID)
	if err != nil {
		writeError(w, err)
		return
	}
	if added {
		s.metrics.RecordSuggestionApplied(r.Context(), req.SuggestionID)
	}

	writeJSON(w, http.StatusOK, types.ApplyResponse{
		SessionID: sess.ID,
		Added:     added,
		Applied:   sess.Applied.IDs(),
	})
}

func (s *Server) personasHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.PersonaList{
		Default:  s.DefaultPersona,
		Personas: s.Engine.Rules().Personas,
	})
}

func (s *Server) trendsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.TrendList{
		Source: s.RulesSource.Trends,
		Trends: s.Engine.Rules().Trends,
	})
}

func sessionView(sess *session.Session) types.SessionView {
	view := types.SessionView{
		ID:        sess.ID,
		Persona:   sess.Persona,
		CreatedAt: sess.CreatedAt,
		Applied:   sess.Applied.IDs(),
	}
	if report, gen, ok := sess.Latest.Load(); ok {
		view.Generation = uint64(gen)
		view.Latest = &report
	}
	return view
}
