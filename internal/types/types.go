package types

import (
	"time"

	"resumeradar/internal/analysis"
)

// AnalyzeRequest is the body of POST /analyze, /suggestions and /report
type AnalyzeRequest struct {
	Text       string `json:"text"`
	Persona    string `json:"persona"`
	SessionID  string `json:"sessionId,omitempty"`
	Generation uint64 `json:"generation,omitempty"` // Caller-side edit counter, optional
}

// ReportResponse wraps a report with its session bookkeeping
type ReportResponse struct {
	analysis.Report
	SessionID  string `json:"sessionId,omitempty"`
	Generation uint64 `json:"generation,omitempty"`
	Stale      bool   `json:"stale,omitempty"` // A newer run for the same session was issued first
}

// CreateSessionRequest is the body of POST /sessions
type CreateSessionRequest struct {
	Persona string `json:"persona"`
}

// SessionView is the public state of a session
type SessionView struct {
	ID         string             `json:"id"`
	Persona    analysis.PersonaID `json:"persona"`
	CreatedAt  time.Time          `json:"createdAt"`
	Applied    []string           `json:"applied"`
	Generation uint64             `json:"generation"`
	Latest     *analysis.Report   `json:"latest,omitempty"`
}

// ApplyRequest is the body of POST /sessions/{id}/applied
type ApplyRequest struct {
	SuggestionID string `json:"suggestionId"`
}

// ApplyResponse reports the applied set after a suggestion was recorded
type ApplyResponse struct {
	SessionID string   `json:"sessionId"`
	Added     bool     `json:"added"` // false when the id was already applied
	Applied   []string `json:"applied"`
}

// PersonaList is the loaded persona table
type PersonaList struct {
	Default  analysis.PersonaID         `json:"default"`
	Personas []analysis.PersonaTemplate `json:"personas"`
}

// TrendList is the loaded trend table and where it came from
type TrendList struct {
	Source string                `json:"source"`
	Trends []analysis.TrendEntry `json:"trends"`
}

// ErrorResponse is the body of every non-2xx API response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
