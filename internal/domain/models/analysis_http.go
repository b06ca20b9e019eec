package models

import "time"

// Requests for the analysis HTTP endpoints.

type CredentialRequest struct {
	APIKey    string `json:"apiKey" validate:"required"`
	AdminCode string `json:"adminCode"`
}

type ModuleRequest struct {
	ModuleID  string `json:"moduleId" validate:"required"`
	AdminCode string `json:"adminCode"`
}

type OverrideRequest struct {
	AdminCode string `json:"adminCode" validate:"required"`
}

type AnalyzeRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=16"`
}

type SessionResponse struct {
	SessionID       string    `json:"sessionId"`
	UnlimitedAccess bool      `json:"unlimitedAccess"`
	ExpiresAt       time.Time `json:"expiresAt"`
	ModuleID        string    `json:"moduleId,omitempty"`
}

type AnalyzeResponse struct {
	Summary  string          `json:"summary"`
	Analysis MarketAnalysis  `json:"analysis"`
	Context  string          `json:"context"`
	Progress []ProgressEvent `json:"progress"`
}

// StreamFrame is one websocket message of the analysis stream.
type StreamFrame struct {
	Type     string          `json:"type"` // progress | result | error
	Progress *ProgressEvent  `json:"progress,omitempty"`
	Result   *AnalysisResult `json:"result,omitempty"`
	Error    *StreamError    `json:"error,omitempty"`
}

type StreamError struct {
	Kind    string `json:"kind"`
	Stage   string `json:"stage,omitempty"`
	Message string `json:"message"`
}
