package models

import "time"

// Capability tags advertised by modules.
const (
	CapMarketAnalysis    = "market_analysis"
	CapSentimentAnalysis = "sentiment_analysis"
	CapTechnicalAnalysis = "technical_analysis"
)

// ModuleDescriptor is a static catalog entry.
type ModuleDescriptor struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Type         string   `json:"type"`
	Capabilities []string `json:"capabilities"`
	MaxTokens    int      `json:"maxTokens"`
	Experimental bool     `json:"isExperimental"`
}

// Credential is the bearer secret plus the admin override flag.
type Credential struct {
	Secret          string    `json:"-"`
	UnlimitedAccess bool      `json:"unlimitedAccess"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// Masked returns a log-safe representation of the secret.
func (c Credential) Masked() string {
	return MaskSecret(c.Secret)
}

// MaskSecret keeps only the last four characters of s.
func MaskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return "sk-****" + s[len(s)-4:]
}

// SelectedModule is a descriptor merged with the active credential. It is the
// only shape the orchestrator and registry validator consume.
type SelectedModule struct {
	Module          ModuleDescriptor `json:"module"`
	Credential      Credential       `json:"-"`
	UnlimitedAccess bool             `json:"unlimitedAccess"`
}

// Merge builds a SelectedModule. The override flag is granted by either the
// credential itself or an explicit override for this selection.
func Merge(m ModuleDescriptor, c Credential, override bool) SelectedModule {
	return SelectedModule{
		Module:          m,
		Credential:      c,
		UnlimitedAccess: c.UnlimitedAccess || override,
	}
}
