package usecase

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"StockLens/internal/domain/failure"
	"StockLens/internal/domain/models"
	drepo "StockLens/internal/domain/repository"
	"StockLens/pkg/clock"
	applogger "StockLens/pkg/logger"

	"github.com/google/uuid"
)

// CredentialValidator confirms a bearer secret with the AI provider.
type CredentialValidator interface {
	ValidateCredential(ctx context.Context, secret string) (bool, error)
}

// ModuleValidator resolves and probes catalog modules.
type ModuleValidator interface {
	ModuleCatalog
	Validate(ctx context.Context, sel models.SelectedModule) (bool, error)
}

// SessionConfig controls credential lifetime and the admin override code.
// An empty AdminCode disables the override entirely.
type SessionConfig struct {
	TTL       time.Duration
	AdminCode string
}

type moduleChoice struct {
	ModuleID string
	Override bool
}

// SessionManager keeps one credential and one module choice per session in a
// TTL-bound store. The selected module is derived on every read.
type SessionManager struct {
	store      drepo.SessionStore
	validator  CredentialValidator
	modules    ModuleValidator
	cfg        SessionConfig
	clock      clock.Clock
	log        *applogger.Logger
	newSession func() string
}

func NewSessionManager(store drepo.SessionStore, validator CredentialValidator, modules ModuleValidator, cfg SessionConfig, c clock.Clock, log *applogger.Logger) *SessionManager {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if c == nil {
		c = clock.Real{}
	}
	if log == nil {
		log = applogger.Nop()
	}
	return &SessionManager{
		store:      store,
		validator:  validator,
		modules:    modules,
		cfg:        cfg,
		clock:      c,
		log:        log,
		newSession: uuid.NewString,
	}
}

func credentialKey(sid string) string { return "session:" + sid + ":credential" }
func moduleKey(sid string) string     { return "session:" + sid + ":module" }

// NewSession allocates a fresh session identifier.
func (s *SessionManager) NewSession() string {
	return s.newSession()
}

// SubmitCredential checks and stores apiKey for sid, replacing any previous
// credential and module choice. A matching admin code grants unlimited access
// and skips the provider check.
func (s *SessionManager) SubmitCredential(ctx context.Context, sid, apiKey, adminCode string) (models.Credential, error) {
	apiKey = strings.TrimSpace(apiKey)
	switch {
	case sid == "":
		return models.Credential{}, failure.New(failure.InvalidInput)
	case apiKey == "":
		return models.Credential{}, failure.Newf(failure.InvalidInput, failure.MsgMissingKey)
	case !strings.HasPrefix(apiKey, "sk-"):
		return models.Credential{}, failure.Newf(failure.InvalidInput, failure.MsgBadKeyFormat)
	}

	unlimited := s.adminMatches(adminCode)
	if !unlimited {
		ok, err := s.validator.ValidateCredential(ctx, apiKey)
		if err != nil {
			return models.Credential{}, err
		}
		if !ok {
			return models.Credential{}, failure.New(failure.AuthenticationFailure)
		}
	}

	cred := models.Credential{
		Secret:          apiKey,
		UnlimitedAccess: unlimited,
		ExpiresAt:       s.clock.Now().Add(s.cfg.TTL),
	}
	s.store.Put(credentialKey(sid), cred, s.cfg.TTL)
	s.store.Clear(moduleKey(sid))

	s.log.Info("credential stored",
		applogger.String("session", sid),
		applogger.String("key", cred.Masked()),
		applogger.Bool("unlimited", unlimited),
	)
	return cred, nil
}

// SelectModule validates moduleID with the session's credential and records
// the choice. A quota failure is returned as-is so callers can offer the
// admin override.
func (s *SessionManager) SelectModule(ctx context.Context, sid, moduleID, adminCode string) (models.SelectedModule, error) {
	cred, err := s.credential(sid)
	if err != nil {
		return models.SelectedModule{}, err
	}
	m, ok := s.modules.Lookup(moduleID)
	if !ok {
		return models.SelectedModule{}, failure.Newf(failure.InvalidInput, failure.MsgUnknownModule)
	}

	sel := models.Merge(m, cred, s.adminMatches(adminCode))
	ok, err = s.modules.Validate(ctx, sel)
	if err != nil {
		return models.SelectedModule{}, err
	}
	if !ok {
		return models.SelectedModule{}, failure.Newf(failure.TransportFailure, failure.MsgConnectionTest)
	}

	s.store.Put(moduleKey(sid), moduleChoice{ModuleID: m.ID, Override: sel.UnlimitedAccess && !cred.UnlimitedAccess}, s.remaining(cred))
	return sel, nil
}

// GrantOverride marks the session's credential unlimited when adminCode
// matches. The credential keeps its original expiry.
func (s *SessionManager) GrantOverride(sid, adminCode string) (models.Credential, error) {
	cred, err := s.credential(sid)
	if err != nil {
		return models.Credential{}, err
	}
	if !s.adminMatches(adminCode) {
		s.log.Warn("admin override refused", applogger.String("session", sid))
		return models.Credential{}, failure.Newf(failure.AuthenticationFailure, failure.MsgWrongAdminCode)
	}
	cred.UnlimitedAccess = true
	s.store.Put(credentialKey(sid), cred, s.remaining(cred))
	return cred, nil
}

// Reset drops everything held for sid.
func (s *SessionManager) Reset(sid string) {
	s.store.Clear(credentialKey(sid))
	s.store.Clear(moduleKey(sid))
}

// Active derives the current selection for sid.
func (s *SessionManager) Active(sid string) (models.SelectedModule, error) {
	cred, err := s.credential(sid)
	if err != nil {
		return models.SelectedModule{}, err
	}
	v, ok := s.store.Get(moduleKey(sid))
	if !ok {
		return models.SelectedModule{}, failure.Newf(failure.InvalidInput, failure.MsgSelectModule)
	}
	choice := v.(moduleChoice)
	m, ok := s.modules.Lookup(choice.ModuleID)
	if !ok {
		return models.SelectedModule{}, failure.Newf(failure.InvalidInput, failure.MsgUnknownModule)
	}
	return models.Merge(m, cred, choice.Override), nil
}

// Credential returns the live credential for sid.
func (s *SessionManager) Credential(sid string) (models.Credential, error) {
	return s.credential(sid)
}

func (s *SessionManager) credential(sid string) (models.Credential, error) {
	if sid == "" {
		return models.Credential{}, failure.Newf(failure.InvalidInput, failure.MsgMissingKey)
	}
	v, ok := s.store.Get(credentialKey(sid))
	if !ok {
		return models.Credential{}, failure.Newf(failure.InvalidInput, failure.MsgKeyExpired)
	}
	return v.(models.Credential), nil
}

func (s *SessionManager) remaining(c models.Credential) time.Duration {
	d := c.ExpiresAt.Sub(s.clock.Now())
	if d <= 0 {
		// Put treats non-positive ttl as "no expiry"
		return time.Nanosecond
	}
	return d
}

func (s *SessionManager) adminMatches(code string) bool {
	if s.cfg.AdminCode == "" || code == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(s.cfg.AdminCode)) == 1
}
