package goSession

import (
	"context"
	"time"

	internalaudit "github.com/MrEthical07/goSession/internal/audit"
	"github.com/google/uuid"
)

const (
	auditEventRegisterSuccess   = "register_success"
	auditEventRegisterDuplicate = "register_duplicate"
	auditEventRegisterFailure   = "register_failure"
	auditEventLoginSuccess      = "login_success"
	auditEventLoginFailure      = "login_failure"
	auditEventResolveSuccess    = "resolve_success"
	auditEventResolveInvalid    = "resolve_invalid_session"
)

// emitAudit stamps the event envelope (id, timestamp, client IP) and hands it
// to the async dispatcher. metadata is lazy so callers pay nothing when audit
// is disabled.
func (e *Engine) emitAudit(
	ctx context.Context,
	eventType, username, sessionID string,
	success bool,
	failure error,
	metadata func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	event := internalaudit.Event{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Username:  username,
		SessionID: sessionID,
		IP:        clientIPFromContext(ctx),
		Success:   success,
	}
	if failure != nil {
		event.Error = failure.Error()
	}
	if metadata != nil {
		event.Metadata = metadata()
	}

	e.audit.Emit(ctx, event)
}
