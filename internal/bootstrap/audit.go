package bootstrap

import "context"

// AuditLog is a process lifecycle event worth keeping outside the request log.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
