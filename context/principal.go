package context

import (
	"context"

	workspace "github.com/EOEPCA/rm-workspace-api"
)

type contextKey string

const principalCtxKey = contextKey("workspace/principal")

// SetPrincipal sets the calling principal on context.
func SetPrincipal(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, principalCtxKey, principal)
}

// GetPrincipal retrieves the calling principal from context; errors if
// none was set.
func GetPrincipal(ctx context.Context) (string, error) {
	p, ok := ctx.Value(principalCtxKey).(string)
	if !ok || p == "" {
		return "", &workspace.Error{
			Msg:  "principal not found on context",
			Code: workspace.EUnauthorized,
		}
	}

	return p, nil
}
