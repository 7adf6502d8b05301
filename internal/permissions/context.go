package permissions

import "context"

type ctxKey string

const contextPermissionsKey ctxKey = "_permissions"

func FromContext(ctx context.Context) []Permission {
	if held, ok := ctx.Value(contextPermissionsKey).([]Permission); ok {
		return held
	}
	return nil
}

func ContextWith(ctx context.Context, held []Permission) context.Context {
	return context.WithValue(ctx, contextPermissionsKey, held)
}
