package user

import "context"

type ctxKey int

const userCtxKey ctxKey = iota

// NewContextWithUser stores the email of the authenticated user.
func NewContextWithUser(baseCtx context.Context, email string) context.Context {
	return context.WithValue(baseCtx, userCtxKey, email)
}

func FromContext(ctx context.Context) (email string, ok bool) {
	email, ok = ctx.Value(userCtxKey).(string)
	return email, ok && email != ""
}
