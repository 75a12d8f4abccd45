package domain

import "context"

type subjectKey struct{}

// WithSubject returns a context carrying the verified account subject of the caller.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

// SubjectFromContext returns the caller's verified subject, or "" for guests and unverified tokens.
func SubjectFromContext(ctx context.Context) string {
	if subject, ok := ctx.Value(subjectKey{}).(string); ok {
		return subject
	}
	return ""
}
