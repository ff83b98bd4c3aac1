// Package logging is the structured logger shared by the storefront shell
// and the development API server.
//
// Services depend on the Logger interface only. New picks the backing
// adapter from the configured log format: SlogLogger for "text" and "json",
// ZerologLogger for the interactive "console" format.
//
// A request id stored with ContextWithRequestID is added to every record
// logged with that context, so client and server lines of the same call can
// be matched.
package logging

import "context"

// Logger is a context-aware, structured logger. args are key/value pairs:
//
//	logger.Info(ctx, "cart loaded", "items", n, "source", "guest")
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that adds args to every record.
	With(args ...any) Logger
}

// RequestIDKey is the attribute name under which the request id is logged.
const RequestIDKey = "request_id"

type requestIDCtxKey struct{}

// ContextWithRequestID returns a copy of ctx carrying id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey{}, id)
}

// RequestIDFromContext returns the id stored by ContextWithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDCtxKey{}).(string)
	return id
}

// withContextArgs appends the attributes carried by ctx to args.
func withContextArgs(ctx context.Context, args []any) []any {
	id := RequestIDFromContext(ctx)
	if id == "" {
		return args
	}
	return append(args[:len(args):len(args)], RequestIDKey, id)
}
