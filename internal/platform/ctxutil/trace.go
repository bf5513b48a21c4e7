package ctxutil

import "context"

type traceDataKey struct{}

// TraceData identifies one request across log lines and response headers.
// TraceID groups a whole call chain, RequestID names this hop alone.
type TraceData struct {
	TraceID   string
	RequestID string
}

// Fields renders the non-empty ids as logger key/value pairs.
func (td *TraceData) Fields() []interface{} {
	if td == nil {
		return nil
	}
	var out []interface{}
	if td.TraceID != "" {
		out = append(out, "trace_id", td.TraceID)
	}
	if td.RequestID != "" {
		out = append(out, "request_id", td.RequestID)
	}
	return out
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}
