package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeySource     = "source"
	KeySlug       = "slug"
	KeyOperation  = "operation"
	KeyAttempt    = "attempt"
	KeyURL        = "url"
	KeyPath       = "path"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyDurationMS = "duration_ms"
	KeyRequestID  = "request_id"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeyPosts      = "posts"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Source(name string) slog.Attr     { return slog.String(KeySource, name) }
func Slug(s string) slog.Attr          { return slog.String(KeySlug, s) }
func Operation(op string) slog.Attr    { return slog.String(KeyOperation, op) }
func Attempt(n int) slog.Attr          { return slog.Int(KeyAttempt, n) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func RequestID(id string) slog.Attr    { return slog.String(KeyRequestID, id) }
func UserAgent(ua string) slog.Attr    { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(addr string) slog.Attr { return slog.String(KeyRemoteAddr, addr) }
func Posts(n int) slog.Attr            { return slog.Int(KeyPosts, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
