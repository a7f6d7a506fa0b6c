package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyScheme        = "scheme"
	KeyTarget        = "target"
	KeyProject       = "project"
	KeyWorkspace     = "workspace"
	KeyPath          = "path"
	KeyRoot          = "root"
	KeyConfiguration = "configuration"
	KeyRunID         = "run_id"
	KeyDurationMS    = "duration_ms"
	KeyError         = "error"
	KeyClean         = "clean"
	KeyRevision      = "revision"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Scheme(name string) slog.Attr        { return slog.String(KeyScheme, name) }
func Target(name string) slog.Attr        { return slog.String(KeyTarget, name) }
func Project(name string) slog.Attr       { return slog.String(KeyProject, name) }
func Workspace(path string) slog.Attr     { return slog.String(KeyWorkspace, path) }
func Path(p string) slog.Attr             { return slog.String(KeyPath, p) }
func Root(p string) slog.Attr             { return slog.String(KeyRoot, p) }
func Configuration(c string) slog.Attr    { return slog.String(KeyConfiguration, c) }
func RunID(id string) slog.Attr           { return slog.String(KeyRunID, id) }
func DurationMS(ms float64) slog.Attr     { return slog.Float64(KeyDurationMS, ms) }
func Clean(c bool) slog.Attr              { return slog.Bool(KeyClean, c) }
func Revision(rev string) slog.Attr       { return slog.String(KeyRevision, rev) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
