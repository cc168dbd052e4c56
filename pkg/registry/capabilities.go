package registry

import (
	"context"
	"net/http"
)

// HTTPDoer is the only transport capability the engine consumes. It is
// satisfied by *http.Client and by the redirect/auth-aware client built in
// httpclient.go.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DataDirProvider resolves the host's per-user and per-workspace data
// directories, used as the roots for the storage layer (§4.3) and scope
// services (§4.5).
type DataDirProvider interface {
	UserDataDir() (string, error)
	WorkspaceRoot() (string, bool, error) // ok=false when no workspace is open
}

// KVStore is the host's process-wide key/value capability, used to persist
// update preferences (§4.3) outside of config.json.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Update(ctx context.Context, key string, value []byte) error
	Keys(ctx context.Context) ([]string, error)
}

// InteractiveSurface is the optional UI capability (§6): quick-picks and
// warning/info dialogs. The core only ever emits requests to it; a headless
// host may supply a no-op implementation that always returns the zero value.
type InteractiveSurface interface {
	QuickPick(ctx context.Context, title string, options []string) (string, error)
	Warn(ctx context.Context, message string, buttons ...string) (string, error)
	Info(ctx context.Context, message string) error
}

// AuthSessionProvider is the optional host-editor credential session (§4.1
// fallback tier 2).
type AuthSessionProvider interface {
	Token(ctx context.Context, host string) (string, bool, error)
}

// TokenCommandRunner is the external-CLI token fallback (§4.1 tier 3), e.g.
// "gh auth token".
type TokenCommandRunner interface {
	Token(ctx context.Context, host string) (string, bool, error)
}
