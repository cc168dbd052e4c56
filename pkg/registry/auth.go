package registry

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/github/gh-bundles/pkg/logger"
)

var authLog = logger.New("registry:auth")

// authMethod names one tier of the fallback chain, in resolution order.
type authMethod string

const (
	authMethodExplicitToken authMethod = "explicit-token"
	authMethodHostSession   authMethod = "host-session"
	authMethodExternalCLI   authMethod = "external-cli"
)

var statusSuggestions = map[int]string{
	http.StatusUnauthorized: "check that the configured token is still valid and has not expired",
	http.StatusForbidden:    "check that the token has the required scopes/permissions for this repository",
	http.StatusNotFound:     "check that the repository exists and is spelled correctly",
}

// authChain resolves and caches a bearer token for one adapter instance,
// trying each tier of spec.md §4.1 in order and remembering which tiers were
// attempted so a terminal failure can report them all.
type authChain struct {
	mu                sync.Mutex
	explicitToken     string
	session           AuthSessionProvider
	externalCLI       TokenCommandRunner
	host              string
	cachedToken       string
	cachedValid       bool
	attemptedMethods  []authMethod
}

func newAuthChain(explicitToken string, session AuthSessionProvider, externalCLI TokenCommandRunner, host string) *authChain {
	return &authChain{
		explicitToken: strings.TrimSpace(explicitToken),
		session:       session,
		externalCLI:   externalCLI,
		host:          host,
	}
}

// Token resolves a token, caching the result until Invalidate is called.
func (a *authChain) Token(ctx context.Context) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cachedValid {
		return a.cachedToken, true
	}

	if a.explicitToken != "" {
		a.record(authMethodExplicitToken)
		authLog.Printf("using explicit token for %s (%s)", a.host, truncateToken(a.explicitToken))
		a.cachedToken, a.cachedValid = a.explicitToken, true
		return a.cachedToken, true
	}

	if a.session != nil {
		a.record(authMethodHostSession)
		if tok, ok, err := a.session.Token(ctx, a.host); err == nil && ok && strings.TrimSpace(tok) != "" {
			authLog.Printf("resolved token via host auth session for %s", a.host)
			a.cachedToken, a.cachedValid = tok, true
			return a.cachedToken, true
		}
	}

	if a.externalCLI != nil {
		a.record(authMethodExternalCLI)
		if tok, ok, err := a.externalCLI.Token(ctx, a.host); err == nil && ok && strings.TrimSpace(tok) != "" {
			authLog.Printf("resolved token via external CLI for %s", a.host)
			a.cachedToken, a.cachedValid = tok, true
			return a.cachedToken, true
		}
	}

	authLog.Printf("no token available for %s after trying: %v", a.host, a.attemptedMethods)
	return "", false
}

func (a *authChain) record(m authMethod) {
	for _, existing := range a.attemptedMethods {
		if existing == m {
			return
		}
	}
	a.attemptedMethods = append(a.attemptedMethods, m)
}

// Invalidate clears the cached token after a 401/403, forcing re-resolution
// on the next call, and builds the categorised Authentication error spec.md
// §4.1/§7 requires.
func (a *authChain) Invalidate(status int) *Error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cachedValid = false
	a.cachedToken = ""

	methods := make([]string, len(a.attemptedMethods))
	for i, m := range a.attemptedMethods {
		methods[i] = string(m)
	}
	suggestion := statusSuggestions[status]
	if suggestion == "" {
		suggestion = "check the source configuration"
	}

	return &Error{
		Kind:             KindAuthentication,
		Message:          fmt.Sprintf("authentication failed for %s (status %d) after trying: %s", a.host, status, strings.Join(methods, ", ")),
		AttemptedMethods: methods,
		Suggestion:       suggestion,
		Status:           status,
	}
}
