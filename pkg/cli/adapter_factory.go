package cli

import (
	"net/http"

	"github.com/github/gh-bundles/pkg/registry"
)

// NewAdapterFactory builds a registry.AdapterFactory that dispatches on
// Source.Type, wiring every concrete Adapter implementation to the shared
// HTTP client and auth capabilities.
func NewAdapterFactory(doer registry.HTTPDoer, session registry.AuthSessionProvider, externalCLI registry.TokenCommandRunner) registry.AdapterFactory {
	return func(source registry.Source) (registry.Adapter, error) {
		switch source.Type {
		case registry.SourceTypeGitHubRelease, registry.SourceTypeGitLab:
			return registry.NewReleaseAdapter(source, doer, session, externalCLI)
		case registry.SourceTypeAwesomeCopilot, registry.SourceTypeLocalAwesomeCopilot:
			return registry.NewContentTreeAdapter(source, doer, session, externalCLI)
		case registry.SourceTypeLocal:
			return registry.NewLocalAdapter(source)
		case registry.SourceTypeHTTP:
			return registry.NewHTTPCatalogAdapter(source, doer), nil
		default:
			return nil, registry.NewError(registry.KindInvalidURL, "unrecognized source type: "+string(source.Type))
		}
	}
}

// NewHTTPClient builds the default registry.HTTPDoer for the CLI.
func NewHTTPClient() registry.HTTPDoer {
	return &http.Client{}
}
