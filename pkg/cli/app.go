package cli

import (
	"context"
	"fmt"

	"github.com/github/gh-bundles/pkg/registry"
	"github.com/github/gh-bundles/pkg/registry/update"
)

// App bundles the wired registry engine plus the CLI-facing capability
// implementations every command needs.
type App struct {
	Store     *registry.Store
	Manager   *registry.Manager
	Scheduler *update.Scheduler
	Surface   registry.InteractiveSurface
}

// NewApp wires the full registry engine against host capability
// implementations (pkg/cli/registry_capabilities.go, workspace.go).
func NewApp() *App {
	dataDir := NewDataDirProvider()
	doer := NewHTTPClient()
	session := NewAuthSessionProvider()
	externalCLI := NewTokenCommandRunner()
	surface := NewInteractiveSurface()

	store := registry.NewStore(dataDir)
	installer := registry.NewInstaller()
	scope := registry.NewScopeService(dataDir)
	events := registry.NewEventEmitter()
	factory := NewAdapterFactory(doer, session, externalCLI)
	manager := registry.NewManager(store, installer, scope, events, factory)

	checker := update.NewUpdateChecker(update.CheckerFunc(manager.CheckUpdatesForKey), 0)
	autoUpdate := update.NewAutoUpdateService(
		update.InstallerFunc(manager.InstallCandidate),
		update.PreferenceStoreFunc(manager.UpdatePreferenceForBundle),
	)
	scheduler := update.NewScheduler(checker, autoUpdate.OnCheckResult(context.Background()))

	return &App{Store: store, Manager: manager, Scheduler: scheduler, Surface: surface}
}

// currentScope resolves the (scope, workspaceRoot) pair a command should
// operate against, given the --scope flag and the host's workspace
// detection.
func (a *App) currentScope(ctx context.Context, scopeFlag string, dataDir registry.DataDirProvider) (registry.Scope, string, error) {
	scope := registry.Scope(scopeFlag)
	switch scope {
	case registry.ScopeUser:
		return scope, "", nil
	case registry.ScopeWorkspace, registry.ScopeRepository:
		root, ok, err := dataDir.WorkspaceRoot()
		if err != nil {
			return "", "", err
		}
		if !ok {
			return "", "", fmt.Errorf("no workspace is open; run inside a git repository to use --scope=%s", scopeFlag)
		}
		return scope, root, nil
	default:
		return "", "", fmt.Errorf("invalid scope %q: must be one of user, workspace, repository", scopeFlag)
	}
}
