package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cli/go-gh/v2/pkg/auth"

	"github.com/github/gh-bundles/pkg/console"
	"github.com/github/gh-bundles/pkg/fileutil"
	"github.com/github/gh-bundles/pkg/logger"
	"github.com/github/gh-bundles/pkg/registry"
)

var capLog = logger.New("cli:registry_capabilities")

// hostDataDir implements registry.DataDirProvider over os.UserHomeDir and
// git-root discovery.
type hostDataDir struct{}

// NewDataDirProvider builds the CLI's registry.DataDirProvider.
func NewDataDirProvider() registry.DataDirProvider { return hostDataDir{} }

func (hostDataDir) UserDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "gh-bundles"), nil
}

func (hostDataDir) WorkspaceRoot() (string, bool, error) {
	if !isGitRepo() {
		return "", false, nil
	}
	root, err := findGitRoot()
	if err != nil {
		return "", false, nil
	}
	return root, true, nil
}

// jsonFileKVStore implements registry.KVStore over a single JSON file under
// the storage root, guarded by an in-process mutex.
type jsonFileKVStore struct {
	mu   sync.Mutex
	path string
}

// NewKVStore builds a registry.KVStore persisted at path.
func NewKVStore(path string) registry.KVStore {
	return &jsonFileKVStore{path: path}
}

func (s *jsonFileKVStore) load() (map[string]json.RawMessage, error) {
	data := map[string]json.RawMessage{}
	if !fileutil.FileExists(s.path) {
		return data, nil
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *jsonFileKVStore) save(data map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	return os.WriteFile(s.path, out, 0o644)
}

func (s *jsonFileKVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return nil, false, err
	}
	v, ok := data[key]
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

func (s *jsonFileKVStore) Update(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return err
	}
	data[key] = json.RawMessage(value)
	return s.save(data)
}

func (s *jsonFileKVStore) Keys(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	return keys, nil
}

// consoleSurface implements registry.InteractiveSurface over pkg/console's
// huh-based prompts.
type consoleSurface struct{}

// NewInteractiveSurface builds the CLI's registry.InteractiveSurface.
func NewInteractiveSurface() registry.InteractiveSurface { return consoleSurface{} }

func (consoleSurface) QuickPick(ctx context.Context, title string, options []string) (string, error) {
	opts := make([]console.SelectOption, len(options))
	for i, o := range options {
		opts[i] = console.SelectOption{Label: o, Value: o}
	}
	return console.PromptSelect(title, "", opts)
}

func (consoleSurface) Warn(ctx context.Context, message string, buttons ...string) (string, error) {
	if len(buttons) == 0 {
		confirmed, err := console.ConfirmAction(message, "OK", "Cancel")
		if err != nil {
			return "", err
		}
		if !confirmed {
			return "Cancel", nil
		}
		return "OK", nil
	}
	opts := make([]console.SelectOption, len(buttons))
	for i, b := range buttons {
		opts[i] = console.SelectOption{Label: b, Value: b}
	}
	fmt.Fprintln(os.Stderr, console.FormatWarningMessage(message))
	return console.PromptSelect(message, "", opts)
}

func (consoleSurface) Info(ctx context.Context, message string) error {
	fmt.Fprintln(os.Stderr, console.FormatInfoMessage(message))
	return nil
}

// hostAuthSession implements registry.AuthSessionProvider over go-gh's
// locally configured `gh` credential store (the second fallback tier: a
// host auth session the operator already has, distinct from `gh auth
// token` run as an external process).
type hostAuthSession struct{}

// NewAuthSessionProvider builds the CLI's registry.AuthSessionProvider.
func NewAuthSessionProvider() registry.AuthSessionProvider { return hostAuthSession{} }

func (hostAuthSession) Token(ctx context.Context, host string) (string, bool, error) {
	token, source := auth.TokenForHost(host)
	if token == "" {
		return "", false, nil
	}
	capLog.Printf("resolved host auth session token for %s from %s", host, source)
	return token, true, nil
}

// ghCLITokenRunner implements registry.TokenCommandRunner over `gh auth
// token`, the third and final fallback tier.
type ghCLITokenRunner struct{}

// NewTokenCommandRunner builds the CLI's registry.TokenCommandRunner.
func NewTokenCommandRunner() registry.TokenCommandRunner { return ghCLITokenRunner{} }

func (ghCLITokenRunner) Token(ctx context.Context, host string) (string, bool, error) {
	cmd := exec.CommandContext(ctx, "gh", "auth", "token", "--hostname", host)
	out, err := cmd.Output()
	if err != nil {
		capLog.Printf("gh auth token failed for %s: %v", host, err)
		return "", false, nil
	}
	token := strings.TrimSpace(string(out))
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}
