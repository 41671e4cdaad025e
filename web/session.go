package web

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/networkteam/screenplay"
)

// ErrSessionStateNotFound is returned when restoring a session state file that does not exist.
var ErrSessionStateNotFound = errors.New("session state not found")

// SessionStatePath resolves a session state name to a JSON file in the session state directory.
func (b *BrowseTheWeb) SessionStatePath(name string) string {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return filepath.Join(b.options.SessionStateDir, name)
}

// SaveSessionState writes cookies and origin storage of the browser context to path.
func (b *BrowseTheWeb) SaveSessionState(path string) error {
	browserContext, err := b.CurrentContext()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating session state directory: %w", err)
	}
	if _, err := browserContext.StorageState(path); err != nil {
		return fmt.Errorf("saving session state to %s: %w", path, err)
	}
	b.logger.Debug("Session state saved", slog.String("path", path))
	return nil
}

// RestoreSessionState replaces the browser context by one initialized from the state at path.
// The page of the previous context is closed.
func (b *BrowseTheWeb) RestoreSessionState(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSessionStateNotFound, path)
		}
		return fmt.Errorf("reading session state: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.tornDown {
		return errors.New("browser was already torn down")
	}
	if err := b.launch(); err != nil {
		return err
	}
	if err := b.openContext(path); err != nil {
		return fmt.Errorf("restoring session state from %s: %w", path, err)
	}
	b.logger.Debug("Session state restored", slog.String("path", path))
	return nil
}

func SaveSessionStateToPath(path string) screenplay.Performable {
	return withAbility("{actor} saves the session state to "+path, func(_ *screenplay.Actor, b *BrowseTheWeb) error {
		return b.SaveSessionState(path)
	})
}

// SaveSessionStateToFile saves the session state under a name in the session state directory.
func SaveSessionStateToFile(name string) screenplay.Performable {
	return withAbility("{actor} saves the session state as "+name, func(_ *screenplay.Actor, b *BrowseTheWeb) error {
		return b.SaveSessionState(b.SessionStatePath(name))
	})
}

func RestoreSessionStateFromPath(path string) screenplay.Performable {
	return withAbility("{actor} restores the session state from "+path, func(_ *screenplay.Actor, b *BrowseTheWeb) error {
		return b.RestoreSessionState(path)
	})
}

// RestoreSessionStateFromFile restores a session state saved with SaveSessionStateToFile.
func RestoreSessionStateFromFile(name string) screenplay.Performable {
	return withAbility("{actor} restores the session state "+name, func(_ *screenplay.Actor, b *BrowseTheWeb) error {
		return b.RestoreSessionState(b.SessionStatePath(name))
	})
}
