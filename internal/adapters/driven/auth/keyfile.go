package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/gate-discovery/internal/logger"
)

// KeyFile is a private key read from disk and reloaded when the file changes.
type KeyFile struct {
	path string

	mu  sync.RWMutex
	key string
}

// NewKeyFile reads the key at path.
func NewKeyFile(path string) (*KeyFile, error) {
	k := &KeyFile{path: filepath.Clean(path)}
	if _, err := k.reload(); err != nil {
		return nil, err
	}
	return k, nil
}

// PrivateKey returns the most recently loaded key.
func (k *KeyFile) PrivateKey() string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.key
}

// Path returns the key file path.
func (k *KeyFile) Path() string {
	return k.path
}

// reload re-reads the file and reports whether the key changed.
func (k *KeyFile) reload() (bool, error) {
	data, err := os.ReadFile(k.path)
	if err != nil {
		return false, fmt.Errorf("read private key: %w", err)
	}
	key := strings.TrimSpace(string(data))

	k.mu.Lock()
	defer k.mu.Unlock()
	if key == k.key {
		return false, nil
	}
	k.key = key
	return true, nil
}

// Watch reloads the key whenever its file is written or replaced and calls
// onChange after each reload that changed the key. It blocks until ctx is
// cancelled. The parent directory is watched so editors and secret mounts
// that replace the file atomically are picked up.
func (k *KeyFile) Watch(ctx context.Context, onChange func(context.Context)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch private key: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(k.path)); err != nil {
		return fmt.Errorf("watch private key: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-fsw.Events:
			if !ok {
				return errors.New("watch private key: event channel closed")
			}
			if filepath.Clean(evt.Name) != k.path {
				continue
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) {
				continue
			}

			changed, err := k.reload()
			if err != nil {
				logger.Warn("private key reload failed, keeping previous key: %v", err)
				continue
			}
			if changed {
				logger.Info("private key reloaded from %s", k.path)
				if onChange != nil {
					onChange(ctx)
				}
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("watch private key: error channel closed")
			}
			logger.Warn("private key watcher: %v", err)
		}
	}
}
