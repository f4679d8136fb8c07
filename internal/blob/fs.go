package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceInterval is how long Watch waits for a burst of events on one key
// to settle before reporting it.
const DebounceInterval = 100 * time.Millisecond

// FilesystemStore keeps each key as a file under root. Writes go through a
// temp file and rename so readers never observe a partial document.
type FilesystemStore struct {
	root     string
	debounce time.Duration

	mu      sync.Mutex
	written map[string]fileStamp
}

// fileStamp identifies the file state left behind by this store's own Put.
type fileStamp struct {
	size    int64
	modTime time.Time
}

// NewFilesystem returns a filesystem-backed store rooted at root, creating it
// if needed.
func NewFilesystem(root string) (*FilesystemStore, error) {
	if root == "" {
		root = "./spirulina-data"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating blob root: %w", err)
	}
	return &FilesystemStore{root: root, debounce: DebounceInterval, written: map[string]fileStamp{}}, nil
}

func (s *FilesystemStore) Driver() Driver { return DriverFilesystem }

func (s *FilesystemStore) Root() string { return s.root }

// sanitizeKey forbids path traversal and absolute keys.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid key contains '..'")
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("invalid absolute key")
	}
	return filepath.ToSlash(filepath.Clean(key)), nil
}

func (s *FilesystemStore) pathFor(key string) (string, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, k), nil
}

func (s *FilesystemStore) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

func (s *FilesystemStore) Put(_ context.Context, key string, data []byte) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", key, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", key, err)
	}
	if info, err := os.Stat(path); err == nil {
		s.mu.Lock()
		s.written[filepath.Base(path)] = fileStamp{size: info.Size(), modTime: info.ModTime()}
		s.mu.Unlock()
	}
	return nil
}

// ownWrite reports whether name still holds exactly what Put last wrote.
func (s *FilesystemStore) ownWrite(name string) bool {
	info, err := os.Stat(filepath.Join(s.root, name))
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stamp, ok := s.written[name]
	return ok && stamp.size == info.Size() && stamp.modTime.Equal(info.ModTime())
}

// Watch reports keys whose files are written, created, removed or renamed
// under root by another process. Events on one key are coalesced until it has
// been quiet for the debounce interval. Temp files and files still matching
// this store's last Put are ignored. onChange runs on the Watch goroutine.
func (s *FilesystemStore) Watch(ctx context.Context, onChange func(key string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(s.root); err != nil {
		return fmt.Errorf("watching %s: %w", s.root, err)
	}

	pending := map[string]*time.Timer{}
	settled := make(chan string)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(event.Name)
			if strings.HasPrefix(name, ".tmp-") {
				continue
			}
			if t, ok := pending[name]; ok {
				t.Reset(s.debounce)
				continue
			}
			pending[name] = time.AfterFunc(s.debounce, func() {
				select {
				case settled <- name:
				case <-ctx.Done():
				}
			})
		case name := <-settled:
			delete(pending, name)
			if s.ownWrite(name) {
				continue
			}
			onChange(name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("blob watcher error", "root", s.root, "error", err)
		}
	}
}

var (
	_ Store   = (*FilesystemStore)(nil)
	_ Watcher = (*FilesystemStore)(nil)
)
