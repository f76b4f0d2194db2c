package repository

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/cherries/internal/error_values"
	"github.com/limbo/cherries/pkg/entity"
)

// FileSessionStore keeps the session keys in one JSON file, replaced by rename on every save.
type FileSessionStore struct {
	path string
	mu   sync.Mutex
}

func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{
		path: path,
	}
}

func (store *FileSessionStore) Load(ctx context.Context) (*entity.Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	data, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errorvalues.ErrSessionNotFound
		}
		return nil, errors.New("reading session file error: " + err.Error())
	}
	values := make(map[string]string, len(SessionKeys))
	if err = sonic.ConfigDefault.Unmarshal(data, &values); err != nil {
		return nil, errors.New("decoding session file error: " + err.Error())
	}
	return decodeSession(values)
}

func (store *FileSessionStore) Save(ctx context.Context, session *entity.Session) error {
	encoded, err := encodeSession(session)
	if err != nil {
		return err
	}
	values := make(map[string]string, len(SessionKeys))
	for i, key := range SessionKeys {
		values[key] = encoded[i]
	}
	data, err := sonic.ConfigDefault.Marshal(values)
	if err != nil {
		return errors.New("encoding session file error: " + err.Error())
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	dir := filepath.Dir(store.path)
	if err = os.MkdirAll(dir, 0o700); err != nil {
		return errors.New("creating session dir error: " + err.Error())
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return errors.New("creating session file error: " + err.Error())
	}
	defer os.Remove(tmp.Name())
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return errors.New("writing session file error: " + err.Error())
	}
	if err = tmp.Close(); err != nil {
		return errors.New("writing session file error: " + err.Error())
	}
	if err = os.Chmod(tmp.Name(), 0o600); err != nil {
		return errors.New("writing session file error: " + err.Error())
	}
	if err = os.Rename(tmp.Name(), store.path); err != nil {
		return errors.New("replacing session file error: " + err.Error())
	}
	return nil
}

func (store *FileSessionStore) Clear(ctx context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	err := os.Remove(store.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.New("removing session file error: " + err.Error())
	}
	return nil
}
