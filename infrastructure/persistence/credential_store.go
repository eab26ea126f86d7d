package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"photo-frame/domain/model"
	"photo-frame/domain/repository"
	"photo-frame/infrastructure/logger"
)

// CredentialStore keeps the authorization record in a single JSON file
type CredentialStore struct {
	path string
	now  func() time.Time
}

func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path, now: time.Now}
}

// WithClock overrides the time source used for expiry checks
func (s *CredentialStore) WithClock(now func() time.Time) *CredentialStore {
	s.now = now
	return s
}

func (s *CredentialStore) Path() string { return s.path }

func (s *CredentialStore) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && info.Mode().IsRegular()
}

func (s *CredentialStore) Load() (*model.Credential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, repository.ErrNoCredential
		}
		return nil, fmt.Errorf("failed to read credential file: %w", err)
	}
	var credential model.Credential
	if err := json.Unmarshal(data, &credential); err != nil {
		logger.GetLogger().WithField("error", err).WithField("file", s.path).Warn("Credential file is not parseable")
		return nil, fmt.Errorf("%w: %v", repository.ErrNoCredential, err)
	}
	if !credential.Valid(s.now()) {
		logger.GetLogger().WithField("file", s.path).Warn("Stored credential is expired and cannot be refreshed")
		return nil, fmt.Errorf("%w: credential expired", repository.ErrNoCredential)
	}
	return &credential, nil
}

// Save writes to a temporary file in the same directory and renames it over the
// record, so a concurrent Load sees either the old or the new record.
func (s *CredentialStore) Save(credential *model.Credential) error {
	if credential == nil {
		return errors.New("credential is nil")
	}
	data, err := json.MarshalIndent(credential, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}
	if err := writeFileAtomic(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
