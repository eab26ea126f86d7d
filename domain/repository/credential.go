package repository

import (
	"errors"

	"photo-frame/domain/model"
)

// ErrNoCredential means the frame has not been authorized yet, or the stored record is unusable
var ErrNoCredential = errors.New("no usable credential")

// ICredentialStore persists the single authorization record
type ICredentialStore interface {
	// Exists reports whether an authorization record is present, without validating it
	Exists() bool
	// Load returns the stored credential or ErrNoCredential when it is absent or fails validation
	Load() (*model.Credential, error)
	// Save replaces the stored record atomically
	Save(credential *model.Credential) error
}
