// Package profile serves user profiles to Livefyre's pull-based user sync.
package profile

import (
	"context"
	"fmt"

	"github.com/totegamma/livefyre"
)

// Profile is the document Livefyre pulls from the registered sync url.
type Profile struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Email       string   `json:"email,omitempty"`
	ProfileURL  string   `json:"profile_url,omitempty"`
	SettingsURL string   `json:"settings_url,omitempty"`
	Image       string   `json:"image_url,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Location    string   `json:"location,omitempty"`
	Websites    []string `json:"websites,omitempty"`
}

// Validate checks the fields Livefyre requires.
func (p Profile) Validate() error {
	if p.ID == "" {
		return livefyre.InvalidArgumentError{Field: "id", Reason: "must not be empty"}
	}
	if p.DisplayName == "" {
		return livefyre.InvalidArgumentError{Field: "display_name", Reason: "must not be empty"}
	}
	return nil
}

// Store persists profiles by id.
type Store interface {
	Get(ctx context.Context, id string) (Profile, error)
	Put(ctx context.Context, p Profile) error
	Delete(ctx context.Context, id string) error
}

// NotFoundError represents a missing profile.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return "profile not found"
	}
	return fmt.Sprintf("profile %s not found", e.ID)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing profiles.
var ErrNotFound = NotFoundError{}
