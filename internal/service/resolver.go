package service

import (
	"errors"
	"fmt"

	"github.com/lumilens-app/backend/internal/models"
	"github.com/lumilens-app/backend/internal/repositories"
)

// ResolvedVia tags how an identifier matched a profile.
type ResolvedVia int

const (
	ResolvedByID ResolvedVia = iota
	ResolvedByUsername
)

// Resolution is the outcome of a successful identifier lookup.
type Resolution struct {
	Profile *models.Profile
	Via     ResolvedVia
}

// ResolveProfile maps an identifier to a profile. The identifier is tried as
// a primary ID first, then as a username; the precedence matters when a
// username happens to collide with another profile's ID. Returns ErrNotFound
// when neither matches.
func ResolveProfile(profiles repositories.ProfileRepository, identifier string) (*Resolution, error) {
	profile, err := profiles.GetProfileByID(identifier)
	if err == nil {
		return &Resolution{Profile: profile, Via: ResolvedByID}, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	profile, err = profiles.GetProfileByUsername(identifier)
	if err == nil {
		return &Resolution{Profile: profile, Via: ResolvedByUsername}, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	return nil, fmt.Errorf("%w: profile %q", ErrNotFound, identifier)
}
