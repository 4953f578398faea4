package repository

import (
	"context"
	"slices"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// Selector chooses the transaction backend for a user identity.
// The local user is served by the local store when one is configured;
// every authenticated user is served by the database.
type Selector struct {
	remote TransactionRepository
	local  TransactionRepository
}

// NewSelector creates a Selector. local may be nil, in which case every user
// is served by remote.
func NewSelector(remote, local TransactionRepository) *Selector {
	return &Selector{remote: remote, local: local}
}

// For returns the backend for userID.
func (s *Selector) For(userID string) TransactionRepository {
	if s.local != nil && (userID == "" || userID == model.LocalUserID) {
		return s.local
	}
	return s.remote
}

// Users lists the users of all backends, sorted and without duplicates.
func (s *Selector) Users(ctx context.Context) ([]string, error) {
	users, err := s.remote.Users(ctx)
	if err != nil {
		return nil, err
	}
	if s.local != nil {
		local, err := s.local.Users(ctx)
		if err != nil {
			return nil, err
		}
		// the local store only ever answers for the local user
		for _, u := range local {
			if u == model.LocalUserID {
				users = append(users, u)
			}
		}
	}
	slices.Sort(users)
	return slices.Compact(users), nil
}
