// Package credstore persists the access/refresh token pair and the last
// resolved identity in the local SQLite database.
//
// When a store secret is configured, every value is sealed with AES-GCM under
// a key derived from the secret (argon2id, per-database random salt).
package credstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/together/internal/client/models"
	"github.com/dmitrijs2005/together/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/together/internal/common"
	"github.com/dmitrijs2005/together/internal/cryptox"
	"github.com/dmitrijs2005/together/internal/dbx"
)

const (
	keyAccessToken    = "access_token"
	keyRefreshToken   = "refresh_token"
	keyCachedIdentity = "cached_identity"
	keySalt           = "kdf_salt"

	saltSize = 16
)

type Store struct {
	db   *sql.DB
	repo metadata.Repository
	key  []byte
}

// New opens a store over db. An empty secret stores values in clear.
func New(ctx context.Context, db *sql.DB, secret []byte) (*Store, error) {
	s := &Store{db: db, repo: metadata.NewSQLiteRepository(db)}
	if len(secret) == 0 {
		return s, nil
	}

	salt, err := s.repo.Get(ctx, keySalt)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		salt = common.GenerateRandByteArray(saltSize)
		if err := s.repo.Set(ctx, keySalt, salt); err != nil {
			return nil, err
		}
	}

	s.key = cryptox.DeriveKey(secret, salt)
	return s, nil
}

// AccessToken returns the stored access token, or "" if there is none.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	v, err := s.get(ctx, s.repo, keyAccessToken)
	return string(v), err
}

// RefreshToken returns the stored refresh token, or "" if there is none.
func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	v, err := s.get(ctx, s.repo, keyRefreshToken)
	return string(v), err
}

// SetTokens stores both tokens atomically. An empty refresh token keeps the
// one already stored, which is what a non-rotating refresh endpoint needs.
func (s *Store) SetTokens(ctx context.Context, access, refresh string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := s.set(ctx, repo, keyAccessToken, []byte(access)); err != nil {
			return err
		}
		if refresh == "" {
			return nil
		}
		return s.set(ctx, repo, keyRefreshToken, []byte(refresh))
	})
}

// ReplaceTokens stores a refreshed pair only while the stored refresh token
// is still used, the one the refresh was made with. It reports false and
// writes nothing when the tokens were cleared or replaced in the meantime,
// so a refresh finishing after Logout cannot bring credentials back.
func (s *Store) ReplaceTokens(ctx context.Context, used, access, refresh string) (bool, error) {
	replaced := false
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		current, err := s.get(ctx, repo, keyRefreshToken)
		if err != nil {
			return err
		}
		if current == nil || string(current) != used {
			return nil
		}
		if err := s.set(ctx, repo, keyAccessToken, []byte(access)); err != nil {
			return err
		}
		if refresh != "" {
			if err := s.set(ctx, repo, keyRefreshToken, []byte(refresh)); err != nil {
				return err
			}
		}
		replaced = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return replaced, nil
}

// CachedIdentity returns the last identity saved with SetCachedIdentity,
// or nil when nothing usable is cached.
func (s *Store) CachedIdentity(ctx context.Context) (*models.Identity, error) {
	v, err := s.get(ctx, s.repo, keyCachedIdentity)
	if err != nil || v == nil {
		return nil, err
	}

	var id models.Identity
	if err := json.Unmarshal(v, &id); err != nil {
		return nil, fmt.Errorf("decode cached identity: %w", err)
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *Store) SetCachedIdentity(ctx context.Context, id *models.Identity) error {
	v, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode cached identity: %w", err)
	}
	return s.set(ctx, s.repo, keyCachedIdentity, v)
}

// Clear removes both tokens and the cached identity. The KDF salt stays so
// the store secret keeps working.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, keyAccessToken, keyRefreshToken, keyCachedIdentity)
}

func (s *Store) get(ctx context.Context, repo metadata.Repository, key string) ([]byte, error) {
	v, err := repo.Get(ctx, key)
	if err != nil || v == nil {
		return nil, err
	}
	if s.key == nil {
		return v, nil
	}

	plain, err := cryptox.Open(v, s.key)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	return plain, nil
}

func (s *Store) set(ctx context.Context, repo metadata.Repository, key string, value []byte) error {
	if s.key != nil {
		sealed, err := cryptox.Seal(value, s.key)
		if err != nil {
			return fmt.Errorf("seal %s: %w", key, err)
		}
		value = sealed
	}
	return repo.Set(ctx, key, value)
}
