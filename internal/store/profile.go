package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonathan/resume-assistant/internal/schemas"
	"github.com/jonathan/resume-assistant/internal/types"
)

// Options configures the stores.
type Options struct {
	Logger *slog.Logger
	// Now stamps updated_at and application dates. Nil means time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// ProfileStore holds the single job seeker profile.
type ProfileStore struct {
	backend Backend
	schema  *schemas.Schema
	logger  *slog.Logger
	now     func() time.Time
}

// NewProfileStore creates a ProfileStore on backend.
func NewProfileStore(backend Backend, opts Options) *ProfileStore {
	opts = opts.withDefaults()
	return &ProfileStore{
		backend: backend,
		schema:  schemas.MustLoad(schemas.Profile),
		logger:  opts.Logger,
		now:     opts.Now,
	}
}

// Load returns the stored profile, or nil when none has been saved.
// An empty object or an unreadable document also count as no profile.
func (s *ProfileStore) Load(ctx context.Context) (*types.Profile, error) {
	data, err := s.backend.Load(ctx, ProfileDocument)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("{}")) {
		return nil, nil
	}

	if err := s.schema.ValidateBytes(trimmed); err != nil {
		s.logger.Warn("ignoring unreadable profile", "document", ProfileDocument, "error", err)
		return nil, nil
	}

	var profile types.Profile
	if err := json.Unmarshal(trimmed, &profile); err != nil {
		s.logger.Warn("ignoring unreadable profile", "document", ProfileDocument, "error", err)
		return nil, nil
	}
	return &profile, nil
}

// Save replaces the stored profile, stamping UpdatedAt.
func (s *ProfileStore) Save(ctx context.Context, profile *types.Profile) error {
	if profile == nil {
		return errors.New("profile is nil")
	}
	profile.UpdatedAt = s.now().Format(time.RFC3339)

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := s.backend.Save(ctx, ProfileDocument, data); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
