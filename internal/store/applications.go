package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathan/resume-assistant/internal/schemas"
	"github.com/jonathan/resume-assistant/internal/types"
)

// ApplicationStore is the ordered list of tracked applications. Records are addressed
// by position; fields this program does not know about are preserved on update.
type ApplicationStore struct {
	backend Backend
	schema  *schemas.Schema
	logger  *slog.Logger
	now     func() time.Time
}

// NewApplicationStore creates an ApplicationStore on backend.
func NewApplicationStore(backend Backend, opts Options) *ApplicationStore {
	opts = opts.withDefaults()
	return &ApplicationStore{
		backend: backend,
		schema:  schemas.MustLoad(schemas.Application),
		logger:  opts.Logger,
		now:     opts.Now,
	}
}

// List returns every application in stored order.
func (s *ApplicationStore) List(ctx context.Context) ([]types.ApplicationEntry, error) {
	raws, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return decodeEntries(raws), nil
}

// Append adds app to the end of the list. An empty ApplicationDate is set to now.
func (s *ApplicationStore) Append(ctx context.Context, app types.Application) (types.ApplicationEntry, error) {
	raws, err := s.load(ctx)
	if err != nil {
		return types.ApplicationEntry{}, err
	}

	if app.ApplicationDate == "" {
		app.ApplicationDate = s.now().Format(time.RFC3339)
	}
	if app.Status == "" {
		app.Status = types.StatusPending
	}
	if app.DocumentsGenerated == nil {
		app.DocumentsGenerated = []string{}
	}
	raw, err := json.Marshal(app)
	if err != nil {
		return types.ApplicationEntry{}, fmt.Errorf("failed to marshal application: %w", err)
	}

	raws = append(raws, raw)
	if err := s.save(ctx, raws); err != nil {
		return types.ApplicationEntry{}, err
	}
	return types.ApplicationEntry{Index: len(raws) - 1, Application: app}, nil
}

// UpdateStatus sets the status of the application at index and stamps updated_at.
func (s *ApplicationStore) UpdateStatus(ctx context.Context, index int, status types.Status) (types.ApplicationEntry, error) {
	if !status.Valid() {
		return types.ApplicationEntry{}, fmt.Errorf("invalid status %q", status)
	}

	raws, err := s.load(ctx)
	if err != nil {
		return types.ApplicationEntry{}, err
	}
	if index < 0 || index >= len(raws) {
		return types.ApplicationEntry{}, fmt.Errorf("index %d of %d: %w", index, len(raws), ErrIndexOutOfRange)
	}

	fields, err := decodeFields(raws[index])
	if err != nil {
		return types.ApplicationEntry{}, err
	}
	fields["status"] = string(status)
	fields["updated_at"] = s.now().Format(time.RFC3339)

	updated, err := json.Marshal(fields)
	if err != nil {
		return types.ApplicationEntry{}, fmt.Errorf("failed to marshal application: %w", err)
	}
	raws[index] = updated

	if err := s.save(ctx, raws); err != nil {
		return types.ApplicationEntry{}, err
	}
	return decodeEntry(index, updated), nil
}

// Delete removes the application at index. Later applications shift down by one.
func (s *ApplicationStore) Delete(ctx context.Context, index int) error {
	raws, err := s.load(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(raws) {
		return fmt.Errorf("index %d of %d: %w", index, len(raws), ErrIndexOutOfRange)
	}

	raws = append(raws[:index], raws[index+1:]...)
	return s.save(ctx, raws)
}

// Stats counts applications per status.
func (s *ApplicationStore) Stats(ctx context.Context) (types.ApplicationStats, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return types.ApplicationStats{}, err
	}
	var stats types.ApplicationStats
	for i := range entries {
		stats.Add(&entries[i].Application)
	}
	return stats, nil
}

// Search returns applications whose company or position contains term, ignoring case.
func (s *ApplicationStore) Search(ctx context.Context, term string) ([]types.ApplicationEntry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return entries, nil
	}

	var matches []types.ApplicationEntry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.CompanyName), term) ||
			strings.Contains(strings.ToLower(e.PositionTitle), term) {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

// Recent returns up to limit applications, newest application date first.
func (s *ApplicationStore) Recent(ctx context.Context, limit int) ([]types.ApplicationEntry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	types.SortNewestFirst(entries)
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// load reads the raw entries, repairing the stored document when it is missing,
// malformed or contains entries that are not JSON objects.
func (s *ApplicationStore) load(ctx context.Context) ([]json.RawMessage, error) {
	data, err := s.backend.Load(ctx, ApplicationsDocument)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return s.reset(ctx, "missing")
		}
		return nil, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.reset(ctx, "empty")
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		s.logger.Warn("applications document is unreadable", "document", ApplicationsDocument, "error", err)
		return s.reset(ctx, "malformed")
	}

	kept := make([]json.RawMessage, 0, len(raws))
	for i, raw := range raws {
		if !isObject(raw) {
			s.logger.Warn("dropping corrupted application entry", "position", i, "entry", truncate(string(raw), 80))
			continue
		}
		// Wrongly typed fields are decoded best effort; the record itself is kept.
		if err := s.schema.ValidateBytes(raw); err != nil {
			s.logger.Warn("application entry has unexpected field types", "position", i, "schema", s.schema.Name(), "error", err)
		}
		kept = append(kept, raw)
	}

	if len(kept) != len(raws) {
		s.logger.Warn("cleaned corrupted application entries", "dropped", len(raws)-len(kept))
		if err := s.save(ctx, kept); err != nil {
			return nil, err
		}
	}
	return kept, nil
}

func (s *ApplicationStore) reset(ctx context.Context, reason string) ([]json.RawMessage, error) {
	s.logger.Warn("initializing applications document", "document", ApplicationsDocument, "reason", reason)
	raws := []json.RawMessage{}
	if err := s.save(ctx, raws); err != nil {
		return nil, err
	}
	return raws, nil
}

func (s *ApplicationStore) save(ctx context.Context, raws []json.RawMessage) error {
	if raws == nil {
		raws = []json.RawMessage{}
	}
	data, err := json.MarshalIndent(raws, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal applications: %w", err)
	}
	if err := s.backend.Save(ctx, ApplicationsDocument, data); err != nil {
		return fmt.Errorf("failed to save applications: %w", err)
	}
	return nil
}

func decodeEntries(raws []json.RawMessage) []types.ApplicationEntry {
	entries := make([]types.ApplicationEntry, 0, len(raws))
	for i, raw := range raws {
		entries = append(entries, decodeEntry(i, raw))
	}
	return entries
}

// decodeEntry decodes an application object. A field whose JSON type does not match
// is left at its zero value and the remaining fields are still decoded.
func decodeEntry(index int, raw json.RawMessage) types.ApplicationEntry {
	entry := types.ApplicationEntry{Index: index}
	_ = json.Unmarshal(raw, &entry.Application)
	return entry
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// decodeFields decodes an entry into a generic map, keeping numbers exact.
func decodeFields(raw json.RawMessage) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	fields := make(map[string]any)
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("failed to decode application: %w", err)
	}
	return fields, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
