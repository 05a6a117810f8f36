package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/socialsched/goscheduler/scheduler/domain"
	"github.com/socialsched/goscheduler/shared/db"
)

var _ domain.PostStore = (*LocalStore)(nil)

// Keys mirror the dashboard's original local-storage layout: one JSON
// document per key.
const (
	postsKey       = "scheduledPosts"
	preferencesKey = "userPreferences"
)

// LocalStore is the SQLite-backed key-value store owning the persisted
// post sequence and user preferences.
type LocalStore struct {
	db *sql.DB

	// now anchors the demo seed's relative dates; injectable for tests.
	now func() time.Time
}

// NewLocalStore creates a LocalStore from a standard sql.DB.
func NewLocalStore(conn *sql.DB) *LocalStore {
	return &LocalStore{
		db:  conn,
		now: time.Now,
	}
}

// LoadPosts returns the persisted post sequence. An absent key yields
// the demo seed; a malformed value is discarded and treated as an empty
// store rather than surfaced as an error.
func (s *LocalStore) LoadPosts(ctx context.Context) ([]domain.Post, error) {
	posts, found, err := s.readPosts(ctx)
	if err != nil {
		return nil, err
	}

	if !found {
		return s.seedPosts(), nil
	}

	return posts, nil
}

// StoredPosts returns the persisted sequence without the seed fallback.
// Quota checks read through here so they count the same sequence the
// write path appends to.
func (s *LocalStore) StoredPosts(ctx context.Context) ([]domain.Post, error) {
	posts, _, err := s.readPosts(ctx)
	return posts, err
}

// SavePosts overwrites the entire persisted sequence. Saving an empty
// slice persists an empty array; the seed never reappears afterwards.
func (s *LocalStore) SavePosts(ctx context.Context, posts []domain.Post) error {
	if posts == nil {
		posts = []domain.Post{}
	}

	raw, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("failed to serialize posts: %w", err)
	}

	if err := s.set(ctx, postsKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save posts: %w", err)
	}

	return nil
}

// UpdatePosts loads the sequence, applies fn, and saves the result, all
// within one transaction so concurrent in-process writers serialize.
// The saved sequence is returned. Writes act on the raw persisted
// sequence: the demo seed is a read-time fallback and never enters the
// write path.
func (s *LocalStore) UpdatePosts(ctx context.Context, fn func(posts []domain.Post) ([]domain.Post, error)) ([]domain.Post, error) {
	if fn == nil {
		return nil, fmt.Errorf("update function cannot be nil")
	}

	var updated []domain.Post
	err := db.RunInTransaction(ctx, s.db, func(txCtx context.Context) error {
		posts, err := s.StoredPosts(txCtx)
		if err != nil {
			return err
		}

		updated, err = fn(posts)
		if err != nil {
			return err
		}

		return s.SavePosts(txCtx, updated)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// LoadPreferences returns the persisted preferences, or defaults when
// nothing is stored or the stored value is malformed.
func (s *LocalStore) LoadPreferences(ctx context.Context) (domain.Preferences, error) {
	raw, found, err := s.get(ctx, preferencesKey)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("failed to load preferences: %w", err)
	}

	if !found {
		return domain.DefaultPreferences(), nil
	}

	var prefs domain.Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		log.Warn().Err(err).Str("key", preferencesKey).Msg("Discarding malformed stored preferences")
		return domain.DefaultPreferences(), nil
	}

	return prefs, nil
}

// SavePreferences overwrites the persisted preferences.
func (s *LocalStore) SavePreferences(ctx context.Context, prefs domain.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to serialize preferences: %w", err)
	}

	if err := s.set(ctx, preferencesKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	return nil
}

// readPosts reads and parses the stored sequence, reporting whether the
// key was present at all. A present-but-malformed value counts as found
// with an empty sequence.
func (s *LocalStore) readPosts(ctx context.Context) ([]domain.Post, bool, error) {
	raw, found, err := s.get(ctx, postsKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load posts: %w", err)
	}

	if !found {
		return []domain.Post{}, false, nil
	}

	var posts []domain.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		log.Warn().Err(err).Str("key", postsKey).Msg("Discarding malformed stored posts")
		return []domain.Post{}, true, nil
	}

	if posts == nil {
		posts = []domain.Post{}
	}

	return posts, true, nil
}

const getQuery = `SELECT value FROM kv WHERE key = ?`

func (s *LocalStore) get(ctx context.Context, key string) (string, bool, error) {
	executor := db.GetExecutor(ctx, s.db)

	var value string
	err := executor.QueryRowContext(ctx, getQuery, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}

	return value, true, nil
}

const setQuery = `
	INSERT INTO kv (key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		updated_at = CURRENT_TIMESTAMP
`

func (s *LocalStore) set(ctx context.Context, key string, value string) error {
	executor := db.GetExecutor(ctx, s.db)

	if _, err := executor.ExecContext(ctx, setQuery, key, value); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}

	return nil
}

// seedPosts builds the demo posts shown before anything is saved. Dates
// are relative to now so the seed always lands in the visible week.
// The seed is a read-time fallback only; it is never written back.
func (s *LocalStore) seedPosts() []domain.Post {
	day := func(offset int) string {
		return s.now().AddDate(0, 0, offset).Format(domain.DateLayout)
	}

	return []domain.Post{
		{
			ID:            "1",
			Platform:      domain.PlatformInstagram,
			Caption:       "Check out our new product launch! 🚀",
			ScheduledDate: day(1),
			ScheduledTime: "10:00",
			Status:        domain.StatusScheduled,
		},
		{
			ID:            "2",
			Platform:      domain.PlatformTwitter,
			Caption:       "Don't miss our live Q&A session this Friday!",
			ScheduledDate: day(2),
			ScheduledTime: "15:30",
			Status:        domain.StatusScheduling,
		},
		{
			ID:            "3",
			Platform:      domain.PlatformLinkedIn,
			Caption:       "We're hiring! Join our amazing team. #careers",
			ScheduledDate: day(3),
			ScheduledTime: "09:00",
			Status:        domain.StatusFailed,
		},
		{
			ID:            "4",
			Platform:      domain.PlatformInstagram,
			Caption:       "Behind the scenes: our creative process.",
			ScheduledDate: day(4),
			ScheduledTime: "13:00",
			Status:        domain.StatusScheduled,
		},
		{
			ID:            "5",
			Platform:      domain.PlatformTwitter,
			Caption:       "Weekly tips: How to boost your engagement!",
			ScheduledDate: day(5),
			ScheduledTime: "11:00",
			Status:        domain.StatusScheduled,
		},
	}
}
