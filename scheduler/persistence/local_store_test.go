package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/socialsched/goscheduler/scheduler/domain"
	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		t.Fatalf("failed to create kv table: %v", err)
	}

	return db
}

func testStore(t *testing.T) *LocalStore {
	t.Helper()

	db := setupTestDB(t)
	t.Cleanup(func() { db.Close() })

	store := NewLocalStore(db)
	store.now = func() time.Time {
		return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.Local)
	}
	return store
}

func TestLocalStore_LoadPosts_SeedsWhenEmpty(t *testing.T) {
	store := testStore(t)

	posts, err := store.LoadPosts(context.Background())
	if err != nil {
		t.Fatalf("LoadPosts failed: %v", err)
	}

	if len(posts) != 5 {
		t.Fatalf("len(posts) = %d, want the 5-post demo seed", len(posts))
	}

	// Seed dates are relative to the injected clock
	if posts[0].ScheduledDate != "2025-06-02" {
		t.Errorf("first seed date = %s, want 2025-06-02", posts[0].ScheduledDate)
	}
	if posts[4].ScheduledDate != "2025-06-06" {
		t.Errorf("last seed date = %s, want 2025-06-06", posts[4].ScheduledDate)
	}

	seen := map[string]bool{}
	for _, post := range posts {
		if seen[post.ID] {
			t.Errorf("duplicate seed ID %s", post.ID)
		}
		seen[post.ID] = true

		if _, ok := domain.ParsePlatform(string(post.Platform)); !ok {
			t.Errorf("seed post %s has platform outside the closed set: %s", post.ID, post.Platform)
		}
	}
}

func TestLocalStore_StoredPosts_ExcludesSeed(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	// LoadPosts shows the demo seed on a fresh store, but StoredPosts
	// only ever reports what was actually written.
	posts, err := store.StoredPosts(ctx)
	if err != nil {
		t.Fatalf("StoredPosts failed: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("len(posts) = %d, want 0 on a fresh store", len(posts))
	}

	saved := []domain.Post{{ID: "a", Platform: domain.PlatformTwitter, ScheduledDate: "2025-06-10", ScheduledTime: "08:00", Status: domain.StatusScheduled}}
	if err := store.SavePosts(ctx, saved); err != nil {
		t.Fatalf("SavePosts failed: %v", err)
	}

	posts, err = store.StoredPosts(ctx)
	if err != nil {
		t.Fatalf("StoredPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "a" {
		t.Errorf("posts = %+v, want only the saved post", posts)
	}
}

func TestLocalStore_SeedIsFallbackNotReset(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.SavePosts(ctx, []domain.Post{}); err != nil {
		t.Fatalf("SavePosts failed: %v", err)
	}

	posts, err := store.LoadPosts(ctx)
	if err != nil {
		t.Fatalf("LoadPosts failed: %v", err)
	}

	if len(posts) != 0 {
		t.Errorf("len(posts) = %d, want 0 after saving an empty sequence", len(posts))
	}
}

func TestLocalStore_SaveAndLoadRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	saved := []domain.Post{
		{
			ID:            "p1",
			Platform:      domain.PlatformInstagram,
			Caption:       "caption one",
			Media:         "data:image/png;base64,aGk=",
			ScheduledDate: "2025-06-10",
			ScheduledTime: "10:00",
			Status:        domain.StatusScheduled,
		},
		{
			ID:            "p2",
			Platform:      domain.PlatformLinkedIn,
			Caption:       "caption two",
			ScheduledDate: "2025-06-11",
			ScheduledTime: "09:30",
			Status:        domain.StatusFailed,
		},
	}

	if err := store.SavePosts(ctx, saved); err != nil {
		t.Fatalf("SavePosts failed: %v", err)
	}

	loaded, err := store.LoadPosts(ctx)
	if err != nil {
		t.Fatalf("LoadPosts failed: %v", err)
	}

	if len(loaded) != len(saved) {
		t.Fatalf("len(loaded) = %d, want %d", len(loaded), len(saved))
	}

	for i := range saved {
		if loaded[i] != saved[i] {
			t.Errorf("loaded[%d] = %+v, want %+v", i, loaded[i], saved[i])
		}
	}
}

func TestLocalStore_SaveOverwritesWholeSequence(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first := []domain.Post{{ID: "a"}, {ID: "b"}}
	if err := store.SavePosts(ctx, first); err != nil {
		t.Fatalf("SavePosts failed: %v", err)
	}

	second := []domain.Post{{ID: "c"}}
	if err := store.SavePosts(ctx, second); err != nil {
		t.Fatalf("SavePosts failed: %v", err)
	}

	loaded, err := store.LoadPosts(ctx)
	if err != nil {
		t.Fatalf("LoadPosts failed: %v", err)
	}

	if len(loaded) != 1 || loaded[0].ID != "c" {
		t.Errorf("loaded = %+v, want only c", loaded)
	}
}

func TestLocalStore_MalformedValueTreatedAsEmpty(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.set(ctx, postsKey, "{not valid json"); err != nil {
		t.Fatalf("failed to plant malformed value: %v", err)
	}

	posts, err := store.LoadPosts(ctx)
	if err != nil {
		t.Fatalf("LoadPosts should not fail on malformed data: %v", err)
	}

	if len(posts) != 0 {
		t.Errorf("len(posts) = %d, want 0 (malformed value is not the seed)", len(posts))
	}
}

func TestLocalStore_UpdatePosts(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	// Updates act on the raw persisted sequence, not the demo seed
	updated, err := store.UpdatePosts(ctx, func(posts []domain.Post) ([]domain.Post, error) {
		if len(posts) != 0 {
			t.Errorf("update saw %d posts on a fresh store, want 0", len(posts))
		}
		return append(posts, domain.Post{ID: "new"}), nil
	})
	if err != nil {
		t.Fatalf("UpdatePosts failed: %v", err)
	}

	if len(updated) != 1 || updated[0].ID != "new" {
		t.Errorf("updated = %+v, want only new", updated)
	}

	loaded, err := store.LoadPosts(ctx)
	if err != nil {
		t.Fatalf("LoadPosts failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "new" {
		t.Errorf("loaded = %+v, want only new", loaded)
	}
}

func TestLocalStore_UpdatePosts_RollsBackOnError(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.SavePosts(ctx, []domain.Post{{ID: "keep"}}); err != nil {
		t.Fatalf("SavePosts failed: %v", err)
	}

	wantErr := errors.New("update rejected")
	_, err := store.UpdatePosts(ctx, func(posts []domain.Post) ([]domain.Post, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}

	loaded, err := store.LoadPosts(ctx)
	if err != nil {
		t.Fatalf("LoadPosts failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "keep" {
		t.Errorf("loaded = %+v, want the original sequence", loaded)
	}
}

func TestLocalStore_Preferences(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	prefs, err := store.LoadPreferences(ctx)
	if err != nil {
		t.Fatalf("LoadPreferences failed: %v", err)
	}

	want := domain.DefaultPreferences()
	if prefs != want {
		t.Errorf("prefs = %+v, want defaults %+v", prefs, want)
	}

	saved := domain.Preferences{
		DefaultPlatform: string(domain.PlatformTwitter),
		AutoSave:        false,
		Notifications:   true,
	}
	if err := store.SavePreferences(ctx, saved); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}

	loaded, err := store.LoadPreferences(ctx)
	if err != nil {
		t.Fatalf("LoadPreferences failed: %v", err)
	}
	if loaded != saved {
		t.Errorf("loaded = %+v, want %+v", loaded, saved)
	}
}

func TestLocalStore_MalformedPreferencesFallBackToDefaults(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.set(ctx, preferencesKey, "][nope"); err != nil {
		t.Fatalf("failed to plant malformed value: %v", err)
	}

	prefs, err := store.LoadPreferences(ctx)
	if err != nil {
		t.Fatalf("LoadPreferences should not fail on malformed data: %v", err)
	}
	if prefs != domain.DefaultPreferences() {
		t.Errorf("prefs = %+v, want defaults", prefs)
	}
}
