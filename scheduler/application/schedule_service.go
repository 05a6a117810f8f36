package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/socialsched/goscheduler/scheduler/domain"
)

// defaultUpcomingLimit caps the dashboard's upcoming-posts list.
const defaultUpcomingLimit = 5

// Rejection explains why a creation attempt was turned down. Exactly
// one field is set: either validation failed or the daily limit was
// exhausted. Rejections are outcomes, not errors.
type Rejection struct {
	Validation *ValidationResult `json:"validation,omitempty"`
	Limit      *LimitStatus      `json:"limit,omitempty"`
}

// StatusCounts backs the dashboard's summary cards.
type StatusCounts struct {
	Total      int `json:"total"`
	Scheduled  int `json:"scheduled"`
	Scheduling int `json:"scheduling"`
	Failed     int `json:"failed"`
}

// ScheduleService owns every operation over the post sequence. All
// consumers of the store go through it; nothing touches persisted
// state ambiently.
type ScheduleService struct {
	store    domain.PostStore
	gateway  *PlatformGateway
	exporter *Exporter

	// now is the clock for validation and the upcoming view.
	now func() time.Time
}

// NewScheduleService wires the service with its store, the simulated
// platform gateway, and the exporter.
func NewScheduleService(store domain.PostStore, gateway *PlatformGateway, exporter *Exporter) *ScheduleService {
	return &ScheduleService{
		store:    store,
		gateway:  gateway,
		exporter: exporter,
		now:      time.Now,
	}
}

// CreatePost validates the draft, checks the daily limit against the
// stored sequence, and appends the new post in one transaction. A nil
// rejection and non-nil post mean success; a non-nil rejection carries
// the user-facing reason. The error return is for storage failures only.
func (s *ScheduleService) CreatePost(ctx context.Context, draft PostDraft) (*domain.Post, *Rejection, error) {
	if result := ValidatePost(draft, s.now()); !result.IsValid {
		return nil, &Rejection{Validation: &result}, nil
	}

	if draft.Media != "" {
		if result := ValidateMediaReference(draft.Media); !result.IsValid {
			return nil, &Rejection{Validation: &result}, nil
		}
	}

	platform, _ := domain.ParsePlatform(draft.Platform)

	var created *domain.Post
	var rejection *Rejection

	_, err := s.store.UpdatePosts(ctx, func(posts []domain.Post) ([]domain.Post, error) {
		limit := CheckDailyLimit(platform, draft.ScheduledDate, posts)
		if !limit.WithinLimit {
			rejection = &Rejection{Limit: &limit}
			return posts, nil
		}

		post := domain.Post{
			ID:            uuid.NewString(),
			Platform:      platform,
			Caption:       draft.Caption,
			Media:         draft.Media,
			ScheduledDate: draft.ScheduledDate,
			ScheduledTime: draft.ScheduledTime,
			Status:        domain.StatusScheduled,
		}
		created = &post

		return append(posts, post), nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create post: %w", err)
	}

	if rejection != nil {
		return nil, rejection, nil
	}

	s.gateway.SchedulePost(ctx, *created)

	return created, nil, nil
}

// DeletePost removes one post and rewrites the sequence.
func (s *ScheduleService) DeletePost(ctx context.Context, postID string) error {
	if postID == "" {
		return fmt.Errorf("post ID cannot be empty")
	}

	found := false
	_, err := s.store.UpdatePosts(ctx, func(posts []domain.Post) ([]domain.Post, error) {
		remaining := make([]domain.Post, 0, len(posts))
		for _, post := range posts {
			if post.ID == postID {
				found = true
				continue
			}
			remaining = append(remaining, post)
		}
		return remaining, nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if !found {
		return domain.ErrPostNotFound
	}

	return nil
}

// ListPosts returns the stored sequence narrowed by the filter,
// original order preserved.
func (s *ScheduleService) ListPosts(ctx context.Context, filter Filter) ([]domain.Post, error) {
	posts, err := s.store.LoadPosts(ctx)
	if err != nil {
		return nil, err
	}

	return filter.Apply(posts), nil
}

// UpcomingPosts returns up to limit posts scheduled after now, ordered
// by their combined date+time key. A non-positive limit means the
// dashboard default of 5.
func (s *ScheduleService) UpcomingPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}

	posts, err := s.store.LoadPosts(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	upcoming := []domain.Post{}
	for _, post := range posts {
		at, err := post.ScheduledAt()
		if err != nil {
			log.Warn().Str("postID", post.ID).Msg("Skipping post with unparseable schedule")
			continue
		}
		if at.After(now) {
			upcoming = append(upcoming, post)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].ScheduledDate+upcoming[i].ScheduledTime <
			upcoming[j].ScheduledDate+upcoming[j].ScheduledTime
	})

	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}

	return upcoming, nil
}

// MonthGrid buckets the stored sequence onto the 42-cell grid for the
// given month anchor.
func (s *ScheduleService) MonthGrid(ctx context.Context, anchor time.Time) ([]GridCell, error) {
	posts, err := s.store.LoadPosts(ctx)
	if err != nil {
		return nil, err
	}

	return MonthGrid(anchor, posts), nil
}

// DailyLimit reports quota usage for a platform/date pair. It counts
// the persisted sequence, not the demo-seeded view, so the reported
// usage always matches what the creation gate will enforce.
func (s *ScheduleService) DailyLimit(ctx context.Context, platform domain.Platform, date string) (LimitStatus, error) {
	posts, err := s.store.StoredPosts(ctx)
	if err != nil {
		return LimitStatus{}, err
	}

	return CheckDailyLimit(platform, date, posts), nil
}

// Stats counts the stored sequence by status.
func (s *ScheduleService) Stats(ctx context.Context) (StatusCounts, error) {
	posts, err := s.store.LoadPosts(ctx)
	if err != nil {
		return StatusCounts{}, err
	}

	counts := StatusCounts{Total: len(posts)}
	for _, post := range posts {
		switch post.Status {
		case domain.StatusScheduled:
			counts.Scheduled++
		case domain.StatusScheduling:
			counts.Scheduling++
		case domain.StatusFailed:
			counts.Failed++
		}
	}

	return counts, nil
}

// ReschedulePost acknowledges a reschedule request without applying it.
// No code path moves a stored schedule yet; the request is logged the
// way the other placeholder network calls are.
// TODO: apply the new schedule once the publish pipeline defines how
// in-flight posts are moved.
func (s *ScheduleService) ReschedulePost(ctx context.Context, postID, newDate, newTime string) error {
	if postID == "" {
		return fmt.Errorf("post ID cannot be empty")
	}

	posts, err := s.store.LoadPosts(ctx)
	if err != nil {
		return err
	}

	for _, post := range posts {
		if post.ID == postID {
			log.Info().
				Str("postID", postID).
				Str("newDate", newDate).
				Str("newTime", newTime).
				Msg("API: Reschedule post")
			return nil
		}
	}

	return domain.ErrPostNotFound
}

// Export serializes the full unfiltered sequence in the requested
// format ("xlsx" or "csv") and returns the generated filename.
func (s *ScheduleService) Export(ctx context.Context, format string) (string, error) {
	posts, err := s.store.LoadPosts(ctx)
	if err != nil {
		return "", err
	}

	switch format {
	case "", "xlsx":
		return s.exporter.ExportXLSX(posts)
	case "csv":
		return s.exporter.ExportCSV(posts)
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}

// Preferences returns the persisted user preferences.
func (s *ScheduleService) Preferences(ctx context.Context) (domain.Preferences, error) {
	return s.store.LoadPreferences(ctx)
}

// UpdatePreferences overwrites the persisted user preferences.
func (s *ScheduleService) UpdatePreferences(ctx context.Context, prefs domain.Preferences) error {
	return s.store.SavePreferences(ctx, prefs)
}
