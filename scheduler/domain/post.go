package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Platform is the target social network for a post. The set is closed:
// connection toggles and daily limits are keyed by it, so an unknown
// platform is rejected at the boundary rather than stored.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
)

// Platforms returns every supported platform in a stable order.
func Platforms() []Platform {
	return []Platform{
		PlatformInstagram,
		PlatformFacebook,
		PlatformTwitter,
		PlatformLinkedIn,
	}
}

// ParsePlatform maps a user-supplied string onto the closed platform set.
// Matching is case-insensitive.
func ParsePlatform(s string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PlatformInstagram, PlatformFacebook, PlatformTwitter, PlatformLinkedIn:
		return p, true
	}
	return "", false
}

// Status describes where a post sits in its publishing lifecycle.
// Only "scheduled" is ever assigned by the creation flow; the other
// values exist for display until a real publish pipeline sets them.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusScheduling Status = "scheduling"
	StatusFailed     Status = "failed"
)

const (
	// DateLayout is the calendar-date form posts are keyed by.
	DateLayout = "2006-01-02"
	// TimeLayout is the 24h time-of-day form.
	TimeLayout = "15:04"
)

// Post is a scheduled social-media content record.
// Media is an optional encoded image/video reference; empty means no media.
type Post struct {
	ID            string   `json:"id"`
	Platform      Platform `json:"platform"`
	Caption       string   `json:"caption"`
	Media         string   `json:"media,omitempty"`
	ScheduledDate string   `json:"scheduledDate"`
	ScheduledTime string   `json:"scheduledTime"`
	Status        Status   `json:"status"`
}

// ScheduledAt combines ScheduledDate and ScheduledTime into a local
// timestamp. It is the sort key for the upcoming view and the
// future-schedule validation.
func (p *Post) ScheduledAt() (time.Time, error) {
	return time.ParseInLocation(
		DateLayout+"T"+TimeLayout,
		p.ScheduledDate+"T"+p.ScheduledTime,
		time.Local,
	)
}

// ErrPostNotFound is returned when an operation names a post ID that is
// not present in the stored sequence.
var ErrPostNotFound = errors.New("post not found")

// PostStore owns the persisted post sequence and user preferences.
// Consumers receive it explicitly; nothing reads ambient state.
//
// LoadPosts may substitute demo content when nothing has ever been
// saved; StoredPosts returns exactly what is persisted, which is the
// sequence quota checks and writes operate on. SavePosts overwrites the
// whole sequence; there are no partial or merge semantics. UpdatePosts
// runs a read-modify-write atomically so two in-process writers cannot
// interleave.
type PostStore interface {
	LoadPosts(ctx context.Context) ([]Post, error)
	StoredPosts(ctx context.Context) ([]Post, error)
	SavePosts(ctx context.Context, posts []Post) error
	UpdatePosts(ctx context.Context, fn func(posts []Post) ([]Post, error)) ([]Post, error)

	LoadPreferences(ctx context.Context) (Preferences, error)
	SavePreferences(ctx context.Context, prefs Preferences) error
}
