package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/socialsched/goscheduler/scheduler/domain"
)

// PlatformStatus describes one platform connection for the dashboard.
type PlatformStatus struct {
	Connected    bool   `json:"connected"`
	TokenExpires string `json:"tokenExpires,omitempty"`
}

// EngagementStats is the per-platform slice of an analytics report.
type EngagementStats struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

// AnalyticsReport summarizes publishing outcomes over a date range.
type AnalyticsReport struct {
	TotalPosts      int                                 `json:"totalPosts"`
	SuccessfulPosts int                                 `json:"successfulPosts"`
	FailedPosts     int                                 `json:"failedPosts"`
	Engagement      map[domain.Platform]EngagementStats `json:"engagement"`
}

// PlatformGateway is the outbound network surface. There is no real
// backend: every call logs a placeholder line and returns immediately
// with canned data. Connection state is the only thing it tracks, in a
// map restricted to the closed platform set.
type PlatformGateway struct {
	mu          sync.Mutex
	connections map[domain.Platform]bool
}

// NewPlatformGateway starts with the dashboard's initial toggle state:
// everything connected except linkedin, which waits for an explicit
// Connect.
func NewPlatformGateway() *PlatformGateway {
	connections := make(map[domain.Platform]bool, len(domain.Platforms()))
	for _, p := range domain.Platforms() {
		connections[p] = p != domain.PlatformLinkedIn
	}

	return &PlatformGateway{
		connections: connections,
	}
}

// SchedulePost is the placeholder for handing a post to a real publish
// pipeline. It only logs; the post's status never leaves "scheduled".
func (g *PlatformGateway) SchedulePost(ctx context.Context, post domain.Post) {
	log.Info().
		Str("postID", post.ID).
		Str("platform", string(post.Platform)).
		Str("scheduledDate", post.ScheduledDate).
		Str("scheduledTime", post.ScheduledTime).
		Msg("API: Schedule post")
}

// Connect marks a platform connected and returns the OAuth URL a real
// integration would redirect to.
func (g *PlatformGateway) Connect(ctx context.Context, platform domain.Platform) string {
	log.Info().Str("platform", string(platform)).Msg("API: Connect platform")

	g.mu.Lock()
	g.connections[platform] = true
	g.mu.Unlock()

	return fmt.Sprintf("https://oauth.%s.com/authorize", platform)
}

// Disconnect marks a platform disconnected.
func (g *PlatformGateway) Disconnect(ctx context.Context, platform domain.Platform) {
	log.Info().Str("platform", string(platform)).Msg("API: Disconnect platform")

	g.mu.Lock()
	g.connections[platform] = false
	g.mu.Unlock()
}

// Status reports connection state for every platform.
func (g *PlatformGateway) Status(ctx context.Context) map[domain.Platform]PlatformStatus {
	log.Info().Msg("API: Get platform status")

	g.mu.Lock()
	defer g.mu.Unlock()

	status := make(map[domain.Platform]PlatformStatus, len(g.connections))
	for platform, connected := range g.connections {
		s := PlatformStatus{Connected: connected}
		if connected {
			s.TokenExpires = "2024-12-31"
		}
		status[platform] = s
	}

	return status
}

// Analytics returns the canned engagement report a real backend would
// compute for the given range.
func (g *PlatformGateway) Analytics(ctx context.Context, start, end string) AnalyticsReport {
	log.Info().Str("start", start).Str("end", end).Msg("API: Get analytics")

	return AnalyticsReport{
		TotalPosts:      45,
		SuccessfulPosts: 42,
		FailedPosts:     3,
		Engagement: map[domain.Platform]EngagementStats{
			domain.PlatformInstagram: {Likes: 1250, Comments: 89, Shares: 34},
			domain.PlatformTwitter:   {Likes: 890, Comments: 23, Shares: 45},
			domain.PlatformLinkedIn:  {Likes: 234, Comments: 12, Shares: 8},
		},
	}
}
