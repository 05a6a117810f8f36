package application

import (
	"strings"

	"github.com/socialsched/goscheduler/scheduler/domain"
)

// FilterAll is the sentinel meaning "do not filter on this dimension".
const FilterAll = "all"

// Filter is the management view's query: a conjunction of free-text,
// platform, and status predicates. Zero values and FilterAll are
// identity predicates.
type Filter struct {
	Query    string
	Platform string
	Status   string
}

// Apply returns the subsequence of posts satisfying every active
// predicate, preserving the original order. Applying the same filter
// twice yields the same result as applying it once.
func (f Filter) Apply(posts []domain.Post) []domain.Post {
	filtered := posts

	if f.Query != "" {
		query := strings.ToLower(f.Query)
		matched := []domain.Post{}
		for _, post := range filtered {
			caption := strings.ToLower(post.Caption)
			platform := strings.ToLower(string(post.Platform))
			if strings.Contains(caption, query) || strings.Contains(platform, query) {
				matched = append(matched, post)
			}
		}
		filtered = matched
	}

	if f.Platform != "" && f.Platform != FilterAll {
		matched := []domain.Post{}
		for _, post := range filtered {
			if string(post.Platform) == f.Platform {
				matched = append(matched, post)
			}
		}
		filtered = matched
	}

	if f.Status != "" && f.Status != FilterAll {
		matched := []domain.Post{}
		for _, post := range filtered {
			if string(post.Status) == f.Status {
				matched = append(matched, post)
			}
		}
		filtered = matched
	}

	return filtered
}
