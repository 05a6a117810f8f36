package application

import (
	"strings"
	"time"

	"github.com/socialsched/goscheduler/scheduler/domain"
)

const (
	// MaxCaptionLength is the longest caption any platform accepts.
	MaxCaptionLength = 2200

	// MaxDailyPosts caps posts per platform per calendar date.
	MaxDailyPosts = 3

	// MaxMediaBytes is the upload ceiling for attached media.
	MaxMediaBytes = 50 * 1024 * 1024
)

// PostDraft is a candidate post as submitted by the creation flow,
// before validation and ID assignment.
type PostDraft struct {
	Platform      string `json:"platform"`
	Caption       string `json:"caption"`
	Media         string `json:"media,omitempty"`
	ScheduledDate string `json:"scheduledDate"`
	ScheduledTime string `json:"scheduledTime"`
}

// ValidationResult reports validation as data, never as an error value:
// a failed check is a normal outcome the caller renders to the user.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

func newValidationResult(errs []string) ValidationResult {
	return ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

// ValidatePost checks a draft's required fields, caption length, and
// that the combined schedule lands after now.
func ValidatePost(draft PostDraft, now time.Time) ValidationResult {
	errs := []string{}

	if draft.Platform == "" {
		errs = append(errs, "Platform is required")
	} else if _, ok := domain.ParsePlatform(draft.Platform); !ok {
		errs = append(errs, "Platform is not supported")
	}

	if strings.TrimSpace(draft.Caption) == "" {
		errs = append(errs, "Caption is required")
	}

	if len([]rune(draft.Caption)) > MaxCaptionLength {
		errs = append(errs, "Caption must be less than 2200 characters")
	}

	if draft.ScheduledDate == "" {
		errs = append(errs, "Scheduled date is required")
	}

	if draft.ScheduledTime == "" {
		errs = append(errs, "Scheduled time is required")
	}

	if draft.ScheduledDate != "" && draft.ScheduledTime != "" {
		at, err := time.ParseInLocation(
			domain.DateLayout+"T"+domain.TimeLayout,
			draft.ScheduledDate+"T"+draft.ScheduledTime,
			time.Local,
		)
		if err != nil {
			errs = append(errs, "Scheduled date and time must be valid")
		} else if !at.After(now) {
			errs = append(errs, "Scheduled time must be in the future")
		}
	}

	return newValidationResult(errs)
}

// ValidateMedia checks an upload's declared MIME type against the
// image/video allowlist and its size against the 50MB ceiling. The
// creation flow calls this before accepting a file; posts without media
// skip it entirely.
func ValidateMedia(mimeType string, size int64) ValidationResult {
	errs := []string{}

	if !strings.HasPrefix(mimeType, "image/") && !strings.HasPrefix(mimeType, "video/") {
		errs = append(errs, "Media must be an image or video")
	}

	if size > MaxMediaBytes {
		errs = append(errs, "Media must be 50MB or smaller")
	}

	return newValidationResult(errs)
}

// ValidateMediaReference checks an already-encoded media value as it
// arrives on a draft. Data URLs carry their MIME type in the prefix;
// anything else is an opaque reference and only the size is capped.
func ValidateMediaReference(media string) ValidationResult {
	if rest, ok := strings.CutPrefix(media, "data:"); ok {
		mime := rest
		if i := strings.IndexAny(rest, ";,"); i >= 0 {
			mime = rest[:i]
		}
		return ValidateMedia(mime, int64(len(media)))
	}

	errs := []string{}
	if int64(len(media)) > MaxMediaBytes {
		errs = append(errs, "Media must be 50MB or smaller")
	}
	return newValidationResult(errs)
}

// LimitStatus reports how much of the per-platform daily quota a date
// has used, so callers can render "N/3 used".
type LimitStatus struct {
	WithinLimit  bool `json:"isWithinLimit"`
	CurrentCount int  `json:"currentCount"`
	MaxLimit     int  `json:"maxLimit"`
}

// CheckDailyLimit counts existing posts sharing the candidate's
// platform and date. The check is advisory: the store does not enforce
// it, so the creation flow must call this before inserting.
func CheckDailyLimit(platform domain.Platform, date string, existing []domain.Post) LimitStatus {
	count := 0
	for _, post := range existing {
		if post.Platform == platform && post.ScheduledDate == date {
			count++
		}
	}

	return LimitStatus{
		WithinLimit:  count < MaxDailyPosts,
		CurrentCount: count,
		MaxLimit:     MaxDailyPosts,
	}
}
