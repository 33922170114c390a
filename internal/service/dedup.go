package service

import (
	"net/url"
	"strings"
)

// DedupResult is the outcome of filtering a batch against what already
// exists and against itself.
type DedupResult[T any] struct {
	Accepted            []T
	PersistedDuplicates int
	InBatchDuplicates   int
	Invalid             int
}

// Deduplicator filters a batch in a single ordered pass. Each item is
// checked invalid first, then against persisted keys, then against earlier
// items in the same batch; the first occurrence of a key wins and input
// order is preserved. Validate may be nil, in which case everything is
// considered valid.
type Deduplicator[T any] struct {
	Key      func(T) string
	Validate func(T) bool
}

// Run filters the batch. existingKeys holds the keys already persisted in
// the dedup scope; the same run never classifies one item into more than one
// bucket.
func (d Deduplicator[T]) Run(batch []T, existingKeys map[string]struct{}) DedupResult[T] {
	result := DedupResult[T]{Accepted: make([]T, 0, len(batch))}
	seen := make(map[string]struct{}, len(batch))

	for _, item := range batch {
		if d.Validate != nil && !d.Validate(item) {
			result.Invalid++
			continue
		}
		key := d.Key(item)
		if _, ok := existingKeys[key]; ok {
			result.PersistedDuplicates++
			continue
		}
		if _, ok := seen[key]; ok {
			result.InBatchDuplicates++
			continue
		}
		seen[key] = struct{}{}
		result.Accepted = append(result.Accepted, item)
	}
	return result
}

// trackingParams vary per referral without changing the page they point at.
var trackingParams = []string{"utm_source", "utm_medium", "utm_campaign", "utm_content", "utm_term", "ref", "source"}

// NormalizeURL canonicalizes a URL for resource deduplication: YouTube
// watch links collapse onto their video ID, tracking parameters drop out,
// and scheme, www prefix, case and trailing slash are ignored. Input that
// does not parse as a URL falls back to plain string trimming so a
// malformed duplicate still collides with itself.
func NormalizeURL(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	parsed, err := url.Parse(lowered)
	if err != nil || parsed.Host == "" {
		lowered = strings.TrimPrefix(lowered, "https://")
		lowered = strings.TrimPrefix(lowered, "http://")
		lowered = strings.TrimPrefix(lowered, "www.")
		return strings.TrimSuffix(lowered, "/")
	}
	host := strings.TrimPrefix(parsed.Hostname(), "www.")

	if strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be") {
		videoID := ""
		if strings.Contains(host, "youtu.be") {
			videoID = strings.TrimPrefix(parsed.Path, "/")
		} else if v := parsed.Query().Get("v"); v != "" {
			videoID = v
		}
		if videoID != "" {
			return "youtube.com/watch?v=" + videoID
		}
	}

	query := parsed.Query()
	for _, param := range trackingParams {
		query.Del(param)
	}
	key := host + strings.TrimSuffix(parsed.Path, "/")
	if encoded := query.Encode(); encoded != "" {
		key += "?" + encoded
	}
	return key
}
