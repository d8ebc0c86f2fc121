package cache

import (
	"fmt"

	"poddash/types"
)

// Cache keys are composite identifiers: resource name plus the filter
// parameters that shaped the fetch. Invalidating the bare resource name hits
// every parameterization of it.
const (
	EpisodesPrefix   = "episodes"
	EpisodePrefix    = "episode"
	FeedsKey         = "feeds"
	FeederStatusKey  = "feeder:status"
	HiddenListSuffix = "hidden"
)

// EpisodeListKey addresses one filtered page of the episode listing.
func EpisodeListKey(status types.Status, category types.Category, limit, offset int, hidden bool) string {
	visibility := "visible"
	if hidden {
		visibility = HiddenListSuffix
	}
	return fmt.Sprintf("%s:%s:%s:%d:%d:%s", EpisodesPrefix, status, category.WireValue(), limit, offset, visibility)
}

// EpisodeKey addresses a single episode.
func EpisodeKey(id string) string {
	return fmt.Sprintf("%s:%s", EpisodePrefix, id)
}
