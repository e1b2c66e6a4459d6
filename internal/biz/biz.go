package biz

import "github.com/google/wire"

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(
	NewUserGenerator,
	NewContentGenerator,
	NewSessionGenerator,
	NewRatingGenerator,
	NewWatchlistGenerator,
	NewSubscriptionGenerator,
	NewSearchGenerator,
	NewEpisodeGenerator,
	NewEpisodeViewGenerator,
	NewPipeline,
)
