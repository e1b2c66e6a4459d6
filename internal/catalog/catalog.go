// Package catalog holds the static domain vocabularies every generator draws
// from. Weight slices are positionally aligned with their value slices.
package catalog

// Countries are ISO-3166 alpha-3 codes of the supported markets.
var Countries = []string{
	"FRA", "USA", "DEU", "ESP", "GBR", "ITA", "CAN", "AUS", "JPN", "KOR", "BRA", "MEX", "IND", "CHN",
}

// CountryWeights model the subscriber base concentration per market.
var CountryWeights = []float64{0.3, 0.25, 0.1, 0.08, 0.07, 0.06, 0.04, 0.03, 0.02, 0.02, 0.01, 0.01, 0.005, 0.005}

var AgeGroups = []string{"13-17", "18-24", "25-34", "35-44", "45-54", "55+"}

var SubscriptionPlans = []string{"free_trial", "basic", "standard", "premium", "family"}

// PlanWeights: free_trial, basic, standard, premium, family.
var PlanWeights = []float64{0.15, 0.2, 0.3, 0.25, 0.1}

// PlanTiers orders plans for legal upgrade/downgrade transitions.
var PlanTiers = map[string]int{
	"free_trial": 0,
	"basic":      1,
	"standard":   2,
	"premium":    3,
	"family":     4,
}

// PlanPriceBands give the [low, high) monthly price per plan.
var PlanPriceBands = map[string][2]float64{
	"free_trial": {0, 0},
	"basic":      {6.99, 8.99},
	"standard":   {9.99, 11.99},
	"premium":    {14.99, 16.99},
	"family":     {18.99, 21.99},
}

var ContentTypes = []string{"movie", "tv_show", "documentary", "short_film", "original"}

// ContentTypeWeights: movie, tv_show, documentary, short_film, original.
var ContentTypeWeights = []float64{0.4, 0.3, 0.15, 0.1, 0.05}

var Genres = []string{
	"Action", "Adventure", "Animation", "Comedy", "Crime", "Documentary",
	"Drama", "Family", "Fantasy", "History", "Horror", "Music", "Mystery",
	"Romance", "Science Fiction", "Thriller", "War", "Western",
}

// GenreWeights for non-documentary content; Documentary carries zero weight
// because documentaries force their own main genre.
var GenreWeights = []float64{
	0.12, 0.1, 0.08, 0.15, 0.08,
	0, 0.12, 0.05, 0.04, 0.03,
	0.07, 0.02, 0.04, 0.06, 0.09,
	0.03, 0.01, 0.01,
}

var ContentRatings = []string{"G", "PG", "PG-13", "R", "NC-17"}

// ContentRatingWeights by content type, with a default fallback.
var ContentRatingWeights = map[string][]float64{
	"movie":       {0.05, 0.15, 0.4, 0.35, 0.05},
	"tv_show":     {0.1, 0.25, 0.45, 0.15, 0.05},
	"documentary": {0.2, 0.3, 0.3, 0.15, 0.05},
	"default":     {0.1, 0.2, 0.4, 0.25, 0.05},
}

// OriginalProbability is the chance a title is a platform original, per type.
var OriginalProbability = map[string]float64{
	"movie":       0.15,
	"tv_show":     0.25,
	"documentary": 0.1,
	"short_film":  0.4,
	"original":    1.0,
}

var Platforms = []string{"web", "mobile_ios", "mobile_android", "smart_tv", "game_console", "tablet"}

// PlatformWeights: web, mobile_ios, mobile_android, smart_tv, game_console, tablet.
var PlatformWeights = []float64{0.3, 0.25, 0.2, 0.15, 0.05, 0.05}

var DeviceTypes = []string{"desktop", "laptop", "phone", "tablet", "tv", "console"}

// DeviceWeights: desktop, laptop, phone, tablet, tv, console.
var DeviceWeights = []float64{0.3, 0.25, 0.2, 0.15, 0.05, 0.05}

// PlatformDevices maps each platform to its plausible device types.
var PlatformDevices = map[string][]string{
	"web":            {"desktop", "laptop"},
	"mobile_ios":     {"phone", "tablet"},
	"mobile_android": {"phone", "tablet"},
	"smart_tv":       {"tv"},
	"game_console":   {"console"},
	"tablet":         {"tablet"},
}

var Qualities = []string{"SD", "HD", "Full HD", "4K", "HDR"}

// QualityBitrate gives the [low, high] average bitrate band in kbps.
var QualityBitrate = map[string][2]int{
	"SD":      {800, 1200},
	"HD":      {2500, 3500},
	"Full HD": {5500, 6500},
	"4K":      {14000, 16000},
	"HDR":     {18000, 22000},
}

var SubscriptionEventTypes = []string{
	"subscription_start", "upgrade", "downgrade", "cancellation", "renewal", "payment_failed",
}

var PaymentMethods = []string{"credit_card", "paypal", "apple_pay", "google_pay", "bank_transfer"}

// PaymentMethodWeights by country, with a default fallback.
var PaymentMethodWeights = map[string][]float64{
	"USA":     {0.6, 0.2, 0.1, 0.05, 0.05},
	"FRA":     {0.5, 0.3, 0.05, 0.05, 0.1},
	"DEU":     {0.4, 0.3, 0.05, 0.05, 0.2},
	"GBR":     {0.55, 0.25, 0.1, 0.05, 0.05},
	"default": {0.5, 0.3, 0.1, 0.05, 0.05},
}

var PaymentGateways = []string{"stripe", "paypal", "apple_pay", "google_pay", "bank_transfer"}

// GatewayWeights: stripe, paypal, apple_pay, google_pay, bank_transfer.
var GatewayWeights = []float64{0.5, 0.3, 0.1, 0.05, 0.05}

// Directors and Actors are fictitious-catalog names reused across content and
// search generation.
var Directors = []string{
	"Christopher Nolan", "Steven Spielberg", "Martin Scorsese", "Quentin Tarantino",
	"James Cameron", "David Fincher", "Ridley Scott", "Tim Burton", "Wes Anderson",
	"Alfred Hitchcock", "Stanley Kubrick", "Francis Ford Coppola", "George Lucas",
	"Peter Jackson", "Guillermo del Toro", "Hayao Miyazaki", "Bong Joon-ho",
	"Denis Villeneuve", "Ava DuVernay", "Greta Gerwig", "Jordan Peele",
}

var Actors = []string{
	"Leonardo DiCaprio", "Meryl Streep", "Tom Hanks", "Denzel Washington",
	"Jennifer Lawrence", "Robert Downey Jr.", "Scarlett Johansson", "Brad Pitt",
	"Angelina Jolie", "Johnny Depp", "Emma Stone", "Ryan Gosling", "Margot Robbie",
	"Will Smith", "Natalie Portman", "Christian Bale", "Anne Hathaway", "Matt Damon",
	"Cate Blanchett", "Joaquin Phoenix", "Viola Davis", "Samuel L. Jackson",
	"Morgan Freeman", "Keanu Reeves", "Charlize Theron",
}

// Title word lists for the synthetic title builder.
var (
	TitlePrefixes   = []string{"The", "A", "My", "Our", "Your", "His", "Her", "Their"}
	TitleAdjectives = []string{"Last", "First", "Great", "Big", "Small", "Lost", "Found", "Hidden", "Secret"}
	TitleNouns      = []string{"Journey", "Adventure", "Dream", "Night", "Day", "Love", "War", "Peace", "Hope"}
	TitleSuffixes   = []string{"Returns", "Begins", "Ends", "Rises", "Falls", "Lives", "Dies"}
	TitleCodewords  = []string{"Code", "Project", "Operation"}
	TitleCodenames  = []string{"Alpha", "Omega", "Zero", "X"}
	TitleSubtitles  = []string{"The Beginning", "The End", "Redemption", "Legacy"}
	TitleParts      = []string{"Part I", "Part II", "Final Chapter", "Reboot"}
)

// TagCategories feed the 2-4 extra tags attached to each content record.
var TagCategories = map[string][]string{
	"popularity": {"popular", "trending", "bestseller", "viral", "hit"},
	"quality":    {"award", "oscar", "emmy", "critics", "masterpiece"},
	"time":       {"new", "recent", "classic", "old", "retro"},
	"mood":       {"funny", "sad", "exciting", "scary", "romantic"},
}

// SearchKeywords group the vocabulary the search generator mixes into query
// text and filters.
var SearchKeywords = map[string][]string{
	"genres": {"action", "comedy", "drama", "horror", "romance", "sci-fi", "thriller",
		"documentary", "animation", "fantasy", "adventure", "crime", "mystery"},
	"actors": {"leonardo dicaprio", "meryl streep", "tom hanks", "jennifer lawrence",
		"robert downey jr", "scarlett johansson", "brad pitt", "johnny depp"},
	"directors": {"christopher nolan", "steven spielberg", "martin scorsese", "quentin tarantino",
		"james cameron", "david fincher", "ridley scott"},
	"years":     {"2024", "2023", "2022", "2021", "2020", "2019", "2010s", "2000s", "90s"},
	"qualities": {"4k", "hdr", "dolby atmos", "imax", "hd"},
	"moods":     {"funny", "sad", "exciting", "scary", "romantic", "inspiring", "thought-provoking"},
	"times":     {"christmas", "halloween", "summer", "winter", "holiday", "weekend"},
	"popular":   {"new", "popular", "trending", "top", "best", "award winning", "oscar"},
}

// SearchKeywordCategories lists the map keys in a stable order so weighted
// sampling stays deterministic under a fixed seed.
var SearchKeywordCategories = []string{
	"genres", "actors", "directors", "years", "qualities", "moods", "times", "popular",
}

// TagCategoryNames mirrors TagCategories keys in stable order.
var TagCategoryNames = []string{"popularity", "quality", "time", "mood"}

// EpisodeTitleWords are the descriptive suffixes for episode titles.
var EpisodeTitleWords = []string{
	"Pilot", "Beginnings", "Endings", "The Start", "The Finish",
	"Unexpected", "Revelations", "Secrets", "Truth", "Lies",
	"Alliances", "Betrayals", "Hope", "Despair", "Love", "Hate",
	"Crossroads", "Turning Point", "Last Stand", "New Dawn",
}

var Decades = []string{"1990s", "2000s", "2010s", "2020s"}
