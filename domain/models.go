package domain

// MaxHistory bounds ArticleCollection.IngestionHistory.
const MaxHistory = 100

// Article is one normalized feed entry. ID is the feed-provided identifier
// and may be empty.
type Article struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Link       string    `json:"link"`
	Published  string    `json:"published"`
	Author     string    `json:"author"`
	Summary    string    `json:"summary"`
	Tags       []string  `json:"tags"`
	SourceFeed string    `json:"source_feed"`
	FirstSeen  Timestamp `json:"first_seen"`
	LastSeen   Timestamp `json:"last_seen"`
}

type Metadata struct {
	CreatedAt       Timestamp `json:"created_at"`
	LastUpdated     Timestamp `json:"last_updated"`
	TotalIngestions int       `json:"total_ingestions"`
	TotalArticles   int       `json:"total_articles"`
}

// IngestionRecord is the per-run snapshot appended to the history.
type IngestionRecord struct {
	Timestamp       Timestamp `json:"timestamp"`
	FeedCount       int       `json:"feed_count"`
	SuccessfulFeeds int       `json:"successful_feeds"`
	FailedFeeds     int       `json:"failed_feeds"`
	NewArticles     int       `json:"new_articles"`
	UpdatedArticles int       `json:"updated_articles"`
	TotalAfter      int       `json:"total_after"`
}

// ArticleCollection is the whole persisted document.
type ArticleCollection struct {
	Metadata         Metadata          `json:"metadata"`
	Articles         []Article         `json:"articles"`
	IngestionHistory []IngestionRecord `json:"ingestion_history"`
}

// BatchStats summarizes one pass over the feed list.
type BatchStats struct {
	TotalFeeds        int `json:"total_feeds"`
	Successful        int `json:"successful"`
	Failed            int `json:"failed"`
	ArticlesCollected int `json:"articles_collected"`
}

// FetchOutcome classifies a single feed fetch.
type FetchOutcome int

const (
	FetchSucceeded FetchOutcome = iota
	FetchEmpty
	FetchFailed
)

func (o FetchOutcome) String() string {
	switch o {
	case FetchSucceeded:
		return "success"
	case FetchEmpty:
		return "empty"
	case FetchFailed:
		return "error"
	default:
		return "unknown"
	}
}

// FetchResult is what a FeedFetcher reports for one URL. Failures are
// carried in Outcome and Message, never as a Go error.
type FetchResult struct {
	Articles []Article
	Outcome  FetchOutcome
	Message  string
}

func (r FetchResult) OK() bool { return r.Outcome == FetchSucceeded }
