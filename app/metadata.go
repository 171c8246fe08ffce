package app

import (
	"time"

	"rssingest/domain"
)

// UpdateMetadata records one completed run on c: counters are refreshed and
// one IngestionRecord is appended to the bounded history.
func UpdateMetadata(c *domain.ArticleCollection, newCount, updatedCount int, stats domain.BatchStats, now time.Time) *domain.ArticleCollection {
	c.Initialize(now)

	stamp := domain.At(now)
	total := len(c.Articles)

	c.Metadata.LastUpdated = stamp
	c.Metadata.TotalIngestions++
	c.Metadata.TotalArticles = total

	c.AppendIngestion(domain.IngestionRecord{
		Timestamp:       stamp,
		FeedCount:       stats.TotalFeeds,
		SuccessfulFeeds: stats.Successful,
		FailedFeeds:     stats.Failed,
		NewArticles:     newCount,
		UpdatedArticles: updatedCount,
		TotalAfter:      total,
	})
	return c
}
