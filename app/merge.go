package app

import (
	"time"

	"rssingest/domain"
)

// Merge folds a batch into c in place. A known id only has its last_seen
// refreshed; the stored content is never overwritten. Unknown ids, and
// every article with an empty id, are appended with last_seen = first_seen.
func Merge(c *domain.ArticleCollection, articles []domain.Article, now time.Time) (newCount, updatedCount int) {
	c.Initialize(now)

	index := make(map[string]int, len(c.Articles))
	for i, a := range c.Articles {
		if a.ID != "" {
			index[a.ID] = i
		}
	}

	stamp := domain.At(now)
	for _, a := range articles {
		if a.ID != "" {
			if i, ok := index[a.ID]; ok {
				c.Articles[i].LastSeen = stamp
				updatedCount++
				continue
			}
		}
		a.LastSeen = a.FirstSeen
		if a.Tags == nil {
			a.Tags = []string{}
		}
		c.Articles = append(c.Articles, a)
		if a.ID != "" {
			index[a.ID] = len(c.Articles) - 1
		}
		newCount++
	}
	return newCount, updatedCount
}
