// Package catalog holds the named feed lists an ingestion run can select.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	All          = "all"
	Topics       = "topics"
	Publications = "publications"
	Tech         = "tech"
	AIML         = "aiml"
	Business     = "business"
	Design       = "design"
	Custom       = "custom"
)

var ErrUnknownList = errors.New("unknown feed list")

// Catalog maps list names to feed URLs. Keyword subsets are drawn from the
// topic feeds by substring match on the full URL.
type Catalog struct {
	lists map[string][]string
}

// New builds the Medium catalog. custom, when non-empty, is exposed as the "custom" list.
func New(custom []string) *Catalog {
	topics := make([]string, 0, len(topicSlugs))
	for _, s := range topicSlugs {
		topics = append(topics, mediumFeedBase+"tag/"+s)
	}
	publications := make([]string, 0, len(publicationSlugs))
	for _, s := range publicationSlugs {
		publications = append(publications, mediumFeedBase+s)
	}
	all := make([]string, 0, len(topics)+len(publications))
	all = append(all, topics...)
	all = append(all, publications...)

	c := &Catalog{lists: map[string][]string{
		All:          all,
		Topics:       topics,
		Publications: publications,
		Tech:         matching(topics, techKeywords),
		AIML:         matching(topics, aimlKeywords),
		Business:     matching(topics, businessKeywords),
		Design:       matching(topics, designKeywords),
	}}
	if len(custom) > 0 {
		c.lists[Custom] = append([]string(nil), custom...)
	}
	return c
}

// Feeds returns a copy of the named list.
func (c *Catalog) Feeds(name string) ([]string, error) {
	feeds, ok := c.lists[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownList, name, strings.Join(c.Names(), ", "))
	}
	return append([]string(nil), feeds...), nil
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.lists))
	for name := range c.lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func matching(urls, keywords []string) []string {
	out := make([]string, 0)
	for _, u := range urls {
		for _, k := range keywords {
			if strings.Contains(u, k) {
				out = append(out, u)
				break
			}
		}
	}
	return out
}
