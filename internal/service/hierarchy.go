package service

import (
	"context"
	"sort"
	"time"

	"github.com/lalith-99/pressgate/internal/auth"
	"github.com/lalith-99/pressgate/internal/models"
)

// Hierarchy is the hub/spoke read-model: a derived view, recomputed
// from the tenant's pages on every call, never stored.
type Hierarchy struct {
	Hubs     []HubGroup     `json:"hubs"`
	Orphans  []PageSummary  `json:"orphans"`
	Clusters []ClusterCount `json:"clusters"`
}

type HubGroup struct {
	Hub    PageSummary   `json:"hub"`
	Spokes []PageSummary `json:"spokes"`
}

type PageSummary struct {
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	IsHub         bool      `json:"isHub"`
	ParentHubSlug string    `json:"parentHubSlug,omitempty"`
	TopicCluster  string    `json:"topicCluster,omitempty"`
	SpokePriority int       `json:"spokePriority"`
	IsPublished   bool      `json:"isPublished"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ClusterCount struct {
	Name  string `json:"name"`
	Pages int    `json:"pages"`
}

// GetHierarchy serves the admin hub/spoke view for a tenant.
func (s *Service) GetHierarchy(ctx context.Context, identity *auth.Identity, tenantID string) (*Hierarchy, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if err := auth.Decide(identity, tenantID, auth.CapReadHierarchy); err != nil {
		return nil, err
	}

	pages, err := s.store.Pages().ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, translate(err, "pages")
	}
	return buildHierarchy(pages), nil
}

func summarize(p *models.Page) PageSummary {
	return PageSummary{
		Slug:          p.Slug,
		Title:         p.Meta.Title,
		IsHub:         p.IsHub,
		ParentHubSlug: p.ParentHubSlug,
		TopicCluster:  p.TopicCluster,
		SpokePriority: p.SpokePriority,
		IsPublished:   p.IsPublished,
		UpdatedAt:     p.Meta.UpdatedAt,
	}
}

func buildHierarchy(pages []models.Page) *Hierarchy {
	h := &Hierarchy{
		Hubs:     make([]HubGroup, 0),
		Orphans:  make([]PageSummary, 0),
		Clusters: make([]ClusterCount, 0),
	}

	spokesByHub := make(map[string][]PageSummary)
	clusterCounts := make(map[string]int)

	for i := range pages {
		p := &pages[i]
		if p.TopicCluster != "" {
			clusterCounts[p.TopicCluster]++
		}
		if p.IsHub {
			continue
		}
		if p.ParentHubSlug == "" {
			h.Orphans = append(h.Orphans, summarize(p))
			continue
		}
		spokesByHub[p.ParentHubSlug] = append(spokesByHub[p.ParentHubSlug], summarize(p))
	}

	for i := range pages {
		p := &pages[i]
		if !p.IsHub {
			continue
		}
		spokes := spokesByHub[p.Slug]
		// Highest priority first; ties broken by most recent update.
		sort.SliceStable(spokes, func(a, b int) bool {
			if spokes[a].SpokePriority != spokes[b].SpokePriority {
				return spokes[a].SpokePriority > spokes[b].SpokePriority
			}
			return spokes[a].UpdatedAt.After(spokes[b].UpdatedAt)
		})
		if spokes == nil {
			spokes = make([]PageSummary, 0)
		}
		h.Hubs = append(h.Hubs, HubGroup{Hub: summarize(p), Spokes: spokes})
	}
	sort.Slice(h.Hubs, func(a, b int) bool { return h.Hubs[a].Hub.Slug < h.Hubs[b].Hub.Slug })
	sort.Slice(h.Orphans, func(a, b int) bool { return h.Orphans[a].Slug < h.Orphans[b].Slug })

	for name, count := range clusterCounts {
		h.Clusters = append(h.Clusters, ClusterCount{Name: name, Pages: count})
	}
	sort.Slice(h.Clusters, func(a, b int) bool { return h.Clusters[a].Name < h.Clusters[b].Name })

	return h
}
