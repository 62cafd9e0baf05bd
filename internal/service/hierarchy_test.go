package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lalith-99/pressgate/internal/models"
)

func hierarchyPage(slug string, isHub bool, parent, cluster string, priority int, updated time.Time) models.Page {
	return models.Page{
		Slug:          slug,
		Meta:          models.PageMeta{Title: "Title " + slug, UpdatedAt: updated},
		IsHub:         isHub,
		ParentHubSlug: parent,
		TopicCluster:  cluster,
		SpokePriority: priority,
	}
}

func TestBuildHierarchy(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	pages := []models.Page{
		hierarchyPage("garage-doors", true, "", "doors", 0, base),
		hierarchyPage("windows", true, "", "windows", 0, base),
		hierarchyPage("spring-repair", false, "garage-doors", "doors", 5, base),
		hierarchyPage("opener-install", false, "garage-doors", "doors", 9, base),
		hierarchyPage("panel-replacement", false, "garage-doors", "doors", 5, base.Add(time.Hour)),
		hierarchyPage("about-us", false, "", "", 0, base),
	}

	h := buildHierarchy(pages)

	require.Len(t, h.Hubs, 2)
	require.Equal(t, "garage-doors", h.Hubs[0].Hub.Slug)
	require.Equal(t, "windows", h.Hubs[1].Hub.Slug)

	// Spokes order by priority descending; equal priorities fall back to
	// most recently updated first.
	spokes := h.Hubs[0].Spokes
	require.Len(t, spokes, 3)
	require.Equal(t, "opener-install", spokes[0].Slug)
	require.Equal(t, "panel-replacement", spokes[1].Slug)
	require.Equal(t, "spring-repair", spokes[2].Slug)

	// A hub with no spokes still appears, with an empty (non-nil) list.
	require.NotNil(t, h.Hubs[1].Spokes)
	require.Empty(t, h.Hubs[1].Spokes)

	require.Len(t, h.Orphans, 1)
	require.Equal(t, "about-us", h.Orphans[0].Slug)

	require.Equal(t, []ClusterCount{
		{Name: "doors", Pages: 4},
		{Name: "windows", Pages: 1},
	}, h.Clusters)
}

func TestBuildHierarchyEmpty(t *testing.T) {
	h := buildHierarchy(nil)
	require.NotNil(t, h.Hubs)
	require.NotNil(t, h.Orphans)
	require.NotNil(t, h.Clusters)
	require.Empty(t, h.Hubs)
}

// A spoke pointing at a slug with no hub page is treated as orphaned
// from the hub view but never dropped from cluster counts.
func TestBuildHierarchyDanglingParent(t *testing.T) {
	pages := []models.Page{
		hierarchyPage("lost-spoke", false, "no-such-hub", "misc", 1, time.Now()),
	}

	h := buildHierarchy(pages)
	require.Empty(t, h.Hubs)
	require.Empty(t, h.Orphans)
	require.Equal(t, []ClusterCount{{Name: "misc", Pages: 1}}, h.Clusters)
}
