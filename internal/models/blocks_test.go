package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBlockJSONTypedRoundTrip(t *testing.T) {
	in := Block{
		Type: "hero",
		Content: &HeroContent{
			Heading:    "Garage Door Repair",
			Subheading: "Same-day service",
			CTALabel:   "Book now",
			CTAURL:     "/book",
		},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Block
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, "hero", out.Type)

	hero, ok := out.Content.(*HeroContent)
	require.True(t, ok, "content should decode to the typed payload")
	require.Equal(t, "Garage Door Repair", hero.Heading)
	require.Equal(t, "Book now", hero.CTALabel)
}

func TestBlockJSONUnknownTagFallsBack(t *testing.T) {
	raw := []byte(`{"type":"videoEmbed","content":{"url":"https://example.com/v.mp4","autoplay":true}}`)

	var b Block
	require.NoError(t, json.Unmarshal(raw, &b))
	require.Equal(t, "videoEmbed", b.Type)

	g, ok := b.Content.(GenericContent)
	require.True(t, ok, "unknown tags should keep their raw structure")
	require.Equal(t, "https://example.com/v.mp4", g["url"])
	require.Equal(t, true, g["autoplay"])

	// Re-serializing must not lose the foreign content.
	again, err := json.Marshal(b)
	require.NoError(t, err)
	require.JSONEq(t, string(raw), string(again))
}

func TestBlockJSONMissingType(t *testing.T) {
	var b Block
	err := json.Unmarshal([]byte(`{"content":{"heading":"x"}}`), &b)
	require.Error(t, err)
}

func TestBlockJSONAbsentContent(t *testing.T) {
	var b Block
	require.NoError(t, json.Unmarshal([]byte(`{"type":"contact"}`), &b))
	contact, ok := b.Content.(*ContactContent)
	require.True(t, ok)
	require.Empty(t, contact.Email)
}

func TestBlockBSONTypedRoundTrip(t *testing.T) {
	type doc struct {
		Blocks []Block `bson:"blocks"`
	}

	in := doc{Blocks: []Block{
		{Type: "faq", Content: &FAQContent{
			Heading: "Common questions",
			Items:   []FAQItem{{Question: "How fast?", Answer: "Same day."}},
		}},
		{Type: "serviceAreaMap", Content: &ServiceAreaMapContent{
			CenterLat: 30.27,
			CenterLng: -97.74,
			Zoom:      11,
			Areas:     []string{"Austin", "Round Rock"},
		}},
	}}

	data, err := bson.Marshal(in)
	require.NoError(t, err)

	var out doc
	require.NoError(t, bson.Unmarshal(data, &out))
	require.Len(t, out.Blocks, 2)

	faq, ok := out.Blocks[0].Content.(*FAQContent)
	require.True(t, ok)
	require.Equal(t, "How fast?", faq.Items[0].Question)

	area, ok := out.Blocks[1].Content.(*ServiceAreaMapContent)
	require.True(t, ok)
	require.InDelta(t, 30.27, area.CenterLat, 0.0001)
	require.Equal(t, []string{"Austin", "Round Rock"}, area.Areas)
}

func TestBlockBSONUnknownTagFallsBack(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"type":    "countdown",
		"content": bson.M{"target": "2027-01-01"},
	})
	require.NoError(t, err)

	var b Block
	require.NoError(t, bson.Unmarshal(raw, &b))
	require.Equal(t, "countdown", b.Type)

	g, ok := b.Content.(GenericContent)
	require.True(t, ok)
	require.Equal(t, "2027-01-01", g["target"])
}

func TestKnownBlockType(t *testing.T) {
	require.True(t, KnownBlockType("hero"))
	require.True(t, KnownBlockType("localProTips"))
	require.False(t, KnownBlockType("videoEmbed"))
	require.False(t, KnownBlockType(""))
}
