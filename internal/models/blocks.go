package models

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// Block is one typed unit of page content. The wire form is
// {"type": "hero", "content": {...}} — the type tag picks the payload
// shape from blockTypes. Unrecognized tags decode into GenericContent
// instead of failing, so a page authored against a newer block catalog
// still round-trips through an older server.
type Block struct {
	Type    string       `json:"type"`
	Content BlockContent `json:"content"`
}

// BlockContent is the closed payload family. Concrete types live below;
// the unexported method keeps the set closed to this package.
type BlockContent interface {
	blockContent()
}

// blockTypes maps a type tag to a constructor for its payload. This is
// the single decode table — JSON and BSON both go through it.
var blockTypes = map[string]func() BlockContent{
	"hero":           func() BlockContent { return &HeroContent{} },
	"primaryCta":     func() BlockContent { return &PrimaryCTAContent{} },
	"secondaryCta":   func() BlockContent { return &SecondaryCTAContent{} },
	"cardGrid":       func() BlockContent { return &CardGridContent{} },
	"faq":            func() BlockContent { return &FAQContent{} },
	"breadcrumbs":    func() BlockContent { return &BreadcrumbsContent{} },
	"trustBar":       func() BlockContent { return &TrustBarContent{} },
	"howItWorks":     func() BlockContent { return &HowItWorksContent{} },
	"serviceAreaMap": func() BlockContent { return &ServiceAreaMapContent{} },
	"localProTips":   func() BlockContent { return &LocalProTipsContent{} },
	"gallery":        func() BlockContent { return &GalleryContent{} },
	"testimonials":   func() BlockContent { return &TestimonialsContent{} },
	"contact":        func() BlockContent { return &ContactContent{} },
	"blog":           func() BlockContent { return &BlogContent{} },
}

// KnownBlockType reports whether tag has a typed payload.
func KnownBlockType(tag string) bool {
	_, ok := blockTypes[tag]
	return ok
}

type HeroContent struct {
	Heading    string `json:"heading" bson:"heading"`
	Subheading string `json:"subheading,omitempty" bson:"subheading,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	CTALabel   string `json:"ctaLabel,omitempty" bson:"ctaLabel,omitempty"`
	CTAURL     string `json:"ctaUrl,omitempty" bson:"ctaUrl,omitempty"`
}

type PrimaryCTAContent struct {
	Heading string `json:"heading" bson:"heading"`
	Body    string `json:"body,omitempty" bson:"body,omitempty"`
	Label   string `json:"label" bson:"label"`
	URL     string `json:"url" bson:"url"`
}

type SecondaryCTAContent struct {
	Heading string `json:"heading" bson:"heading"`
	Label   string `json:"label" bson:"label"`
	URL     string `json:"url" bson:"url"`
}

type Card struct {
	Title    string `json:"title" bson:"title"`
	Body     string `json:"body,omitempty" bson:"body,omitempty"`
	ImageURL string `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	LinkURL  string `json:"linkUrl,omitempty" bson:"linkUrl,omitempty"`
}

type CardGridContent struct {
	Heading string `json:"heading,omitempty" bson:"heading,omitempty"`
	Columns int    `json:"columns,omitempty" bson:"columns,omitempty"`
	Cards   []Card `json:"cards" bson:"cards"`
}

type FAQItem struct {
	Question string `json:"question" bson:"question"`
	Answer   string `json:"answer" bson:"answer"`
}

type FAQContent struct {
	Heading string    `json:"heading,omitempty" bson:"heading,omitempty"`
	Items   []FAQItem `json:"items" bson:"items"`
}

type Breadcrumb struct {
	Label string `json:"label" bson:"label"`
	URL   string `json:"url" bson:"url"`
}

type BreadcrumbsContent struct {
	Trail []Breadcrumb `json:"trail" bson:"trail"`
}

type TrustBarContent struct {
	Heading string   `json:"heading,omitempty" bson:"heading,omitempty"`
	Logos   []string `json:"logos" bson:"logos"`
}

type HowItWorksStep struct {
	Title string `json:"title" bson:"title"`
	Body  string `json:"body" bson:"body"`
	Icon  string `json:"icon,omitempty" bson:"icon,omitempty"`
}

type HowItWorksContent struct {
	Heading string           `json:"heading,omitempty" bson:"heading,omitempty"`
	Steps   []HowItWorksStep `json:"steps" bson:"steps"`
}

type ServiceAreaMapContent struct {
	Heading   string   `json:"heading,omitempty" bson:"heading,omitempty"`
	CenterLat float64  `json:"centerLat" bson:"centerLat"`
	CenterLng float64  `json:"centerLng" bson:"centerLng"`
	Zoom      int      `json:"zoom,omitempty" bson:"zoom,omitempty"`
	Areas     []string `json:"areas,omitempty" bson:"areas,omitempty"`
}

type ProTip struct {
	Title string `json:"title" bson:"title"`
	Body  string `json:"body" bson:"body"`
}

type LocalProTipsContent struct {
	Heading string   `json:"heading,omitempty" bson:"heading,omitempty"`
	Tips    []ProTip `json:"tips" bson:"tips"`
}

type GalleryImage struct {
	URL     string `json:"url" bson:"url"`
	Alt     string `json:"alt,omitempty" bson:"alt,omitempty"`
	Caption string `json:"caption,omitempty" bson:"caption,omitempty"`
}

type GalleryContent struct {
	Heading string         `json:"heading,omitempty" bson:"heading,omitempty"`
	Images  []GalleryImage `json:"images" bson:"images"`
}

type Testimonial struct {
	Quote  string `json:"quote" bson:"quote"`
	Author string `json:"author" bson:"author"`
	Rating int    `json:"rating,omitempty" bson:"rating,omitempty"`
}

type TestimonialsContent struct {
	Heading string        `json:"heading,omitempty" bson:"heading,omitempty"`
	Items   []Testimonial `json:"items" bson:"items"`
}

type ContactContent struct {
	Heading string `json:"heading,omitempty" bson:"heading,omitempty"`
	Email   string `json:"email,omitempty" bson:"email,omitempty"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
	Address string `json:"address,omitempty" bson:"address,omitempty"`
	MapURL  string `json:"mapUrl,omitempty" bson:"mapUrl,omitempty"`
}

type BlogContent struct {
	Heading  string `json:"heading,omitempty" bson:"heading,omitempty"`
	Category string `json:"category,omitempty" bson:"category,omitempty"`
	Limit    int    `json:"limit,omitempty" bson:"limit,omitempty"`
}

// GenericContent is the fallback payload for unrecognized tags. It keeps
// the raw key/value structure so re-serializing a page does not lose
// content the server does not understand.
type GenericContent map[string]any

func (*HeroContent) blockContent()           {}
func (*PrimaryCTAContent) blockContent()     {}
func (*SecondaryCTAContent) blockContent()   {}
func (*CardGridContent) blockContent()       {}
func (*FAQContent) blockContent()            {}
func (*BreadcrumbsContent) blockContent()    {}
func (*TrustBarContent) blockContent()       {}
func (*HowItWorksContent) blockContent()     {}
func (*ServiceAreaMapContent) blockContent() {}
func (*LocalProTipsContent) blockContent()   {}
func (*GalleryContent) blockContent()        {}
func (*TestimonialsContent) blockContent()   {}
func (*ContactContent) blockContent()        {}
func (*BlogContent) blockContent()           {}
func (GenericContent) blockContent()         {}

// UnmarshalJSON decodes the tagged union: read the tag, pick the payload
// type from the table, decode into it. Unknown tags fall back to
// GenericContent. An absent content field yields a zero payload.
func (b *Block) UnmarshalJSON(data []byte) error {
	var env struct {
		Type    string          `json:"type"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode block envelope: %w", err)
	}
	if env.Type == "" {
		return fmt.Errorf("block is missing a type tag")
	}
	b.Type = env.Type

	ctor, ok := blockTypes[env.Type]
	if !ok {
		g := GenericContent{}
		if len(env.Content) > 0 {
			if err := json.Unmarshal(env.Content, &g); err != nil {
				return fmt.Errorf("decode %q block content: %w", env.Type, err)
			}
		}
		b.Content = g
		return nil
	}

	payload := ctor()
	if len(env.Content) > 0 {
		if err := json.Unmarshal(env.Content, payload); err != nil {
			return fmt.Errorf("decode %q block content: %w", env.Type, err)
		}
	}
	b.Content = payload
	return nil
}

func (b Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string       `json:"type"`
		Content BlockContent `json:"content"`
	}{Type: b.Type, Content: b.Content})
}

// blockBSON mirrors the JSON envelope for Mongo storage: documents keep
// the same {type, content} shape in the database as on the wire.
type blockBSON struct {
	Type    string   `bson:"type"`
	Content bson.Raw `bson:"content,omitempty"`
}

func (b Block) MarshalBSON() ([]byte, error) {
	return bson.Marshal(struct {
		Type    string       `bson:"type"`
		Content BlockContent `bson:"content,omitempty"`
	}{Type: b.Type, Content: b.Content})
}

func (b *Block) UnmarshalBSON(data []byte) error {
	var env blockBSON
	if err := bson.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode block envelope: %w", err)
	}
	if env.Type == "" {
		return fmt.Errorf("block is missing a type tag")
	}
	b.Type = env.Type

	ctor, ok := blockTypes[env.Type]
	if !ok {
		g := GenericContent{}
		if len(env.Content) > 0 {
			if err := bson.Unmarshal(env.Content, &g); err != nil {
				return fmt.Errorf("decode %q block content: %w", env.Type, err)
			}
		}
		b.Content = g
		return nil
	}

	payload := ctor()
	if len(env.Content) > 0 {
		if err := bson.Unmarshal(env.Content, payload); err != nil {
			return fmt.Errorf("decode %q block content: %w", env.Type, err)
		}
	}
	b.Content = payload
	return nil
}
