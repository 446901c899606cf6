// Package content loads the static page description: sections, themes,
// carousel nodes and the gallery entries shown by the overlay view.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"scroll-scene/internal/core"
	"scroll-scene/internal/page"
)

//go:embed content.yaml
var defaultContent []byte

// File mirrors content.yaml.
type File struct {
	Title     string               `yaml:"title"`
	SwapLabel string               `yaml:"swap_label"`
	Nav       []NavEntry           `yaml:"nav"`
	Sections  []SectionEntry       `yaml:"sections"`
	Carousel  CarouselEntry        `yaml:"carousel"`
	Themes    map[string]ThemeSpec `yaml:"themes"`
	Gallery   GallerySpec          `yaml:"gallery"`
}

// NavEntry is one navigation anchor.
type NavEntry struct {
	Label  string `yaml:"label"`
	Target string `yaml:"target"`
}

// SectionEntry describes one narrative section.
type SectionEntry struct {
	ID       string      `yaml:"id"`
	Heading  string      `yaml:"heading"`
	Body     string      `yaml:"body"`
	HeightVH float64     `yaml:"height_vh"`
	Progress *float64    `yaml:"progress"`
	Items    []ItemEntry `yaml:"items"`
}

// ItemEntry is one animatable section child.
type ItemEntry struct {
	Kind  string `yaml:"kind"`
	Label string `yaml:"label"`
}

// CarouselEntry describes the timeline carousel.
type CarouselEntry struct {
	Section string      `yaml:"section"`
	Nodes   []NodeEntry `yaml:"nodes"`
}

// NodeEntry is one carousel node.
type NodeEntry struct {
	Title  string `yaml:"title"`
	Body   string `yaml:"body"`
	Active bool   `yaml:"active"`
}

// ThemeSpec is a theme as written in the file, colours in hex.
type ThemeSpec struct {
	Primary    string `yaml:"primary"`
	Secondary  string `yaml:"secondary"`
	Background string `yaml:"background"`
}

// GallerySpec describes the alternate overlay view.
type GallerySpec struct {
	Title    string  `yaml:"title"`
	Subtitle string  `yaml:"subtitle"`
	Footer   string  `yaml:"footer"`
	Back     string  `yaml:"back"`
	Entries  []Entry `yaml:"entries"`
}

// Entry is one gallery card.
type Entry struct {
	Title    string `yaml:"title"`
	ImageURL string `yaml:"image_url"`
	Short    string `yaml:"short"`
	Long     string `yaml:"long"`
}

// Theme is a parsed palette.
type Theme struct {
	Primary    core.RGB
	Secondary  core.RGB
	Background core.RGB
}

// Bundle is validated content ready to build pages from.
type Bundle struct {
	file   File
	themes map[string]Theme
}

// Default decodes the embedded content.
func Default() (*Bundle, error) {
	return Load("")
}

// Load decodes the embedded content and, when overlayPath is set, layers
// that YAML file on top of it. Top-level keys present in the overlay replace
// the defaults wholesale; themes merge by section id.
func Load(overlayPath string) (*Bundle, error) {
	var f File
	if err := yamlv3.Unmarshal(defaultContent, &f); err != nil {
		return nil, fmt.Errorf("decode embedded content: %w", err)
	}
	if overlayPath != "" {
		if _, err := os.Stat(overlayPath); err != nil {
			return nil, fmt.Errorf("content overlay %s: %w", overlayPath, err)
		}
		k := koanf.New(".")
		if err := k.Load(file.Provider(overlayPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading content overlay %s: %w", overlayPath, err)
		}
		var over File
		if err := k.UnmarshalWithConf("", &over, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
			return nil, fmt.Errorf("decoding content overlay %s: %w", overlayPath, err)
		}
		f.merge(over)
	}
	return newBundle(f)
}

func (f *File) merge(over File) {
	if over.Title != "" {
		f.Title = over.Title
	}
	if over.SwapLabel != "" {
		f.SwapLabel = over.SwapLabel
	}
	if len(over.Nav) > 0 {
		f.Nav = over.Nav
	}
	if len(over.Sections) > 0 {
		f.Sections = over.Sections
	}
	if len(over.Carousel.Nodes) > 0 || over.Carousel.Section != "" {
		f.Carousel = over.Carousel
	}
	if len(over.Gallery.Entries) > 0 || over.Gallery.Title != "" {
		f.Gallery = over.Gallery
	}
	if f.Themes == nil {
		f.Themes = map[string]ThemeSpec{}
	}
	for id, th := range over.Themes {
		f.Themes[id] = th
	}
}

// Parse decodes content from YAML bytes, without the embedded defaults.
func Parse(data []byte) (*Bundle, error) {
	var f File
	if err := yamlv3.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return newBundle(f)
}

func newBundle(f File) (*Bundle, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	themes := make(map[string]Theme, len(f.Themes))
	for id, spec := range f.Themes {
		th, err := spec.parse()
		if err != nil {
			return nil, fmt.Errorf("theme %q: %w", id, err)
		}
		themes[id] = th
	}
	return &Bundle{file: f, themes: themes}, nil
}

// Validate checks structural rules the page relies on.
func (f File) Validate() error {
	if len(f.Sections) == 0 {
		return fmt.Errorf("content: at least one section is required")
	}
	seen := map[string]bool{}
	for i, s := range f.Sections {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return fmt.Errorf("content: section %d has no id", i)
		}
		if seen[id] {
			return fmt.Errorf("content: duplicate section id %q", id)
		}
		seen[id] = true
		if s.HeightVH <= 0 {
			return fmt.Errorf("content: section %q needs a positive height_vh", id)
		}
		if s.Progress != nil && (*s.Progress < 0 || *s.Progress > 100) {
			return fmt.Errorf("content: section %q progress %v outside 0-100", id, *s.Progress)
		}
		for j, it := range s.Items {
			switch page.ItemKind(it.Kind) {
			case page.ItemTimelineNode, page.ItemProjectCard:
			default:
				return fmt.Errorf("content: section %q item %d has unknown kind %q", id, j, it.Kind)
			}
		}
	}
	for _, n := range f.Nav {
		if !seen[n.Target] {
			return fmt.Errorf("content: nav link %q targets unknown section %q", n.Label, n.Target)
		}
	}
	if len(f.Carousel.Nodes) > 0 && !seen[f.Carousel.Section] {
		return fmt.Errorf("content: carousel placed in unknown section %q", f.Carousel.Section)
	}
	return nil
}

func (s ThemeSpec) parse() (Theme, error) {
	var th Theme
	var err error
	if th.Primary, err = core.ParseHex(s.Primary); err != nil {
		return Theme{}, fmt.Errorf("primary: %w", err)
	}
	if th.Secondary, err = core.ParseHex(s.Secondary); err != nil {
		return Theme{}, fmt.Errorf("secondary: %w", err)
	}
	if th.Background, err = core.ParseHex(s.Background); err != nil {
		return Theme{}, fmt.Errorf("background: %w", err)
	}
	return th, nil
}

// Themes returns a copy of the theme table.
func (b *Bundle) Themes() map[string]Theme {
	out := make(map[string]Theme, len(b.themes))
	for k, v := range b.themes {
		out[k] = v
	}
	return out
}

// MissingThemes lists section ids without a theme entry.
func (b *Bundle) MissingThemes() []string {
	var out []string
	for _, s := range b.file.Sections {
		if _, ok := b.themes[s.ID]; !ok {
			out = append(out, s.ID)
		}
	}
	sort.Strings(out)
	return out
}

// Gallery returns the overlay view description.
func (b *Bundle) Gallery() GallerySpec {
	g := b.file.Gallery
	g.Entries = append([]Entry(nil), g.Entries...)
	return g
}

// Document builds a fresh normal-mode page.
func (b *Bundle) Document() *page.Document {
	f := b.file
	doc := &page.Document{Title: f.Title, SwapLabel: f.SwapLabel}
	for _, n := range f.Nav {
		doc.Nav = append(doc.Nav, page.NavLink{Label: n.Label, Target: n.Target})
	}
	for _, s := range f.Sections {
		sec := page.Section{
			ID:       s.ID,
			Heading:  s.Heading,
			Body:     s.Body,
			HeightVH: s.HeightVH,
		}
		if s.Progress != nil {
			sec.Progress = *s.Progress
			sec.HasProgress = true
		}
		for _, it := range s.Items {
			sec.Items = append(sec.Items, page.Item{Kind: page.ItemKind(it.Kind), Label: it.Label, Opacity: 1})
		}
		doc.Sections = append(doc.Sections, sec)
	}
	if len(f.Carousel.Nodes) > 0 {
		c := &page.Carousel{SectionID: f.Carousel.Section}
		for _, n := range f.Carousel.Nodes {
			c.Nodes = append(c.Nodes, page.Node{Title: n.Title, Body: n.Body, Active: n.Active, Opacity: 1})
		}
		doc.Carousel = c
	}
	if th, ok := b.themes[f.Sections[0].ID]; ok {
		doc.Style = page.Style{Primary: th.Primary, Secondary: th.Secondary, Background: th.Background}
	}
	return doc
}
