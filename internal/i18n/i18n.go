// Package i18n resolves catalog keys to display copy for a locale.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every lookup falls back to.
const BaseLocale = "en"

//go:embed locales/*.yaml
var embedded embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds messages for every loaded locale.
type Catalog struct {
	locales map[string]map[string]string
	tags    []language.Tag
	names   []string
	matcher language.Matcher
}

// Default loads the embedded catalogs.
func Default() (*Catalog, error) {
	return LoadFS(embedded)
}

// LoadFS loads every locales/*.yaml file in fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale catalogs found")
	}
	sort.Strings(paths)

	c := &Catalog{locales: map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := c.add(p, file); err != nil {
			return nil, err
		}
	}
	if _, ok := c.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	// The base locale goes first so the matcher falls back to it.
	sort.SliceStable(c.names, func(i, j int) bool {
		if c.names[i] == BaseLocale || c.names[j] == BaseLocale {
			return c.names[i] == BaseLocale
		}
		return c.names[i] < c.names[j]
	})
	for _, name := range c.names {
		c.tags = append(c.tags, language.Make(name))
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

func (c *Catalog) add(p string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	fromPath := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", p)
	}
	if locale != fromPath {
		return fmt.Errorf("catalog %s: locale %q must match file name %q", p, locale, fromPath)
	}
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("catalog %s: %w", p, err)
	}
	if _, dup := c.locales[locale]; dup {
		return fmt.Errorf("catalog %s: locale %q defined twice", p, locale)
	}
	messages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		messages[key] = value
	}
	c.locales[locale] = messages
	c.names = append(c.names, locale)
	return nil
}

// Locales lists the loaded locales, base locale first.
func (c *Catalog) Locales() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.names...)
}

// Match picks the best loaded locale for a requested BCP 47 tag such as
// "nl-BE". Unknown or malformed requests resolve to BaseLocale.
func (c *Catalog) Match(requested string) string {
	if c == nil || c.matcher == nil {
		return BaseLocale
	}
	tag, err := language.Parse(strings.TrimSpace(requested))
	if err != nil {
		return BaseLocale
	}
	_, index, confidence := c.matcher.Match(tag)
	if confidence == language.No {
		return BaseLocale
	}
	return c.names[index]
}

// Message looks up key in locale, then in the base locale.
func (c *Catalog) Message(locale, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	if v, ok := c.locales[locale][key]; ok {
		return v, true
	}
	v, ok := c.locales[BaseLocale][key]
	return v, ok
}

// Translator resolves keys for one locale.
type Translator struct {
	catalog *Catalog
	locale  string
}

// Translator binds the best match for requested.
func (c *Catalog) Translator(requested string) *Translator {
	return &Translator{catalog: c, locale: c.Match(requested)}
}

// Locale is the bound locale.
func (t *Translator) Locale() string {
	if t == nil {
		return BaseLocale
	}
	return t.locale
}

// T returns the copy for key, or key itself when no catalog defines it.
func (t *Translator) T(key string) string {
	if t == nil || key == "" {
		return key
	}
	if v, ok := t.catalog.Message(t.locale, key); ok {
		return v
	}
	return key
}
