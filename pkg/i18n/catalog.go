// Package i18n provides the localized message catalogs used to title and word
// validation reports.
package i18n

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Catalog resolves message keys for one language.
type Catalog struct {
	tag      language.Tag
	messages map[string]string
	fallback *Catalog
}

// Language returns the catalog's language tag.
func (c *Catalog) Language() language.Tag {
	return c.tag
}

// Lookup returns the message for key. Missing keys fall back to the default
// language and finally to the key itself.
func (c *Catalog) Lookup(key string) string {
	for cat := c; cat != nil; cat = cat.fallback {
		if msg, ok := cat.messages[key]; ok {
			return msg
		}
	}
	return key
}

// Bundle holds the catalogs of all supported languages and picks one per request.
// A Bundle must not be modified once it is shared between goroutines.
type Bundle struct {
	def      *Catalog
	tags     []language.Tag
	catalogs []*Catalog
	matcher  language.Matcher
}

// NewBundle creates a bundle with the built-in languages. defaultLang must be one of them.
func NewBundle(defaultLang string) (*Bundle, error) {
	defTag, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("invalid default language %q: %w", defaultLang, err)
	}

	base, _ := defTag.Base()
	defTag = language.Make(base.String())

	b := &Bundle{}
	def, ok := builtin[base.String()]
	if !ok {
		return nil, fmt.Errorf("no built-in catalog for default language %q", defaultLang)
	}
	b.def = b.add(defTag, def)

	for lang, messages := range builtin {
		tag := language.MustParse(lang)
		if tag == defTag {
			continue
		}
		b.add(tag, messages)
	}
	return b, nil
}

// add registers messages for tag, merging into an existing catalog of the same language.
func (b *Bundle) add(tag language.Tag, messages map[string]string) *Catalog {
	for _, c := range b.catalogs {
		if c.tag == tag {
			for k, v := range messages {
				c.messages[k] = v
			}
			return c
		}
	}

	c := &Catalog{tag: tag, messages: make(map[string]string, len(messages))}
	for k, v := range messages {
		c.messages[k] = v
	}
	if b.def != nil {
		c.fallback = b.def
	}
	b.tags = append(b.tags, tag)
	b.catalogs = append(b.catalogs, c)
	b.matcher = language.NewMatcher(b.tags)
	return c
}

// LoadFile merges message overrides from a TOML file with one table per language:
//
//	[en]
//	"query.success" = "Query compiled"
func (b *Bundle) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog file: %w", err)
	}
	return b.Load(data)
}

// Load merges message overrides from TOML data. See LoadFile.
func (b *Bundle) Load(data []byte) error {
	var doc map[string]map[string]string
	if err := toml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}
	for lang, messages := range doc {
		tag, err := language.Parse(lang)
		if err != nil {
			return fmt.Errorf("invalid catalog language %q: %w", lang, err)
		}
		b.add(tag, messages)
	}
	return nil
}

// Default returns the default-language catalog.
func (b *Bundle) Default() *Catalog {
	return b.def
}

// Match picks the catalog that best serves an Accept-Language header value.
// Unparseable or empty headers select the default catalog.
func (b *Bundle) Match(acceptLanguage string) *Catalog {
	if acceptLanguage == "" {
		return b.def
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return b.def
	}
	_, index, confidence := b.matcher.Match(tags...)
	if confidence == language.No || index < 0 || index >= len(b.catalogs) {
		return b.def
	}
	return b.catalogs[index]
}
