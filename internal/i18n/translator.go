// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

// Package i18n looks up display strings with a language fallback chain.
package i18n

import (
	"os"
	"strings"

	"github.com/spyglass/spyglass/internal/resource"
	"golang.org/x/text/language"
)

// Key prefixes by purpose.
const (
	ResourcePrefix = "resource::"
	ColumnPrefix   = "tableColumn::"
	CellPrefix     = "tableCell::"
)

// FallbackLanguage is consulted last.
const FallbackLanguage = "en"

// Catalog maps lowercase language tags to translation tables.
type Catalog map[string]map[string]string

// Translator resolves keys for one language.
type Translator struct {
	chain   []string
	catalog Catalog
}

// New returns a translator for lang. An empty or malformed lang uses the
// fallback language only.
func New(lang string, catalog Catalog) *Translator {
	if catalog == nil {
		catalog = DefaultCatalog
	}

	return &Translator{
		chain:   Chain(lang),
		catalog: catalog,
	}
}

// Chain returns the lookup order for lang: the exact tag, its base language
// and finally the fallback language.
func Chain(lang string) []string {
	chain := make([]string, 0, 3)
	add := func(s string) {
		s = strings.ToLower(s)
		for _, c := range chain {
			if c == s {
				return
			}
		}
		chain = append(chain, s)
	}

	if tag, err := language.Parse(normalize(lang)); err == nil && tag != language.Und {
		add(tag.String())
		if base, conf := tag.Base(); conf != language.No {
			add(base.String())
		}
	}
	add(FallbackLanguage)

	return chain
}

// Languages returns the lookup chain.
func (t *Translator) Languages() []string {
	return append([]string(nil), t.chain...)
}

// Translate returns the first translation along the chain or fallback.
func (t *Translator) Translate(key, fallback string) string {
	for _, lang := range t.chain {
		if s, ok := t.catalog[lang][key]; ok && s != "" {
			return s
		}
	}
	return fallback
}

// Resource returns the display name of a resource type.
func (t *Translator) Resource(k resource.Key) string {
	return t.Translate(ResourcePrefix+k.String(), k.Resource)
}

// Column returns the display name of a column.
func (t *Translator) Column(name string) string {
	return t.Translate(ColumnPrefix+name, name)
}

// Cell returns the display text of a cell value.
func (t *Translator) Cell(text string) string {
	return t.Translate(CellPrefix+text, text)
}

// DetectLanguage reads the POSIX locale environment.
func DetectLanguage() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" && v != "C" && v != "POSIX" {
			return normalize(v)
		}
	}
	return FallbackLanguage
}

// normalize turns "en_GB.UTF-8" into "en-gb".
func normalize(s string) string {
	s, _, _ = strings.Cut(s, ".")
	s, _, _ = strings.Cut(s, "@")
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
}
