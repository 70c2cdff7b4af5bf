// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package i18n

import (
	"testing"

	"github.com/spyglass/spyglass/internal/resource"
	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	uu := map[string]struct {
		lang string
		e    []string
	}{
		"regional": {lang: "en-GB", e: []string{"en-gb", "en"}},
		"posix":    {lang: "de_AT.UTF-8", e: []string{"de-at", "de", "en"}},
		"base":     {lang: "fr", e: []string{"fr", "en"}},
		"english":  {lang: "en", e: []string{"en"}},
		"blank":    {lang: "", e: []string{"en"}},
		"garbage":  {lang: "!!", e: []string{"en"}},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, Chain(u.lang))
		})
	}
}

func TestTranslate(t *testing.T) {
	cat := Catalog{
		"en":    {"greet": "Hello", "bye": "Bye"},
		"en-gb": {"greet": "Cheers"},
		"de":    {"greet": "Hallo"},
	}

	assert.Equal(t, "Cheers", New("en-GB", cat).Translate("greet", "x"))
	assert.Equal(t, "Bye", New("en-GB", cat).Translate("bye", "x"))
	assert.Equal(t, "Hallo", New("de-CH", cat).Translate("greet", "x"))
	assert.Equal(t, "Hello", New("ja", cat).Translate("greet", "x"))
	assert.Equal(t, "x", New("en", cat).Translate("missing", "x"))
}

func TestPrefixedHelpers(t *testing.T) {
	tr := New("en-US", nil)

	assert.Equal(t, "Stateful Sets", tr.Resource(resource.StatefulSets))
	assert.Equal(t, "widgets", tr.Resource(resource.NewKey("acme.io", "v1", "widgets")))
	assert.Equal(t, "Age", tr.Column("Age"))
	assert.Equal(t, "Restarts", tr.Column("Restarts"))
	assert.Equal(t, "Crash Loop", tr.Cell("CrashLoopBackOff"))
	assert.Equal(t, "Running", tr.Cell("Running"))
	assert.Equal(t, []string{"en-us", "en"}, tr.Languages())
}

func TestDefaultCatalogCoversTaxonomy(t *testing.T) {
	tr := New("en", nil)
	for _, k := range resource.DefaultTaxonomy.Keys() {
		_, ok := DefaultCatalog["en"][ResourcePrefix+k.String()]
		assert.True(t, ok, k.String())
		assert.NotEqual(t, k.Resource, tr.Resource(k))
	}
}

func TestDetectLanguage(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "pt_BR.UTF-8")
	assert.Equal(t, "pt-br", DetectLanguage())

	t.Setenv("LANG", "C")
	assert.Equal(t, FallbackLanguage, DetectLanguage())
}
