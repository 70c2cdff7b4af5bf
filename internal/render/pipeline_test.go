// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upper(prev Value, _ any, _ any) Value {
	return Text(strings.ToUpper(prev.String()))
}

func suffix(s string) Decorator {
	return func(prev Value, _ any, _ any) Value {
		return Text(prev.String() + s)
	}
}

func TestBuilderDefaults(t *testing.T) {
	fn := NewBuilder().Build()

	assert.Equal(t, "raw", fn("raw", ModeSort, nil))
	assert.Equal(t, "raw", fn("raw", ModeType, nil))
	assert.Equal(t, "raw", fn("raw", ModeFilter, nil))
	assert.Equal(t, Text("raw"), fn("raw", ModeDisplay, nil))
	assert.Equal(t, 42, fn(42, Mode("bozo"), nil))
}

func TestBuilderFoldOrder(t *testing.T) {
	fn := NewBuilder().
		Decorate(suffix("-a")).
		Decorate(upper).
		Decorate(suffix("-b")).
		Build()

	assert.Equal(t, "FRED-A-b", Display(fn, "fred", nil).String())
}

func TestBuilderDecoratorSeesRaw(t *testing.T) {
	var seen []any
	spy := func(prev Value, raw any, row any) Value {
		seen = append(seen, raw, row)
		return prev
	}
	fn := NewBuilder().Decorate(suffix("!")).Decorate(spy).Build()

	v := Display(fn, "x", "row-1")
	assert.Equal(t, "x!", v.String())
	assert.Equal(t, []any{"x", "row-1"}, seen)
}

func TestBuilderTransformsReplace(t *testing.T) {
	fn := NewBuilder().
		Sort(func(any, any) any { return "first" }).
		Sort(func(any, any) any { return "second" }).
		Filter(func(any, any) any { return "f1" }).
		Filter(func(raw any, _ any) any { return "f2" }).
		Build()

	assert.Equal(t, "second", fn("x", ModeSort, nil))
	assert.Equal(t, "second", fn("x", ModeType, nil))
	assert.Equal(t, "f2", fn("x", ModeFilter, nil))
}

func TestBuildSnapshotsDecorators(t *testing.T) {
	b := NewBuilder().Decorate(suffix("-1"))
	fn := b.Build()
	b.Decorate(suffix("-2"))

	assert.Equal(t, "v-1", Display(fn, "v", nil).String())
	assert.Equal(t, "v-1-2", Display(b.Build(), "v", nil).String())
}

func TestTranslateThenEllipsis(t *testing.T) {
	lookup := func(key, fallback string) string {
		if key == "tableCell::CrashLoopBackOff" {
			return "Crash Loop"
		}
		return fallback
	}
	fn := NewBuilder().Decorate(Translate(lookup)).Decorate(Ellipsis).Build()

	v := Display(fn, "CrashLoopBackOff", nil)
	require.True(t, v.IsStructured())
	assert.Equal(t, "Crash Loop", v.String())
	assert.Equal(t, "Crash Loop", v.Node().Title)
	assert.True(t, v.Node().HasClass(ClassTruncate))

	v = Display(fn, "Running", nil)
	assert.Equal(t, "Running", v.String())
}

func TestValueOf(t *testing.T) {
	n := NewNode("span")
	n.Text = "hi"

	assert.Equal(t, KindText, ValueOf("s").Kind())
	assert.Equal(t, "12", ValueOf(12).String())
	assert.Equal(t, "", ValueOf(nil).String())
	assert.Equal(t, KindStructured, ValueOf(n).Kind())
	assert.Equal(t, Text("x"), ValueOf(Text("x")))
	assert.Equal(t, KindText, Structured(nil).Kind())
}
