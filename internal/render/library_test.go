// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package render

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLookup(key, fallback string) string {
	switch key {
	case "tableCell::CrashLoopBackOff":
		return "Crash Loop"
	default:
		return fallback
	}
}

func TestStatusRenderer(t *testing.T) {
	l := NewLibrary(testLookup)
	fn := l.Status()

	v := Display(fn, "CrashLoopBackOff", nil)
	require.True(t, v.IsStructured())
	n := v.Node()
	assert.Equal(t, "Crash Loop", n.Text)
	assert.Equal(t, "CrashLoopBackOff", n.Title)
	assert.True(t, n.HasClass(ClassBadge))
	bg, _ := n.ClassWithPrefix(ClassBackground)
	assert.Equal(t, "danger", bg)

	v = Display(fn, "Terminating", nil)
	bg, _ = v.Node().ClassWithPrefix(ClassBackground)
	assert.Equal(t, string(SeverityUnknown), bg)
}

func TestStatusSortKeys(t *testing.T) {
	fn := NewLibrary(nil).Status()

	uu := map[string]struct {
		status string
		key    string
	}{
		"first":   {status: "Completed", key: "000"},
		"running": {status: "Running", key: "002"},
		"crash":   {status: "CrashLoopBackOff", key: "006"},
		"failed":  {status: "Failed", key: "005"},
		"unknown": {status: "Unknown", key: "999Unknown"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.key, fn(u.status, ModeSort, nil))
			assert.Equal(t, u.key, fn(u.status, ModeType, nil))
			assert.Equal(t, u.status, fn(u.status, ModeFilter, nil))
		})
	}
}

func TestStatusSortOrder(t *testing.T) {
	fn := NewLibrary(nil).Status()
	ss := []string{"Zombie", "Pending", "Running", "Failed", "Completed"}
	sort.SliceStable(ss, func(i, j int) bool {
		return fn(ss[i], ModeSort, nil).(string) < fn(ss[j], ModeSort, nil).(string)
	})

	assert.Equal(t, []string{"Completed", "Running", "Pending", "Failed", "Zombie"}, ss)
}

func TestAgeRenderer(t *testing.T) {
	l := NewLibrary(nil)
	l.Now = fixedNow(100_000)
	fn := l.Age()

	v := Display(fn, int64(10_000), nil)
	assert.Equal(t, "1d ago", v.String())
	assert.True(t, v.Node().HasClass(ClassTruncate))

	older := fn(int64(5), ModeSort, nil).(string)
	newer := fn(int64(10_000), ModeSort, nil).(string)
	assert.Less(t, older, newer)
	assert.Equal(t, "bozo", fn("bozo", ModeSort, nil))
}

func TestAgeSortKeyNegative(t *testing.T) {
	fn := NewLibrary(nil).Age()

	tt := []int64{-1_000_000, -10, -1, 0, 1, 10, 1_000_000}
	for i := 1; i < len(tt); i++ {
		prev := fn(tt[i-1], ModeSort, nil).(string)
		cur := fn(tt[i], ModeSort, nil).(string)
		assert.Less(t, prev, cur, "%d vs %d", tt[i-1], tt[i])
	}
}

func TestSelectorRenderer(t *testing.T) {
	fn := NewLibrary(nil).Selector()

	v := Display(fn, "app=web,tier=db", nil)
	n := v.Node()
	require.Len(t, n.Children, 1)
	assert.Equal(t, "app=web,tier=db", n.Title)
	assert.Len(t, n.Children[0].Children, 2)
	assert.Equal(t, "app=webtier=db", v.String())
}

func TestDefaultRenderer(t *testing.T) {
	fn := NewLibrary(testLookup).Default()

	v := Display(fn, "CrashLoopBackOff", nil)
	assert.Equal(t, "Crash Loop", v.String())
	assert.Equal(t, "Crash Loop", v.Node().Title)
	assert.Equal(t, "CrashLoopBackOff", fn("CrashLoopBackOff", ModeSort, nil))
}

func TestNamed(t *testing.T) {
	l := NewLibrary(nil)

	for _, n := range Names() {
		fn, err := l.Named(n)
		require.NoError(t, err, n)
		assert.NotNil(t, fn)
	}

	fn, err := l.Named("")
	require.NoError(t, err)
	assert.NotNil(t, fn)

	_, err = l.Named("bozo")
	assert.Error(t, err)
}

func TestPlain(t *testing.T) {
	fn := NewLibrary(nil).Plain()

	assert.Equal(t, Text("x"), Display(fn, "x", nil))
}
