// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package model1

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/spyglass/spyglass/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(id string, cells ...any) Row {
	return Row{ID: id, Cells: cells}
}

func TestRowCustomize(t *testing.T) {
	r := Row{ID: "default/fred", Meta: Meta{Name: "fred", Namespace: "default"}, Cells: []any{"a", "b", "c"}}

	c := r.Customize([]int{2, -1, 0, 7})
	assert.Equal(t, []any{"c", nil, "a", nil}, c.Cells)
	assert.Equal(t, r.ID, c.ID)
	assert.Equal(t, "default/fred", c.Meta.FQN())
	assert.Equal(t, "fred", Meta{Name: "fred"}.FQN())
}

func TestRowDiff(t *testing.T) {
	uu := map[string]struct {
		a, b   Row
		ageCol int
		e      bool
	}{
		"same":       {a: row("1", "x", 1), b: row("1", "x", 1), ageCol: -1},
		"cell":       {a: row("1", "x"), b: row("1", "y"), ageCol: -1, e: true},
		"id":         {a: row("1", "x"), b: row("2", "x"), ageCol: -1, e: true},
		"len":        {a: row("1", "x"), b: row("1", "x", "y"), ageCol: -1, e: true},
		"age-only":   {a: row("1", "x", 10), b: row("1", "x", 20), ageCol: 1},
		"typed-same": {a: row("1", int64(3)), b: row("1", "3"), ageCol: -1},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, u.a.Diff(u.b, u.ageCol))
		})
	}
}

func TestReconcile(t *testing.T) {
	h := Header{{Name: "Name"}, {Name: "Status"}, {Name: "Age", Attrs: Attrs{Time: true}}}
	first := Reconcile(nil, Rows{row("a", "a", "Running", 1), row("b", "b", "Pending", 2)}, h)
	require.Equal(t, 2, first.Len())
	first.Range(func(_ int, re RowEvent) bool {
		assert.Equal(t, EventAdd, re.Kind)
		return true
	})

	second := Reconcile(first, Rows{
		row("b", "b", "Running", 3),
		row("a", "a", "Running", 9),
		row("c", "c", "Pending", 4),
	}, h)

	b, ok := second.Get("b")
	require.True(t, ok)
	assert.Equal(t, EventUpdate, b.Kind)
	assert.Equal(t, DeltaRow{"", "Pending", ""}, b.Deltas)

	a, _ := second.Get("a")
	assert.Equal(t, EventUnchanged, a.Kind)
	c, _ := second.Get("c")
	assert.Equal(t, EventAdd, c.Kind)

	ids := []string{}
	for _, r := range second.Rows() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
}

func TestRowEventsDelete(t *testing.T) {
	re := NewRowEvents(3)
	re.Add(NewRowEvent(EventAdd, row("a")))
	re.Add(NewRowEvent(EventAdd, row("b")))
	re.Upsert(NewRowEvent(EventUpdate, row("a")))

	require.NoError(t, re.Delete("a"))
	assert.Error(t, re.Delete("zorg"))
	i, ok := re.FindIndex("b")
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	cl := re.Clone()
	re.Clear()
	assert.True(t, re.Empty())
	assert.Equal(t, 1, cl.Len())
}

func TestHeader(t *testing.T) {
	fn := render.NewLibrary(nil).Status()
	h := Header{
		{Name: "Name", Attrs: Attrs{Synthetic: true}},
		{Name: "Status", Type: "string", Attrs: Attrs{Render: fn}},
		{Name: "Age", Attrs: Attrs{Time: true}},
	}

	i, ok := h.IndexOf("Status")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = h.IndexOf("bozo")
	assert.False(t, ok)
	assert.Equal(t, 2, h.AgeCol())
	assert.True(t, h.HasAge())
	assert.Equal(t, []string{"Name", "Status", "Age"}, h.ColumnNames())
	assert.NotNil(t, h.RenderAt(1, nil))
	assert.Nil(t, h.RenderAt(0, nil))
	assert.False(t, h.Diff(h.Clone()))
	assert.True(t, h.Diff(h[:2]))
}

func TestLess(t *testing.T) {
	ss := []string{"pod-10", "pod-2", "pod-1"}
	sort.Slice(ss, func(i, j int) bool { return Less(ss[i], ss[j], ss[i], ss[j]) })
	assert.Equal(t, []string{"pod-1", "pod-2", "pod-10"}, ss)

	assert.True(t, Less("a", "b", "same", "same"))
	assert.False(t, Less("b", "a", "same", "same"))
}

func TestMatches(t *testing.T) {
	h := Header{{Name: "Name"}, {Name: "Status", Attrs: Attrs{Render: render.NewLibrary(nil).Status()}}}
	r := row("default/nginx", "nginx-7d9", "CrashLoopBackOff")

	assert.True(t, Matches(h, r, ""))
	assert.True(t, Matches(h, r, "NGINX"))
	assert.True(t, Matches(h, r, "crash"))
	assert.False(t, Matches(h, r, "redis"))
}

func TestSortKey(t *testing.T) {
	fn := render.NewLibrary(nil).Status()

	assert.Equal(t, "002", SortKey(fn, "Running", Row{}))
	assert.Equal(t, "42", SortKey(nil, 42, Row{}))
	assert.Equal(t, "", SortKey(nil, nil, Row{}))
}

func TestTableData(t *testing.T) {
	d := NewTableData(TableSpec{Key: "/v1::pods", Namespace: "default"})
	assert.True(t, d.Empty())
	assert.Zero(t, d.RowCount())
	assert.True(t, d.Refreshed().IsZero())
	assert.False(t, d.HasError())
	assert.Empty(t, d.Error())

	h := Header{{Name: "Name"}}
	at := time.Unix(1_700_000_000, 0)
	d = NewTableData(TableSpec{
		Key:       "/v1::pods",
		Filter:    "web",
		Header:    h,
		Rows:      Reconcile(d.RowEvents(), Rows{row("u-1", "web-1")}, h),
		Refreshed: at,
	})
	assert.Equal(t, 1, d.RowCount())
	assert.Equal(t, "web", d.Filter())
	assert.Equal(t, at, d.Refreshed())

	boom := errors.New("boom")
	failed := d.WithError(boom)
	assert.ErrorIs(t, failed.Err(), boom)
	assert.Equal(t, "boom", failed.Error())
	assert.Equal(t, 1, failed.RowCount())
	assert.Equal(t, at, failed.Refreshed())
	assert.False(t, d.HasError())
}
