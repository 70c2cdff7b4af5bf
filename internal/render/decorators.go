// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Translation key prefix for table cells.
const CellPrefix = "tableCell::"

// Node classes shared with rendering surfaces.
const (
	ClassTruncate   = "text-truncate"
	ClassInline     = "d-inline-block"
	ClassBadge      = "badge"
	ClassPill       = "rounded-pill"
	ClassBackground = "bg-"

	// AgeTimestampKey holds the raw timestamp of a relative time node.
	AgeTimestampKey = "age-timestamp"
)

// LookupFunc translates a key, returning fallback when no mapping exists.
type LookupFunc func(key, fallback string) string

// Ellipsis wraps the previous value in a truncating container whose title is
// the plain text content.
func Ellipsis(prev Value, _ any, _ any) Value {
	span := NewNode("span", ClassTruncate, ClassInline)
	switch prev.Kind() {
	case KindStructured:
		n := prev.Node()
		span.Append(n)
		span.Title = n.Title
		if span.Title == "" {
			span.Title = n.TextContent()
		}
	default:
		span.Text = prev.String()
		span.Title = prev.String()
	}

	return Structured(span)
}

// Translate replaces plain text with its translation.
func Translate(lookup LookupFunc) Decorator {
	return func(prev Value, _ any, _ any) Value {
		switch prev.Kind() {
		case KindStructured:
			return prev
		default:
			if lookup == nil {
				return prev
			}
			s := prev.String()
			return Text(lookup(CellPrefix+s, s))
		}
	}
}

// RelativeTime renders a Unix timestamp in seconds as "5m ago" or "in 2h".
func RelativeTime(now func() time.Time) Decorator {
	if now == nil {
		now = time.Now
	}

	return func(prev Value, raw any, _ any) Value {
		ts, ok := toUnix(raw)
		if !ok {
			return prev
		}

		delta := now().Unix() - ts
		future := delta < 0
		if future {
			delta = -delta
		}

		rel := humanizeSeconds(delta) + " ago"
		if future {
			rel = "in " + humanizeSeconds(delta)
		}

		n := NewNode("span")
		n.Text = rel
		n.Title = time.Unix(ts, 0).Format(time.RFC3339)
		n.Data = map[string]string{AgeTimestampKey: strconv.FormatInt(ts, 10)}

		return Structured(n)
	}
}

// humanizeSeconds picks the largest whole unit among y, d, h, m else s.
func humanizeSeconds(s int64) string {
	minutes := s / 60
	hours := minutes / 60
	days := hours / 24
	years := days / 365

	switch {
	case years > 0:
		return fmt.Sprintf("%dy", years)
	case days > 0:
		return fmt.Sprintf("%dd", days)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

func toUnix(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint32:
		return int64(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int64(v), true
	case time.Time:
		if v.IsZero() {
			return 0, false
		}
		return v.Unix(), true
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return int64(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// LabelSet turns "k=v,k2=v2" into one pill badge per pair.
func LabelSet(prev Value, _ any, _ any) Value {
	if prev.IsStructured() {
		return prev
	}

	s := prev.String()
	c := NewNode("span")
	c.Title = s
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		k, v, ok := strings.Cut(item, "=")
		text := k
		if ok {
			text = k + "=" + v
		}
		pill := NewNode("span", ClassBadge, ClassPill, ClassBackground+"primary")
		pill.Text = text
		c.Append(pill)
	}

	return Structured(c)
}
