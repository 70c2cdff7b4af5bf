// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package render

import "fmt"

// Severity is a status badge class.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"

	// SeverityUnknown is used for statuses missing from the table.
	SeverityUnknown Severity = "unknown"
)

// unrankedPrefix sorts unmapped statuses after all known ones.
const unrankedPrefix = "999"

// StatusEntry maps one status to its severity.
type StatusEntry struct {
	Status   string   `yaml:"status"`
	Severity Severity `yaml:"severity"`
}

// StatusTable is ordered by severity rank; position drives sorting.
type StatusTable []StatusEntry

// DefaultStatusTable covers common pod phases and reasons.
var DefaultStatusTable = StatusTable{
	{Status: "Completed", Severity: SeverityInfo},
	{Status: "Succeeded", Severity: SeverityInfo},
	{Status: "Running", Severity: SeveritySuccess},
	{Status: "Pending", Severity: SeverityWarning},
	{Status: "OOMKilled", Severity: SeverityDanger},
	{Status: "Failed", Severity: SeverityDanger},
	{Status: "CrashLoopBackOff", Severity: SeverityDanger},
}

// SeverityOf returns the severity of a status or SeverityUnknown.
func (t StatusTable) SeverityOf(status string) Severity {
	if i := t.IndexOf(status); i >= 0 {
		return t[i].Severity
	}
	return SeverityUnknown
}

// IndexOf returns the rank of a status or -1.
func (t StatusTable) IndexOf(status string) int {
	for i, e := range t {
		if e.Status == status {
			return i
		}
	}
	return -1
}

// StatusBadge wraps plain text in a badge colored by the raw status.
func StatusBadge(t StatusTable) Decorator {
	return func(prev Value, raw any, _ any) Value {
		if prev.IsStructured() {
			return prev
		}

		status := fmt.Sprint(raw)
		n := NewNode("span", ClassBadge, ClassBackground+string(t.SeverityOf(status)))
		n.Text = prev.String()
		n.Title = status

		return Structured(n)
	}
}

// StatusSortKey ranks statuses by their position in the table.
func StatusSortKey(t StatusTable) Transform {
	return func(raw any, _ any) any {
		status := fmt.Sprint(raw)
		i := t.IndexOf(status)
		if i == -1 {
			return unrankedPrefix + status
		}
		return fmt.Sprintf("%03d", i)
	}
}
