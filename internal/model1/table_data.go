// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package model1

import "time"

// TableData is what one refresh of a table model published. It is never
// modified after construction, so listeners may hold on to it.
type TableData struct {
	key       string
	namespace string
	filter    string
	header    Header
	rows      *RowEvents
	refreshed time.Time
	err       error
}

// TableSpec describes the outcome of a successful refresh.
type TableSpec struct {
	Key       string
	Namespace string
	Filter    string
	Header    Header
	Rows      *RowEvents
	Refreshed time.Time
}

// NewTableData returns the data of a successful refresh.
func NewTableData(s TableSpec) *TableData {
	rows := s.Rows
	if rows == nil {
		rows = NewRowEvents(0)
	}

	return &TableData{
		key:       s.Key,
		namespace: s.Namespace,
		filter:    s.Filter,
		header:    s.Header,
		rows:      rows,
		refreshed: s.Refreshed,
	}
}

// WithError returns a copy keeping the last good rows next to the error
// of the refresh that failed after them.
func (t *TableData) WithError(err error) *TableData {
	c := *t
	c.err = err
	return &c
}

// Key returns the resource key the table was built for.
func (t *TableData) Key() string { return t.key }

// Namespace returns the namespace the rows were listed in, "" for all.
func (t *TableData) Namespace() string { return t.namespace }

// Filter returns the row filter the rows were reduced by.
func (t *TableData) Filter() string { return t.filter }

// Header returns the projected header.
func (t *TableData) Header() Header { return t.header }

// RowEvents returns the rows, flagged against the previous refresh.
func (t *TableData) RowEvents() *RowEvents { return t.rows }

// Refreshed returns when the rows were fetched, zero before the first refresh.
func (t *TableData) Refreshed() time.Time { return t.refreshed }

// Empty returns true if no rows are available.
func (t *TableData) Empty() bool { return t.rows.Empty() }

// RowCount returns the number of rows.
func (t *TableData) RowCount() int { return t.rows.Len() }

// Err returns the failure of the latest refresh, if any.
func (t *TableData) Err() error { return t.err }

// Error returns the failure message of the latest refresh, if any.
func (t *TableData) Error() string {
	if t.err == nil {
		return ""
	}
	return t.err.Error()
}

// HasError returns true when the latest refresh failed.
func (t *TableData) HasError() bool { return t.err != nil }
