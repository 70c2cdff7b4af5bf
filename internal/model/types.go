// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package model

import (
	"context"

	"github.com/spyglass/spyglass/internal/model1"
	"github.com/spyglass/spyglass/internal/refresh"
	"github.com/spyglass/spyglass/internal/resource"
	"github.com/spyglass/spyglass/internal/table"
)

// Source lists a resource type as a server side table.
type Source interface {
	ListTabular(ctx context.Context, key resource.Key, namespace string) (*model1.Table, error)
}

// Resolver resolves display rules for a resource type.
type Resolver interface {
	Resolve(key resource.Key) table.Config
}

// Metrics records refresh cycles and table sizes.
type Metrics interface {
	refresh.Recorder
	SetTableRows(key string, n int)
}

// TableListener represents a table model listener.
type TableListener interface {
	// TableNoData notifies listener no data was found.
	TableNoData(*model1.TableData)

	// TableDataChanged notifies the model data changed.
	TableDataChanged(*model1.TableData)

	// TableLoadFailed notifies the load failed.
	TableLoadFailed(error)
}
