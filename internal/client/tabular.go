// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spyglass/spyglass/internal/model1"
	"github.com/spyglass/spyglass/internal/resource"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var lenient = protojson.UnmarshalOptions{DiscardUnknown: true}

// Session binds a client to one kube context.
type Session struct {
	client      *Client
	kubeContext string
}

// Session returns a view of the client scoped to kubeContext. An empty
// context lets the backend pick its default.
func (c *Client) Session(kubeContext string) *Session {
	return &Session{client: c, kubeContext: kubeContext}
}

// KubeContext returns the bound context.
func (s *Session) KubeContext() string {
	return s.kubeContext
}

// ListTabular fetches the server side table of a resource type. An empty
// namespace lists all namespaces.
func (s *Session) ListTabular(ctx context.Context, key resource.Key, namespace string) (*model1.Table, error) {
	return s.client.ListTabular(ctx, s.kubeContext, key, namespace)
}

// ListTabular fetches the server side table of a resource type.
func (c *Client) ListTabular(ctx context.Context, kubeContext string, key resource.Key, namespace string) (*model1.Table, error) {
	req := listRequest{
		Context: kubeContext,
		Gvr:     gvr{Group: key.Group, Version: key.Version, Resource: key.Resource},
	}
	if namespace != "" {
		req.Namespace = &namespace
	}

	var out tabularReply
	if err := c.call(ctx, "ListResourceTabular", req, &out); err != nil {
		return nil, err
	}

	return toTable(out)
}

func toTable(r tabularReply) (*model1.Table, error) {
	t := model1.Table{
		Columns: make([]model1.Column, 0, len(r.Columns)),
		Rows:    make(model1.Rows, 0, len(r.Rows)),
	}
	for _, c := range r.Columns {
		t.Columns = append(t.Columns, model1.Column{Name: c.Name, Type: c.Type})
	}
	for i, wr := range r.Rows {
		row, err := toRow(wr)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		t.Rows = append(t.Rows, row)
	}

	return &t, nil
}

func toRow(wr tabularRow) (model1.Row, error) {
	row := model1.Row{Cells: make([]any, 0, len(wr.Cells))}
	for _, c := range wr.Cells {
		row.Cells = append(row.Cells, c)
	}
	if wr.Resource == nil {
		return row, nil
	}

	res := wr.Resource
	row.Meta = model1.Meta{
		Name:      res.Name,
		Namespace: res.Namespace,
		Kind:      res.Gvk.Kind,
	}
	created, err := decodeTimestamp(res.Created)
	if err != nil {
		return row, err
	}
	row.Meta.Created = created
	if err := decodeMetadata(res.Raw, &row.Meta); err != nil {
		return row, err
	}
	row.ID = row.Meta.UID
	if row.ID == "" {
		row.ID = row.Meta.FQN()
	}

	return row, nil
}

func decodeTimestamp(raw []byte) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, nil
	}
	var ts timestamppb.Timestamp
	if err := lenient.Unmarshal(raw, &ts); err != nil {
		return time.Time{}, fmt.Errorf("decode created: %w", err)
	}

	return ts.AsTime(), nil
}

func decodeMetadata(raw []byte, m *model1.Meta) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var st structpb.Struct
	if err := lenient.Unmarshal(raw, &st); err != nil {
		return fmt.Errorf("decode raw object: %w", err)
	}
	md := st.GetFields()["metadata"].GetStructValue()
	if md == nil {
		return nil
	}
	m.UID = md.GetFields()["uid"].GetStringValue()
	if ll := md.GetFields()["labels"].GetStructValue(); ll != nil {
		m.Labels = make(map[string]string, len(ll.GetFields()))
		for k, v := range ll.GetFields() {
			m.Labels[k] = v.GetStringValue()
		}
	}

	return nil
}
