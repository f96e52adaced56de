package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// --- Record Methods ---

// ListRecords reads the whole collection in server order.
func (c *Client) ListRecords(ctx context.Context) ([]Record, error) {
	data, err := c.get(ctx, "")
	if err != nil {
		return nil, err
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (c *Client) CreateRecord(ctx context.Context, input RecordInput) error {
	_, err := c.post(ctx, "", input)
	return err
}

func (c *Client) UpdateRecord(ctx context.Context, id RecordID, input RecordInput) error {
	_, err := c.put(ctx, itemPath(id), input)
	return err
}

func (c *Client) DeleteRecord(ctx context.Context, id RecordID) error {
	_, err := c.del(ctx, itemPath(id))
	return err
}
