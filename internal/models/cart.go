package models

import (
	"bytes"
	"encoding/json"
)

// LineItem is one product/quantity pairing in a cart.
//
// ItemID is the server-assigned identity and is zero for guest items, which
// are keyed by ProductID alone. Product is attached only when the server
// embeds a snapshot in its response.
type LineItem struct {
	ItemID    int64    `json:"id,omitempty"`
	ProductID int64    `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

// AddItemRequest is the body of POST /cart/items.
type AddItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// UpdateItemRequest is the body of PATCH /cart/items/{itemId}.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartEnvelope is the wrapped form of a cart response.
type CartEnvelope struct {
	Items []LineItem `json:"items"`
	Total *float64   `json:"total,omitempty"`
}

// DecodeCartResponse normalizes a cart response body. The server may answer
// with a bare array of line items or with an object carrying them under
// "items"; both yield the same slice. Anything else, including malformed
// JSON, yields an empty (non-nil) slice.
func DecodeCartResponse(data []byte) []LineItem {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []LineItem{}
	}

	switch data[0] {
	case '[':
		var items []LineItem
		if err := json.Unmarshal(data, &items); err != nil {
			return []LineItem{}
		}
		return nonNil(items)
	case '{':
		var envelope struct {
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return []LineItem{}
		}
		raw := bytes.TrimSpace(envelope.Items)
		if len(raw) == 0 || raw[0] != '[' {
			return []LineItem{}
		}
		var items []LineItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return []LineItem{}
		}
		return nonNil(items)
	default:
		return []LineItem{}
	}
}

// ItemCount is the sum of all quantities.
func ItemCount(items []LineItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// TotalPrice sums quantity × price over items that carry a product snapshot.
// Items without a snapshot count towards ItemCount but add nothing here.
func TotalPrice(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		if it.Product == nil {
			continue
		}
		sum += it.Product.Price * float64(it.Quantity)
	}
	return sum
}

// CloneItems returns a copy of items that shares no backing array with it.
// Product snapshots are copied as well.
func CloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, it := range items {
		if it.Product != nil {
			p := *it.Product
			it.Product = &p
		}
		out[i] = it
	}
	return out
}

func nonNil(items []LineItem) []LineItem {
	if items == nil {
		return []LineItem{}
	}
	return items
}
