package models

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
)

// Product is a catalogue entry.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	CategoryID  int64   `json:"category_id,omitempty"`
}

// Category groups products.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductSort is the ordering accepted by GET /products.
type ProductSort string

const (
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
)

// ProductQuery holds the optional filters of GET /products. Zero values are
// not sent.
type ProductQuery struct {
	Search     string
	CategoryID int64
	Sort       ProductSort
	Page       int
	PageSize   int
}

// Values encodes the query as URL parameters.
func (q ProductQuery) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.CategoryID != 0 {
		v.Set("category_id", strconv.FormatInt(q.CategoryID, 10))
	}
	if q.Sort != "" {
		v.Set("sort", string(q.Sort))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return v
}

// ProductPage is a normalized product listing. For a bare-array response Page
// and PageSize stay zero and Total is the number of items received.
type ProductPage struct {
	Items    []Product `json:"items"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Total    int       `json:"total"`
}

// DecodeProductPage accepts either a bare array of products or a paginated
// envelope. Any other shape yields an empty page.
func DecodeProductPage(data []byte) ProductPage {
	data = bytes.TrimSpace(data)
	empty := ProductPage{Items: []Product{}}
	if len(data) == 0 {
		return empty
	}

	switch data[0] {
	case '[':
		var items []Product
		if err := json.Unmarshal(data, &items); err != nil || items == nil {
			return empty
		}
		return ProductPage{Items: items, Total: len(items)}
	case '{':
		var page ProductPage
		if err := json.Unmarshal(data, &page); err != nil || page.Items == nil {
			return empty
		}
		return page
	default:
		return empty
	}
}
