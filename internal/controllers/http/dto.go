package http

import (
	"encoding/json"
	"strconv"
)

// StringOrNumber accepts a JSON string or bare number. The order and product
// forms post price/quantity as strings, while API callers tend to send
// numbers; both decode to the raw text the services validate.
type StringOrNumber string

func (s *StringOrNumber) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = StringOrNumber(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	// Trim the trailing ".0" a float-encoded integer picks up.
	if f, err := n.Float64(); err == nil && f == float64(int64(f)) {
		*s = StringOrNumber(strconv.FormatInt(int64(f), 10))
		return nil
	}
	*s = StringOrNumber(n.String())
	return nil
}

type ProductRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       StringOrNumber `json:"price"`
	ImageURL    string         `json:"imageUrl"`
	Category    string         `json:"category"`
}

type CreateOrderRequest struct {
	ProductID    string         `json:"productId"`
	BuyerName    string         `json:"buyerName"`
	BuyerEmail   string         `json:"buyerEmail"`
	BuyerAddress string         `json:"buyerAddress"`
	BuyerCell    string         `json:"buyerCell"`
	Quantity     StringOrNumber `json:"quantity"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
