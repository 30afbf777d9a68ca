package datamodel

import "github.com/shopspring/decimal"

func init() {
	// money columns are sent as JSON numbers, e.g. 1500.5 rather than "1500.5"
	decimal.MarshalJSONWithoutQuotes = true
}
