package service

import (
	"strconv"
	"strings"

	"github.com/jafarshop/orderflow/internal/domain"
)

// ExtractFields flattens one Shopify order into the normalized view shared
// by every integration. It never fails: missing nesting at any level
// degrades to empty strings, an unparsable total degrades to zero.
func ExtractFields(order domain.Order) domain.NormalizedFields {
	fields := domain.NormalizedFields{
		OrderValue:     parsePrice(order.CurrentTotalPrice),
		OrderNumber:    orderNumber(order),
		OrderStatusURL: order.OrderStatusURL,
		Currency:       order.Currency,
		ProcessedAt:    order.ProcessedAt,
	}

	if customer := order.Customer; customer != nil {
		fields.CustomerFirstName = customer.FirstName
		fields.CustomerLastName = customer.LastName
		fields.CustomerEmail = customer.Email
		// The phone is only trusted from the customer's default address.
		if customer.DefaultAddress != nil {
			fields.CustomerPhone = customer.DefaultAddress.Phone
		}
	}

	if shipping := order.ShippingAddress; shipping != nil {
		fields.CustomerZipcode = shipping.Zip
		fields.CustomerCountry = shipping.Country
		fields.CustomerStreet = shipping.Address1
		fields.CustomerCity = shipping.City
		fields.CustomerProvince = shipping.Province
	}

	return fields
}

func parsePrice(price domain.Price) float64 {
	raw := strings.TrimSpace(string(price))
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}

// orderNumber prefers the human-readable order number and falls back to the
// raw Shopify order ID.
func orderNumber(order domain.Order) string {
	if order.OrderNumber != 0 {
		return strconv.FormatInt(order.OrderNumber, 10)
	}
	if order.ID != 0 {
		return strconv.FormatInt(order.ID, 10)
	}
	return ""
}
