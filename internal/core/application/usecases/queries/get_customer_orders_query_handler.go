package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetCustomerOrdersQueryHandler reads a customer's orders with direct SQL.
type GetCustomerOrdersQueryHandler struct {
	reader orderReader
}

// NewGetCustomerOrdersQueryHandler creates the handler over a GORM connection.
func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{reader: orderReader{db: db}}
}

// Handle returns the customer's orders, newest first. An unknown customer gets
// an empty slice.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.reader.find(ctx, "customer_id = ?", query.CustomerID().Bytes())
}
