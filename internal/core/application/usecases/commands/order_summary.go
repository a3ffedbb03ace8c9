package commands

import (
	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/order"
)

// OrderSummary is returned by a successful order placement.
type OrderSummary struct {
	ID            kernel.UUID
	OrderNumber   kernel.UUID
	Total         kernel.Money
	PaymentMethod order.PaymentMethod
	PaymentStatus order.PaymentStatus
	Status        order.Status
}

func newOrderSummary(o *order.Order) OrderSummary {
	return OrderSummary{
		ID:            o.ID(),
		OrderNumber:   o.OrderNumber(),
		Total:         o.Total(),
		PaymentMethod: o.PaymentMethod(),
		PaymentStatus: o.PaymentStatus(),
		Status:        o.Status(),
	}
}
