package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetPharmacyOrdersQueryHandler reads a pharmacy's orders with direct SQL.
//
// A requester who is neither admin nor an active member of the pharmacy gets
// an empty list rather than an error.
type GetPharmacyOrdersQueryHandler struct {
	db     *gorm.DB
	reader orderReader
}

// NewGetPharmacyOrdersQueryHandler creates the handler over a GORM connection.
func NewGetPharmacyOrdersQueryHandler(db *gorm.DB) GetPharmacyOrdersQueryHandler {
	return GetPharmacyOrdersQueryHandler{
		db:     db,
		reader: orderReader{db: db},
	}
}

// Handle returns the pharmacy's orders, newest first.
func (h GetPharmacyOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPharmacyOrdersQuery,
) ([]OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if !query.IsAdmin() {
		var isMember bool
		err := h.db.WithContext(ctx).Raw(`
			SELECT EXISTS (
				SELECT 1
				FROM pharmacy_memberships
				WHERE pharmacy_id = ? AND user_id = ? AND active
			)
		`, query.PharmacyID().Bytes(), query.RequesterID().Bytes()).Scan(&isMember).Error
		if err != nil {
			return nil, err
		}
		if !isMember {
			return make([]OrderDetails, 0), nil
		}
	}

	if status := query.Status(); status != nil {
		return h.reader.find(ctx, "pharmacy_id = ? AND status = ?", query.PharmacyID().Bytes(), int(*status))
	}
	return h.reader.find(ctx, "pharmacy_id = ?", query.PharmacyID().Bytes())
}
