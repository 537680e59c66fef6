package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"zoo_management/pkg/apperror"
	"zoo_management/pkg/models"
	"zoo_management/pkg/resources"
)

var hundred = decimal.NewFromInt(100)

// RecordSale inserts the sale, upserts the buyer into visitors by email
// and, for event sales, books the places. All of it commits or none of it.
func (s *GormStore) RecordSale(ctx context.Context, sale Sale) error {
	now := s.now()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if sale.Row["total_amount"] == nil {
			total, err := saleTotal(tx, sale.Row["ticket_id"], sale.Quantity)
			if err != nil {
				return err
			}
			sale.Row["total_amount"] = total.InexactFloat64()
		}

		if err := tx.Model(&models.TicketSale{}).Create(sale.Row).Error; err != nil {
			return fmt.Errorf("insert ticket sale: %w", err)
		}

		if email, _ := sale.Row["visitor_email"].(string); email != "" {
			if err := upsertVisitor(tx, email, sale.Row, now); err != nil {
				return err
			}
		}

		if sale.EventID != "" {
			if err := bookEvent(tx, sale.EventID, sale.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

// upsertVisitor refreshes name and phone of the visitor with this email, or
// registers a new visitor when there is none. A missing name falls back to
// the email since the column is required.
func upsertVisitor(tx *gorm.DB, email string, row map[string]any, now time.Time) error {
	name := email
	if n := stringValue(row["visitor_name"]); n != nil && *n != "" {
		name = *n
	}
	phone := stringValue(row["visitor_phone"])

	res := tx.Model(&models.Visitor{}).Where("email = ?", email).
		Updates(map[string]any{"name": name, "phone": phone})
	if res.Error != nil {
		return fmt.Errorf("update visitor %s: %w", email, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	visitor := models.Visitor{
		ID:               resources.GenerateUniqueID("visitor", now),
		Name:             name,
		Email:            &email,
		Phone:            phone,
		RegistrationDate: strPtr(now.Format(resources.DateLayout)),
	}
	if err := tx.Create(&visitor).Error; err != nil {
		return fmt.Errorf("insert visitor %s: %w", email, err)
	}
	return nil
}

// RegisterForEvent books quantity places on the event and returns the
// updated row. It fails with ErrSoldOut when capacity would be exceeded.
func (s *GormStore) RegisterForEvent(ctx context.Context, eventID string, quantity int64) (map[string]any, error) {
	var event map[string]any
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bookEvent(tx, eventID, quantity); err != nil {
			return err
		}
		var rows []map[string]any
		if err := tx.Model(&models.Event{}).Where("id = ?", eventID).Limit(1).Find(&rows).Error; err != nil {
			return fmt.Errorf("reload event %s: %w", eventID, err)
		}
		if len(rows) == 0 {
			return apperror.NotFound("Event not found")
		}
		event = rows[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// bookEvent raises registered_count in a single conditional statement so
// concurrent bookings cannot overshoot capacity.
func bookEvent(tx *gorm.DB, eventID string, quantity int64) error {
	res := tx.Model(&models.Event{}).
		Where("id = ? AND (capacity IS NULL OR COALESCE(registered_count, 0) + ? <= capacity)", eventID, quantity).
		Update("registered_count", gorm.Expr("COALESCE(registered_count, 0) + ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("book event %s: %w", eventID, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := tx.Model(&models.Event{}).Where("id = ?", eventID).Count(&count).Error; err != nil {
		return fmt.Errorf("find event %s: %w", eventID, err)
	}
	if count == 0 {
		return apperror.NotFound("Event not found")
	}
	return ErrSoldOut
}

// saleTotal prices quantity tickets at the ticket's discounted price.
func saleTotal(tx *gorm.DB, ticketID any, quantity int64) (decimal.Decimal, error) {
	missing := apperror.Validation("totalAmount is required when ticketId does not name a ticket",
		apperror.FieldError{Field: "totalAmount", Message: "totalAmount is required"})

	id, _ := ticketID.(string)
	if id == "" {
		return decimal.Zero, missing
	}

	var ticket models.Ticket
	err := tx.Where("id = ?", id).Take(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, missing
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("find ticket %s: %w", id, err)
	}

	return TicketTotal(ticket.Price, ticket.DiscountPercentage, quantity), nil
}

// TicketTotal is price * quantity less the discount percentage, in cents.
func TicketTotal(price float64, discountPercentage *float64, quantity int64) decimal.Decimal {
	total := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(quantity))
	if discountPercentage != nil && *discountPercentage > 0 {
		factor := hundred.Sub(decimal.NewFromFloat(*discountPercentage)).Div(hundred)
		total = total.Mul(factor)
	}
	return total.Round(2)
}

func stringValue(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func strPtr(s string) *string { return &s }
