package store

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zoo_management/pkg/apperror"
	"zoo_management/pkg/models"
	"zoo_management/pkg/resources"
)

func saleRow(t *testing.T, p *resources.TicketSalePayload) map[string]any {
	t.Helper()
	return mustLookup(t, "ticket-sales").InsertRow(p, fixedNow)
}

func TestRecordSaleUpsertsVisitor(t *testing.T) {
	s, db := setupTestStore(t)
	ctx := context.Background()

	first := &resources.TicketSalePayload{
		ID: strPtr2("S1"), TicketID: strPtr2("T1"), Quantity: 2, TotalAmount: f64(50),
		VisitorName: strPtr2("Ann"), VisitorEmail: strPtr2("ann@zoo.example"), VisitorPhone: strPtr2("111"),
	}
	require.NoError(t, s.RecordSale(ctx, Sale{Row: saleRow(t, first), Quantity: 2}))

	second := &resources.TicketSalePayload{
		ID: strPtr2("S2"), TicketID: strPtr2("T1"), Quantity: 1, TotalAmount: f64(25),
		VisitorName: strPtr2("Ann B"), VisitorEmail: strPtr2("ann@zoo.example"),
	}
	require.NoError(t, s.RecordSale(ctx, Sale{Row: saleRow(t, second), Quantity: 1}))

	var visitors []models.Visitor
	require.NoError(t, db.Find(&visitors).Error)
	require.Len(t, visitors, 1)
	assert.Equal(t, "Ann B", visitors[0].Name)
	assert.Nil(t, visitors[0].Phone)
	assert.Equal(t, "2024-06-01", *visitors[0].RegistrationDate)

	var sales []models.TicketSale
	require.NoError(t, db.Order("id").Find(&sales).Error)
	require.Len(t, sales, 2)
	assert.Equal(t, "2024-06-01", *sales[0].Date)
}

func TestRecordSaleNewVisitorsInSameMillisecond(t *testing.T) {
	s, db := setupTestStore(t)
	ctx := context.Background()

	for i, email := range []string{"ann@zoo.example", "bob@zoo.example"} {
		row := saleRow(t, &resources.TicketSalePayload{
			ID: strPtr2(fmt.Sprintf("S%d", i+1)), TicketID: strPtr2("T1"), Quantity: 1, TotalAmount: f64(25),
			VisitorEmail: strPtr2(email),
		})
		require.NoError(t, s.RecordSale(ctx, Sale{Row: row, Quantity: 1}), email)
	}

	var visitors []models.Visitor
	require.NoError(t, db.Order("email").Find(&visitors).Error)
	require.Len(t, visitors, 2)
	assert.NotEqual(t, visitors[0].ID, visitors[1].ID)
	assert.True(t, strings.HasPrefix(visitors[0].ID, "visitor-1717237800000-"))
	assert.Equal(t, "bob@zoo.example", visitors[1].Name)

	var sales int64
	db.Model(&models.TicketSale{}).Count(&sales)
	assert.Equal(t, int64(2), sales)
}

func TestRecordSaleWithoutEmailSkipsVisitor(t *testing.T) {
	s, db := setupTestStore(t)
	row := saleRow(t, &resources.TicketSalePayload{Quantity: 1, TotalAmount: f64(10)})
	require.NoError(t, s.RecordSale(context.Background(), Sale{Row: row, Quantity: 1}))

	var count int64
	db.Model(&models.Visitor{}).Count(&count)
	assert.Equal(t, int64(0), count)

	var sale models.TicketSale
	require.NoError(t, db.Take(&sale).Error)
	assert.Equal(t, "sale-1717237800000", sale.ID)
}

func TestRecordSaleComputesTotal(t *testing.T) {
	s, db := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&models.Ticket{ID: "T1", Type: "Adult", Price: 25, DiscountPercentage: f64(10)}).Error)

	row := saleRow(t, &resources.TicketSalePayload{ID: strPtr2("S1"), TicketID: strPtr2("T1"), Quantity: 3})
	require.NoError(t, s.RecordSale(ctx, Sale{Row: row, Quantity: 3}))

	var sale models.TicketSale
	require.NoError(t, db.First(&sale, "id = ?", "S1").Error)
	assert.Equal(t, 67.5, *sale.TotalAmount)

	row = saleRow(t, &resources.TicketSalePayload{ID: strPtr2("S2"), TicketID: strPtr2("EVENT"), Quantity: 1})
	err := s.RecordSale(ctx, Sale{Row: row, Quantity: 1})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestRecordSaleBooksEventAtomically(t *testing.T) {
	s, db := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&models.Event{ID: "EV1", Title: "Feeding", Capacity: i64(3), RegisteredCount: i64(2)}).Error)

	row := saleRow(t, &resources.TicketSalePayload{ID: strPtr2("S1"), TicketID: strPtr2("EVENT"), Quantity: 1, TotalAmount: f64(5)})
	require.NoError(t, s.RecordSale(ctx, Sale{Row: row, EventID: "EV1", Quantity: 1}))

	row = saleRow(t, &resources.TicketSalePayload{
		ID: strPtr2("S2"), TicketID: strPtr2("EVENT"), Quantity: 1, TotalAmount: f64(5),
		VisitorEmail: strPtr2("late@zoo.example"),
	})
	err := s.RecordSale(ctx, Sale{Row: row, EventID: "EV1", Quantity: 1})
	assert.ErrorIs(t, err, ErrSoldOut)

	// rolled back: no second sale, no visitor
	var sales, visitors int64
	db.Model(&models.TicketSale{}).Count(&sales)
	db.Model(&models.Visitor{}).Count(&visitors)
	assert.Equal(t, int64(1), sales)
	assert.Equal(t, int64(0), visitors)

	var event models.Event
	require.NoError(t, db.First(&event, "id = ?", "EV1").Error)
	assert.Equal(t, int64(3), *event.RegisteredCount)
}

func TestRegisterForEvent(t *testing.T) {
	s, db := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&models.Event{ID: "EV1", Title: "Talk", Capacity: i64(10)}).Error)
	require.NoError(t, db.Create(&models.Event{ID: "EV2", Title: "Open day"}).Error)

	event, err := s.RegisterForEvent(ctx, "EV1", 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), event["registered_count"])

	_, err = s.RegisterForEvent(ctx, "EV1", 7)
	assert.ErrorIs(t, err, ErrSoldOut)

	event, err = s.RegisterForEvent(ctx, "EV2", 500)
	require.NoError(t, err)
	assert.Equal(t, int64(500), event["registered_count"])

	_, err = s.RegisterForEvent(ctx, "missing", 1)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestTicketTotal(t *testing.T) {
	assert.Equal(t, "45", TicketTotal(15, nil, 3).String())
	assert.Equal(t, "36", TicketTotal(20, f64(10), 2).String())
	assert.Equal(t, "0.67", TicketTotal(1, f64(33.333), 1).String())
}
