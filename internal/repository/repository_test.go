package repository

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"runway-tickets/internal/model"
	"runway-tickets/internal/testutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// testDB 為 nil 時代表沒有測試資料庫，整合測試全部跳過
var testDB *pgxpool.Pool

func TestMain(m *testing.M) {
	pool, cleanup, err := testutil.SetupDatabase()
	if err != nil {
		log.Printf("repository integration tests skipped: %v", err)
		os.Exit(m.Run())
	}
	testDB = pool

	code := m.Run()
	cleanup()
	os.Exit(code)
}

func setupTest(t *testing.T) context.Context {
	t.Helper()
	if testDB == nil {
		t.Skip("test database not available")
	}
	ctx := context.Background()
	require.NoError(t, testutil.Truncate(ctx, testDB))
	return ctx
}

// withTx 在 transaction 內執行並 commit
func withTx(t *testing.T, ctx context.Context, fn func(tx pgx.Tx)) {
	t.Helper()
	tx, err := testDB.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)
	fn(tx)
	require.NoError(t, tx.Commit(ctx))
}

func newTestShow(slug string, status model.ShowStatus) *model.Show {
	return &model.Show{
		Title:     "Show " + slug,
		Slug:      slug,
		ShowType:  model.ShowTypeSwimwear,
		VenueName: "Faena Forum",
		City:      "Miami Beach",
		Country:   "USA",
		EventDate: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		Timezone:  model.DefaultTimezone,
		Status:    status,
	}
}

func createTestShow(t *testing.T, ctx context.Context, slug string, status model.ShowStatus) *model.Show {
	t.Helper()
	var show *model.Show
	withTx(t, ctx, func(tx pgx.Tx) {
		var err error
		show, err = NewShowRepository(testDB).Upsert(ctx, tx, newTestShow(slug, status))
		require.NoError(t, err)
	})
	return show
}

func createTestTicketType(t *testing.T, ctx context.Context, showID uuid.UUID, name string, price int64, quantity *int) *model.TicketType {
	t.Helper()
	tt, err := NewTicketTypeRepository(testDB).Create(ctx, &model.TicketType{
		ShowID:        showID,
		Name:          name,
		PriceUsd:      price,
		TotalQuantity: quantity,
		IsActive:      true,
	})
	require.NoError(t, err)
	return tt
}

func newTestTicket(show *model.Show, tt *model.TicketType, sessionID, email string) *model.Ticket {
	return &model.Ticket{
		TicketTypeID:    tt.ID,
		ShowID:          show.ID,
		PricePaid:       tt.PriceUsd,
		Quantity:        1,
		CustomerEmail:   &email,
		StripeSessionID: sessionID,
		PaymentStatus:   model.PaymentStatusPending,
		QRCode:          uuid.NewString(),
	}
}

func intPtr(v int) *int { return &v }
