package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/tableside/api/internal/database"
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Pool is a connection pool that can run queries directly or open a
// transaction. Satisfied by *pgxpool.Pool.
type Pool interface {
	database.DBTX
	TxBeginner
}

// LocationStore reads location configuration.
type LocationStore interface {
	GetLocation(ctx context.Context, id uuid.UUID) (database.Location, error)
	ListServicePeriodsByLocation(ctx context.Context, locationID uuid.UUID) ([]database.ServicePeriod, error)
	GetTable(ctx context.Context, id uuid.UUID) (database.Table, error)
	GetTableByNumber(ctx context.Context, arg database.GetTableByNumberParams) (database.Table, error)
}

// SessionStore manages table sessions and their seats.
type SessionStore interface {
	CreateTableSession(ctx context.Context, arg database.CreateTableSessionParams) (database.TableSession, error)
	GetOpenSessionForTable(ctx context.Context, arg database.GetOpenSessionForTableParams) (database.TableSession, error)
	GetTableSession(ctx context.Context, id uuid.UUID) (database.TableSession, error)
	GetTableSessionForUpdate(ctx context.Context, id uuid.UUID) (database.TableSession, error)
	UpdateSessionGuestCount(ctx context.Context, arg database.UpdateSessionGuestCountParams) (database.TableSession, error)
	UpdateSessionTotals(ctx context.Context, arg database.UpdateSessionTotalsParams) error
	CloseTableSession(ctx context.Context, id uuid.UUID) (database.TableSession, error)

	CreateSeat(ctx context.Context, arg database.CreateSeatParams) (database.Seat, error)
	ListSeatsBySession(ctx context.Context, sessionID uuid.UUID) ([]database.Seat, error)
	ListSeatsByIDs(ctx context.Context, ids []uuid.UUID) ([]database.Seat, error)
	UpdateSeatStatus(ctx context.Context, arg database.UpdateSeatStatusParams) error
}

// OrderStore manages wave orders and their items.
type OrderStore interface {
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	GetOrderBySessionAndWave(ctx context.Context, arg database.GetOrderBySessionAndWaveParams) (database.Order, error)
	GetMaxWaveForSession(ctx context.Context, sessionID pgtype.UUID) (int32, error)
	ListOrdersBySession(ctx context.Context, sessionID pgtype.UUID) ([]database.Order, error)
	GetActiveLegacyOrderForTable(ctx context.Context, arg database.GetActiveLegacyOrderForTableParams) (database.Order, error)
	UpdateOrderTotals(ctx context.Context, arg database.UpdateOrderTotalsParams) error
	FireOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	CompleteOrder(ctx context.Context, id uuid.UUID) error
	CompleteSessionOrders(ctx context.Context, sessionID pgtype.UUID) error

	CreateOrderItems(ctx context.Context, arg database.CreateOrderItemsParams) ([]database.OrderItem, error)
	DeleteOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) error
	GetOrderItem(ctx context.Context, id uuid.UUID) (database.OrderItem, error)
	ListOrderItemsByOrders(ctx context.Context, orderIds []uuid.UUID) ([]database.OrderItem, error)
	ListActiveOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error)
	ListUnsentOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error)
	MarkOrderItemSent(ctx context.Context, id uuid.UUID) (int64, error)
	UpdateOrderItemStatus(ctx context.Context, arg database.UpdateOrderItemStatusParams) (database.OrderItem, error)
	ListUnfinishedItemsBySession(ctx context.Context, sessionID pgtype.UUID) ([]database.OrderItem, error)
	VoidUnfinishedItemsBySession(ctx context.Context, sessionID pgtype.UUID) (int64, error)
	SumSessionLineTotals(ctx context.Context, sessionID pgtype.UUID) (pgtype.Numeric, error)
}

// PaymentStore records settlement against a session.
type PaymentStore interface {
	CreatePayment(ctx context.Context, arg database.CreatePaymentParams) (database.Payment, error)
	SumPaymentsBySession(ctx context.Context, sessionID uuid.UUID) (database.SumPaymentsBySessionRow, error)
}

// FloorStore is every query the floor service runs.
// Satisfied by *database.Queries (and its WithTx variant).
type FloorStore interface {
	LocationStore
	SessionStore
	OrderStore
	PaymentStore
}

// NewFloorStore creates a FloorStore from a DBTX (pool or tx).
type NewFloorStore func(db database.DBTX) FloorStore

// DefaultStore wraps database.New for use as a NewFloorStore.
func DefaultStore(db database.DBTX) FloorStore {
	return database.New(db)
}

// TableCache remembers table number → table id lookups. Optional.
type TableCache interface {
	GetTableID(ctx context.Context, locationID uuid.UUID, tableNumber string) (uuid.UUID, bool, error)
	SetTableID(ctx context.Context, locationID uuid.UUID, tableNumber string, tableID uuid.UUID) error
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
