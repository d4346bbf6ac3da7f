package queries

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/pos"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpenSessionQueryHandler loads the open session for a terminal with
// aggregated transaction figures.
type GetOpenSessionQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenSessionQueryHandler creates a handler for open session queries.
func NewGetOpenSessionQueryHandler(db *gorm.DB) GetOpenSessionQueryHandler {
	return GetOpenSessionQueryHandler{db: db}
}

// Handle executes the query. Returns an object-not-found error when the
// terminal has no open session.
func (h GetOpenSessionQueryHandler) Handle(
	ctx context.Context,
	query GetOpenSessionQuery,
) (OpenSessionResponse, error) {
	if err := query.Validate(); err != nil {
		return OpenSessionResponse{}, err
	}

	var row struct {
		ID                uuid.UUID
		TerminalID        string
		OperatorID        string
		OpenedAt          time.Time
		OpeningFloat      int64
		CapturedTotal     int64
		CapturedCashTotal int64
		TransactionCount  int
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.terminal_id,
			s.operator_id,
			s.opened_at,
			s.opening_float,
			COALESCE(SUM(t.amount_tendered) FILTER (WHERE t.status = @captured), 0) AS captured_total,
			COALESCE(SUM(t.amount_tendered) FILTER (WHERE t.status = @captured AND t.method = @cash), 0) AS captured_cash_total,
			COUNT(t.id) AS transaction_count
		FROM pos_sessions s
		LEFT JOIN pos_transactions t ON t.session_id = s.id
		WHERE s.terminal_id = @terminal AND s.status = @open
		GROUP BY s.id, s.terminal_id, s.operator_id, s.opened_at, s.opening_float
	`,
		map[string]any{
			"captured": int(pos.TransactionCaptured),
			"cash":     int(pos.PaymentCash),
			"terminal": query.TerminalID(),
			"open":     int(pos.SessionOpen),
		}).Scan(&row).Error
	if err != nil {
		return OpenSessionResponse{}, err
	}
	if row.TerminalID == "" {
		return OpenSessionResponse{}, errs.NewObjectNotFoundError("terminalID", query.TerminalID())
	}

	sessionID, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return OpenSessionResponse{}, err
	}

	return OpenSessionResponse{
		SessionID:         sessionID,
		TerminalID:        row.TerminalID,
		OperatorID:        row.OperatorID,
		OpenedAt:          row.OpenedAt,
		OpeningFloat:      row.OpeningFloat,
		CapturedTotal:     row.CapturedTotal,
		CapturedCashTotal: row.CapturedCashTotal,
		TransactionCount:  row.TransactionCount,
	}, nil
}
