package pg

import (
	"context"
	"fmt"
	"time"

	"smc_bot/internal/models"
	"smc_bot/pkg/db"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
)

// Trades — леджер закрытых сделок. Помимо колонок для выборок пишем
// полный слепок сделки в jsonb — для разборов постфактум.
type Trades struct {
	db db.TxManager
}

func NewTrades(db db.TxManager) *Trades {
	return &Trades{db: db}
}

func (s *Trades) Insert(ctx context.Context, symbol string, t models.Trade) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Trades.Insert: %w", err)
		}
	}()

	var payload []byte
	payload, err = sonic.Marshal(t)
	if err != nil {
		return err
	}

	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, `
			INSERT INTO paper_trades
				(trade_id, symbol, direction, status, entry_price, exit_price,
				 entry_time, exit_time, position_size, pnl_points, pnl_amount, payload)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			t.ID, symbol, string(t.Direction), string(t.Status), t.EntryPrice, t.ExitPrice,
			t.EntryTime, t.ExitTime, t.PositionSize, t.ProfitLossPoints, t.ProfitLossAmount, payload,
		)
		return err
	})
}

// ListSince — закрытые сделки с момента from (восстановление дневных
// счётчиков после рестарта).
func (s *Trades) ListSince(ctx context.Context, symbol string, from time.Time) (out []models.Trade, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Trades.ListSince: %w", err)
		}
	}()

	rows, err := s.db.Conn().Query(ctx, `
		SELECT payload
		FROM paper_trades
		WHERE symbol = $1 AND exit_time >= $2
		ORDER BY exit_time`,
		symbol, from,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var t models.Trade
		if err := sonic.Unmarshal(payload, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
