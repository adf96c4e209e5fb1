package pg

import (
	"context"
	"fmt"

	"smc_bot/internal/models"
	"smc_bot/pkg/db"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
)

// Sessions — журнал завершённых торговых дней. Пишется один раз при
// смене сессии: итог дня + полный слепок состояния в jsonb.
type Sessions struct {
	db db.TxManager
}

func NewSessions(db db.TxManager) *Sessions {
	return &Sessions{db: db}
}

func (s *Sessions) Insert(ctx context.Context, symbol string, st models.SystemState) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Sessions.Insert: %w", err)
		}
	}()

	var payload []byte
	payload, err = sonic.Marshal(st)
	if err != nil {
		return err
	}

	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, `
			INSERT INTO risk_sessions
				(session_date, symbol, pnl_points, trades, consecutive_losses,
				 equity, peak_balance, paused, pause_reason, payload)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (session_date, symbol) DO UPDATE SET
				pnl_points = EXCLUDED.pnl_points,
				trades = EXCLUDED.trades,
				consecutive_losses = EXCLUDED.consecutive_losses,
				equity = EXCLUDED.equity,
				peak_balance = EXCLUDED.peak_balance,
				paused = EXCLUDED.paused,
				pause_reason = EXCLUDED.pause_reason,
				payload = EXCLUDED.payload`,
			st.SessionDate, symbol, st.DailyPnlPoints, st.TradesToday, st.ConsecutiveLosses,
			st.Equity, st.PeakBalance, st.IsPaused, st.PauseReason, payload,
		)
		return err
	})
}
