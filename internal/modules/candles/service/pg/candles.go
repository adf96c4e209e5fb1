package pg

import (
	"context"
	"fmt"

	"smc_bot/internal/models"
	"smc_bot/pkg/db"

	"github.com/jackc/pgx/v5"
)

// Candles — стор подтверждённых свечей. Живые свечи не персистятся.
type Candles struct {
	db db.TxManager
}

func NewCandles(db db.TxManager) *Candles {
	return &Candles{db: db}
}

func (c *Candles) Insert(ctx context.Context, symbol string, tf models.Timeframe, cd models.Candle) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Candles.Insert: %w", err)
		}
	}()

	return c.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, `
			INSERT INTO candles (symbol, tf, bucket_time, open, high, low, close, volume)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (symbol, tf, bucket_time) DO NOTHING`,
			symbol, string(tf), cd.Time, cd.Open, cd.High, cd.Low, cd.Close, cd.Volume,
		)
		return err
	})
}

// ListRecent — последние n свечей по возрастанию времени (для warmup).
func (c *Candles) ListRecent(ctx context.Context, symbol string, tf models.Timeframe, n int) (out []models.Candle, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Candles.ListRecent: %w", err)
		}
	}()

	rows, err := c.db.Conn().Query(ctx, `
		SELECT bucket_time, open, high, low, close, volume
		FROM candles
		WHERE symbol = $1 AND tf = $2
		ORDER BY bucket_time DESC
		LIMIT $3`,
		symbol, string(tf), n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var cd models.Candle
		if err := rows.Scan(&cd.Time, &cd.Open, &cd.High, &cd.Low, &cd.Close, &cd.Volume); err != nil {
			return nil, err
		}
		out = append(out, cd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// в БД DESC, агрегатору нужен ASC
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
