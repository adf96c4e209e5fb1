package service

import (
	"context"
	"log"
	"time"

	"smc_bot/internal/models"
	"smc_bot/internal/modules/config"
	healthsvc "smc_bot/internal/modules/health/service"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

type ServiceNotifier interface {
	SendService(ctx context.Context, format string, args ...any)
}

// Client — WebSocket-клиент тикового фида. Протокол брокера дальше
// этого файла не утекает: наружу уходит только models.Tick с ДЕЛЬТОЙ
// объёма (кумулятивный дневной объём фида нормализуется здесь).
type Client struct {
	cfg    *config.Config
	n      ServiceNotifier
	health *healthsvc.State

	wsDialer *websocket.Dialer

	lastCumVol int64
	reconnects int
}

func NewClient(cfg *config.Config, n ServiceNotifier, health *healthsvc.State) *Client {
	return &Client{
		cfg:      cfg,
		n:        n,
		health:   health,
		wsDialer: &websocket.Dialer{},
	}
}

// кадр фида: цена последней сделки, кумулятивный объём дня, unix-секунды
type tickFrame struct {
	Symbol string  `json:"symbol"`
	LTP    float64 `json:"ltp"`
	Volume int64   `json:"vol"`
	TS     int64   `json:"ts"`
}

// Stream — один сокет на инструмент, reconnect с паузой в секунду.
// Канал закрывается только по ctx.
func (c *Client) Stream(ctx context.Context) <-chan models.Tick {
	ch := make(chan models.Tick, 8192)

	go func() {
		defer close(ch)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			log.Printf("[FEED] connect %s symbol=%s", c.cfg.Feed.URL, c.cfg.Feed.Symbol)
			conn, _, err := c.wsDialer.DialContext(ctx, c.cfg.Feed.URL, nil)
			if err != nil {
				log.Printf("[FEED] dial error: %v", err)
				time.Sleep(time.Second)
				continue
			}

			c.health.SetFeedConnected(true)
			if c.reconnects > 0 && c.n != nil {
				c.n.SendService(ctx, "🔌 Фид переподключён (попытка %d)", c.reconnects)
			}
			c.reconnects++

			sub := map[string]any{
				"op":      "subscribe",
				"symbols": []string{c.cfg.Feed.Symbol},
			}
			if err := conn.WriteJSON(sub); err != nil {
				log.Printf("[FEED] subscribe error: %v", err)
				_ = conn.Close()
				continue
			}

			// keepalive ping каждые 20s, иначе фид рвёт коннект
			stopPing := make(chan struct{})
			go func() {
				t := time.NewTicker(20 * time.Second)
				defer t.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-stopPing:
						return
					case <-t.C:
						_ = conn.WriteJSON(map[string]string{"op": "ping"})
					}
				}
			}()

			c.readLoop(ctx, conn, ch)
			c.health.SetFeedConnected(false)
			close(stopPing)
			_ = conn.Close()
		}
	}()

	return ch
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn, out chan<- models.Tick) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[FEED] read error: %v", err)
			return
		}

		var frame tickFrame
		if err := sonic.Unmarshal(msg, &frame); err != nil {
			continue // служебные кадры (pong, ack) просто пропускаем
		}
		if frame.Symbol != c.cfg.Feed.Symbol || frame.LTP <= 0 {
			continue
		}

		tick := models.Tick{
			Price:  frame.LTP,
			Volume: c.volumeDelta(frame.Volume),
			Time:   frame.TS,
		}

		select {
		case out <- tick:
		default:
			log.Printf("[FEED] tick channel full, drop t=%d", tick.Time)
		}
	}
}

// volumeDelta переводит кумулятивный дневной объём в дельту за тик.
// Откат счётчика (новая сессия) трактуем как старт с нуля.
func (c *Client) volumeDelta(cum int64) int64 {
	if cum <= 0 {
		return 0
	}
	delta := cum - c.lastCumVol
	if delta < 0 {
		delta = cum
	}
	c.lastCumVol = cum
	return delta
}
