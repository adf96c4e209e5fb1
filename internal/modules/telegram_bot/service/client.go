package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"smc_bot/internal/models"
	"smc_bot/internal/modules/config"
	papersvc "smc_bot/internal/modules/paper/service"
	risksvc "smc_bot/internal/modules/risk/service"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram — пассивный нотифайер + две readonly-команды: /stats и /state.
// Без токена в конфиге деградирует в лог (nil-safe, как и прежде).
// Источники данных для команд подключаются через Bind: трейдер сам
// зависит от нотифайера, конструкторы не должны закольцеваться.
type Telegram struct {
	bot    *tgbot.BotAPI
	chatID int64

	trader *papersvc.Trader
	keeper *risksvc.StateKeeper
}

func NewTelegram(cfg *config.Config) (*Telegram, error) {
	if cfg.Telegram.Token == "" {
		log.Printf("[TG] token is empty, notifications go to log only")
		return &Telegram{}, nil
	}
	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	return &Telegram{
		bot:    b,
		chatID: cfg.Telegram.ChatID,
	}, nil
}

// Bind — источники для /stats и /state; вызывается до Start.
func (t *Telegram) Bind(trader *papersvc.Trader, keeper *risksvc.StateKeeper) {
	t.trader = trader
	t.keeper = keeper
}

// SendService — сервисные сообщения пайплайна (сигналы, входы, автопауза).
func (t *Telegram) SendService(_ context.Context, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if t == nil || t.bot == nil || t.chatID == 0 {
		log.Printf("[TG] %s", msg)
		return
	}
	_, _ = t.bot.Send(tgbot.NewMessage(t.chatID, msg))
}

// Start: long-polling только ради команд.
func (t *Telegram) Start(ctx context.Context) {
	if t == nil || t.bot == nil {
		return
	}

	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message"}

	updates := t.bot.GetUpdatesChan(u)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd := <-updates:
				if upd.Message == nil || upd.Message.Chat == nil ||
					upd.Message.Chat.ID != t.chatID || !upd.Message.IsCommand() {
					continue
				}
				switch upd.Message.Command() {
				case "stats":
					t.handleStats(ctx)
				case "state":
					t.handleState(ctx)
				}
			}
		}
	}()
}

func (t *Telegram) handleStats(ctx context.Context) {
	s := t.trader.Statistics()
	var b strings.Builder
	b.WriteString("📊 Статистика (леджер):\n")
	fmt.Fprintf(&b, "- сделок: %d (W %d / L %d)\n", s.TotalTrades, s.Wins, s.Losses)
	fmt.Fprintf(&b, "- winrate: %.1f%%\n", s.WinRate)
	fmt.Fprintf(&b, "- PnL: %.1f pt, avg win %.1f / avg loss %.1f", s.TotalPnL, s.AvgWin, s.AvgLoss)
	t.SendService(ctx, "%s", b.String())
}

func (t *Telegram) handleState(ctx context.Context) {
	st := t.keeper.Snapshot()
	var b strings.Builder
	b.WriteString("⚙️ Состояние сессии:\n")
	fmt.Fprintf(&b, "- день: %s, PnL %.1f pt, сделок %d\n", st.SessionDate, st.DailyPnlPoints, st.TradesToday)
	fmt.Fprintf(&b, "- серия лоссов: %d\n", st.ConsecutiveLosses)
	fmt.Fprintf(&b, "- equity %.0f (peak %.0f)\n", st.Equity, st.PeakBalance)
	if st.IsPaused {
		fmt.Fprintf(&b, "- ⏸ пауза: %s\n", st.PauseReason)
	}
	if st.IsWeeklyLocked {
		b.WriteString("- 🔒 weekly lock\n")
	}
	if open, ok := t.trader.Open(); ok {
		fmt.Fprintf(&b, "- позиция: #%d %s @ %.2f (SL %.2f / TP %.2f)",
			open.ID, directionArrow(open.Direction), open.EntryPrice, open.StopLoss, open.TakeProfit)
	} else {
		b.WriteString("- позиции нет")
	}
	t.SendService(ctx, "%s", b.String())
}

func directionArrow(d models.Direction) string {
	if d == models.DirectionBullish {
		return "LONG ⬆️"
	}
	return "SHORT ⬇️"
}
