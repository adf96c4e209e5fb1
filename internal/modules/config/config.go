package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	databaseDSN       = "DATABASE_DSN"
	feedURLENV        = "FEED_URL"
)

// Config ...
type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	DB string `yaml:"db_dsn"`

	Service struct {
		Host       string `yaml:"host"`
		HealthPort int    `yaml:"health_port"`
	} `yaml:"service"`

	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`

	// Фид и инструмент. Торгуем ОДИН фьючерс — whitelist из одного символа.
	Feed struct {
		URL    string `yaml:"url"`
		Symbol string `yaml:"symbol"` // например CRUDEOIL
	} `yaml:"feed"`

	// Риск-политика (RiskGate). "Пункты" — пункты цены инструмента.
	Risk struct {
		TradingEnabled           bool    `yaml:"trading_enabled"`
		AllowedSymbol            string  `yaml:"allowed_symbol"`
		MaxDailyLossPoints       float64 `yaml:"max_daily_loss_points"`
		DailyProfitTargetPoints  float64 `yaml:"daily_profit_target_points"`
		MinRiskReward            float64 `yaml:"min_risk_reward"`
		MaxPositionSizeLots      float64 `yaml:"max_position_size_lots"`
		AccountBalance           float64 `yaml:"account_balance"`
		RiskPerTradePercent      float64 `yaml:"risk_per_trade_percent"`
		MaxEquityDrawdownPercent float64 `yaml:"max_equity_drawdown_percent"`
	} `yaml:"risk"`

	// Торговое окно. Проверка пересчитывается на каждый вызов, не кэшируется.
	Window struct {
		Start string `yaml:"start"` // "18:00"
		End   string `yaml:"end"`   // "20:30"
		TZ    string `yaml:"tz"`    // IANA, например Asia/Kolkata
	} `yaml:"window"`

	// Раннер / агрегатор
	ConfirmedKeep     int           // сколько подтверждённых свечей держим на таймфрейм
	CooldownAfterExit time.Duration // пауза после закрытия позиции перед новым входом
	AnalysisMinGap    time.Duration // минимальный зазор между проходами анализа
	SessionResetEvery time.Duration // период идемпотентной проверки смены сессии
	WarmupLookback    int           // сколько 1m свечей поднимаем из БД на старте
}

func NewConfig() (*Config, error) {
	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		log.Fatalf("Failed to open config file: %v", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := yaml.NewDecoder(file)
	config := Config{
		ConfirmedKeep:     intFromEnv("CONFIRMED_KEEP", 500),
		CooldownAfterExit: durationFromEnv("COOLDOWN_AFTER_EXIT", "5m"),
		AnalysisMinGap:    durationFromEnv("ANALYSIS_MIN_GAP", "15s"),
		SessionResetEvery: durationFromEnv("SESSION_RESET_EVERY", "5m"),
		WarmupLookback:    intFromEnv("WARMUP_LOOKBACK", 6000),
	}
	err = decoder.Decode(&config)
	if err != nil {
		log.Fatalf("Failed to decode config file: %v", err)
	}

	if token := os.Getenv(tokenTelegramENV); token != "" {
		config.Telegram.Token = token
	}
	if dsn := os.Getenv(databaseDSN); dsn != "" {
		config.DB = dsn
	}
	if url := os.Getenv(feedURLENV); url != "" {
		config.Feed.URL = url
	}

	// точечные env-оверрайды риска для стендов, без правки yaml
	config.Risk.MaxDailyLossPoints = floatFromEnv("MAX_DAILY_LOSS_POINTS", config.Risk.MaxDailyLossPoints)
	config.Risk.DailyProfitTargetPoints = floatFromEnv("DAILY_PROFIT_TARGET_POINTS", config.Risk.DailyProfitTargetPoints)
	config.Risk.AccountBalance = floatFromEnv("ACCOUNT_BALANCE", config.Risk.AccountBalance)

	// дефолты риска: без явного конфига бот торгует максимально консервативно
	if config.Risk.AllowedSymbol == "" {
		config.Risk.AllowedSymbol = config.Feed.Symbol
	}
	if config.Risk.MinRiskReward <= 0 {
		config.Risk.MinRiskReward = 2.0
	}
	if config.Risk.MaxPositionSizeLots <= 0 {
		config.Risk.MaxPositionSizeLots = 1
	}
	if config.Window.Start == "" {
		config.Window.Start = "18:00"
	}
	if config.Window.End == "" {
		config.Window.End = "20:30"
	}
	if config.Window.TZ == "" {
		config.Window.TZ = "Asia/Kolkata"
	}

	return &config, nil
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
