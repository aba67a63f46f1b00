package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string // JWT署名シークレット

	ShippingRate   int64 // 配送料（KES、全国一律）
	TaxRatePercent int64 // VAT（%）

	UploadDir string // 商品画像の保存先

	// 決済シミュレーションの待ち時間
	MpesaRequestDelay time.Duration
	MpesaConfirmDelay time.Duration
	CardDelay         time.Duration

	KafkaBrokers []string // 未設定ならイベント送信なし
}

// Loadは環境変数から設定を組み立てる。DB接続はinfra/db側で読む。
func Load() (Config, error) {
	shipping, err := envInt64("SHIPPING_RATE", 500)
	if err != nil {
		return Config{}, err
	}
	taxPct, err := envInt64("TAX_RATE_PERCENT", 16)
	if err != nil {
		return Config{}, err
	}
	if shipping < 0 {
		return Config{}, fmt.Errorf("SHIPPING_RATE must be >= 0")
	}
	if taxPct < 0 || taxPct > 100 {
		return Config{}, fmt.Errorf("TAX_RATE_PERCENT must be 0..100")
	}

	mpesaReq, err := envDurationMS("MPESA_REQUEST_DELAY_MS", 2000)
	if err != nil {
		return Config{}, err
	}
	mpesaConfirm, err := envDurationMS("MPESA_CONFIRM_DELAY_MS", 3000)
	if err != nil {
		return Config{}, err
	}
	cardDelay, err := envDurationMS("CARD_DELAY_MS", 2000)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:              getenv("PORT", "8080"),
		JWTSecret:         getenv("JWT_SECRET", "dev_secret_change_me"),
		ShippingRate:      shipping,
		TaxRatePercent:    taxPct,
		UploadDir:         getenv("UPLOAD_DIR", "./uploads"),
		MpesaRequestDelay: mpesaReq,
		MpesaConfirmDelay: mpesaConfirm,
		CardDelay:         cardDelay,
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		for _, b := range strings.Split(v, ",") {
			b = strings.TrimSpace(b)
			if b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func envDurationMS(key string, defMS int64) (time.Duration, error) {
	ms, err := envInt64(key, defMS)
	if err != nil {
		return 0, err
	}
	if ms < 0 {
		return 0, fmt.Errorf("%s must be >= 0", key)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
