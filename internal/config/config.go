package config

import (
	"log"
	"os"
	"time"

	"github.com/KevinSaG/my-ecommerce-sub000/pkg/utils"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string   `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTP     `yaml:"http"`
	Postgres PG       `yaml:"postgres"`
	Redis    Redis    `yaml:"redis"`
	Kafka    Kafka    `yaml:"kafka"`
	Checkout Checkout `yaml:"checkout"`
	Limiter  Limiter  `yaml:"limiter"`
}

type HTTP struct {
	Port    string        `yaml:"port" env:"HTTP_PORT" env-default:":3000"`
	Timeout time.Duration `yaml:"timeout" env-default:"4s"`
}

type PG struct {
	URL string `yaml:"url" env:"DB_URL"`
}

type Redis struct {
	Addr string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	GroupID string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"storefront"`
}

// Checkout carries the monetary knobs of the checkout core. Rates are basis
// points so all money math stays in integer cents.
//
// TODO: tax_rate_bps (charged at checkout) and cart_tax_rate_bps (shown in the
// cart summary) disagree, 15% vs 12%. Inherited from the legacy storefront;
// confirm the correct rate with billing before unifying them.
type Checkout struct {
	TaxRateBps       int64 `yaml:"tax_rate_bps" env:"CHECKOUT_TAX_RATE_BPS" env-default:"1500"`
	CartTaxRateBps   int64 `yaml:"cart_tax_rate_bps" env:"CART_TAX_RATE_BPS" env-default:"1200"`
	DeliveryFeeCents int64 `yaml:"delivery_fee_cents" env:"DELIVERY_FEE_CENTS" env-default:"1000"`
}

type Limiter struct {
	Max        int           `yaml:"max" env-default:"20"`
	Expiration time.Duration `yaml:"expiration" env-default:"5s"`
}

func MustLoad() *Config {
	configPath := utils.ParseWithFallback("CONFIG_PATH", "./config/local.yaml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exists: %v\n", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("error reading config: %v", err)
	}

	return &cfg
}
