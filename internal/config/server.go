package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	AdminAPIKey string `env:"ADMIN_API_KEY"`

	// House account receiving fees and undistributed pools. Seeded at boot
	// under this username; engines are handed the resolved account id.
	HouseUsername string `env:"HOUSE_USERNAME" envDefault:"house"`

	SignupGrantPT int64 `env:"SIGNUP_GRANT_PT" envDefault:"1000"`

	BetFeeRate  float64 `env:"BET_FEE_RATE" envDefault:"0.10"`
	GameFeeRate float64 `env:"GAME_FEE_RATE" envDefault:"0.10"`

	TTSCostPT int64 `env:"TTS_COST_PT" envDefault:"50"`
	// The full per-use TTS cost routes to the house; there is no owner
	// royalty under the current policy.
	SelfUseFree bool `env:"SELF_USE_FREE" envDefault:"true"`

	OwnerSharePct int `env:"OWNER_SHARE_PCT" envDefault:"70"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c ServerConfig) Validate() error {
	if c.BetFeeRate < 0 || c.BetFeeRate > 1 {
		return fmt.Errorf("BET_FEE_RATE out of range: %v", c.BetFeeRate)
	}
	if c.GameFeeRate < 0 || c.GameFeeRate > 1 {
		return fmt.Errorf("GAME_FEE_RATE out of range: %v", c.GameFeeRate)
	}
	if c.OwnerSharePct < 0 || c.OwnerSharePct > 100 {
		return fmt.Errorf("OWNER_SHARE_PCT out of range: %d", c.OwnerSharePct)
	}
	if c.SignupGrantPT < 0 {
		return fmt.Errorf("SIGNUP_GRANT_PT must not be negative: %d", c.SignupGrantPT)
	}
	if c.TTSCostPT < 0 {
		return fmt.Errorf("TTS_COST_PT must not be negative: %d", c.TTSCostPT)
	}
	return nil
}
