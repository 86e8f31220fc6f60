package config

import "testing"

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/arcade?sslmode=disable")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.HouseUsername != "house" {
		t.Fatalf("HouseUsername = %q, want house", cfg.HouseUsername)
	}
	if cfg.BetFeeRate != 0.10 {
		t.Fatalf("BetFeeRate = %v, want 0.10", cfg.BetFeeRate)
	}
	if cfg.SignupGrantPT != 1000 {
		t.Fatalf("SignupGrantPT = %d, want 1000", cfg.SignupGrantPT)
	}
	if cfg.TTSCostPT != 50 {
		t.Fatalf("TTSCostPT = %d, want 50", cfg.TTSCostPT)
	}
	if !cfg.SelfUseFree {
		t.Fatal("SelfUseFree = false, want true")
	}
	if cfg.OwnerSharePct != 70 {
		t.Fatalf("OwnerSharePct = %d, want 70", cfg.OwnerSharePct)
	}
}

func TestLoadServerRequiresPostgresDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")

	_, err := LoadServer()
	if err == nil {
		t.Fatal("LoadServer() expected error, got nil")
	}
}

func TestLoadServerParseTypes(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/arcade?sslmode=disable")
	t.Setenv("BET_FEE_RATE", "0.05")
	t.Setenv("TTS_COST_PT", "80")
	t.Setenv("SELF_USE_FREE", "false")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.BetFeeRate != 0.05 {
		t.Fatalf("BetFeeRate = %v, want 0.05", cfg.BetFeeRate)
	}
	if cfg.TTSCostPT != 80 {
		t.Fatalf("TTSCostPT = %d, want 80", cfg.TTSCostPT)
	}
	if cfg.SelfUseFree {
		t.Fatal("SelfUseFree = true, want false")
	}
}

func TestLoadServerRejectsBadFeeRate(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/arcade?sslmode=disable")
	t.Setenv("BET_FEE_RATE", "1.5")

	if _, err := LoadServer(); err == nil {
		t.Fatal("LoadServer() expected error for fee rate > 1, got nil")
	}

	t.Setenv("BET_FEE_RATE", "-0.1")
	if _, err := LoadServer(); err == nil {
		t.Fatal("LoadServer() expected error for negative fee rate, got nil")
	}
}
