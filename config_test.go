package hisaab

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DBPath != "hisaab.db" {
		t.Errorf("DBPath = %q, want the default", cfg.DBPath)
	}
	if cfg.Currency != "INR" {
		t.Errorf("Currency = %q, want INR", cfg.Currency)
	}
	if cfg.TopN != 5 {
		t.Errorf("TopN = %d, want 5", cfg.TopN)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("HISAAB_CURRENCY", "USD")
	t.Setenv("HISAAB_TOP_N", "3")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Currency != "USD" {
		t.Errorf("Currency = %q, want the env override USD", cfg.Currency)
	}
	if cfg.TopN != 3 {
		t.Errorf("TopN = %d, want the env override 3", cfg.TopN)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{Currency: "INR", TopN: 5}},
		{name: "empty currency", cfg: Config{TopN: 5}, wantErr: true},
		{name: "bad currency code", cfg: Config{Currency: "RUPEES", TopN: 5}, wantErr: true},
		{name: "zero top_n", cfg: Config{Currency: "INR"}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("want an error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
