package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Addr:               ":8080",
		DatabaseURL:        "postgres://localhost/appraisal",
		TokenTTL:           time.Hour,
		Environment:        "test",
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 60,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing database url",
			mutate:  func(c *Config) { c.DatabaseURL = " " },
			wantErr: true,
		},
		{
			name:    "production requires jwt secret",
			mutate:  func(c *Config) { c.Environment = "production"; c.RunSeed = false },
			wantErr: true,
		},
		{
			name:    "body limit too small",
			mutate:  func(c *Config) { c.MaxBodyBytes = 512 },
			wantErr: true,
		},
		{
			name:    "rate limit must be positive",
			mutate:  func(c *Config) { c.RateLimitPerMinute = 0 },
			wantErr: true,
		},
		{
			name:    "token ttl must be positive",
			mutate:  func(c *Config) { c.TokenTTL = 0 },
			wantErr: true,
		},
		{
			name:    "email enabled requires smtp host",
			mutate:  func(c *Config) { c.EmailEnabled = true },
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
