package config

import (
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(flags *Flags)
		expectError bool
	}{
		{
			name:        "defaults are valid",
			mutate:      func(flags *Flags) {},
			expectError: false,
		},
		{
			name:        "bad log level",
			mutate:      func(flags *Flags) { flags.LogLevel = "loud" },
			expectError: true,
		},
		{
			name:        "empty ML server URL",
			mutate:      func(flags *Flags) { flags.MLServerURL = "" },
			expectError: true,
		},
		{
			name:        "zero verify timeout",
			mutate:      func(flags *Flags) { flags.MLVerifyTimeout = 0 },
			expectError: true,
		},
		{
			name:        "zero block interval",
			mutate:      func(flags *Flags) { flags.BlockInterval = 0 },
			expectError: true,
		},
		{
			name:        "zero block size cap",
			mutate:      func(flags *Flags) { flags.MaxBlockSize = 0 },
			expectError: true,
		},
	}

	for _, test := range tests {
		flags := defaultFlags()
		test.mutate(flags)
		err := (&Config{Flags: flags}).validate()
		if test.expectError && err == nil {
			t.Errorf("%s: validate unexpectedly succeeded", test.name)
		}
		if !test.expectError && err != nil {
			t.Errorf("%s: validate unexpectedly failed: %s", test.name, err)
		}
	}
}

func TestDerivedPathsAndDurations(t *testing.T) {
	flags := defaultFlags()
	flags.AppDir = "/tmp/wmchaind-test"
	flags.LogDir = "/tmp/wmchaind-test/logs"
	cfg := &Config{Flags: flags}

	if cfg.DatabaseDir() != "/tmp/wmchaind-test/db" {
		t.Errorf("DatabaseDir returned %s", cfg.DatabaseDir())
	}
	if cfg.LogFile() != "/tmp/wmchaind-test/logs/wmchaind.log" {
		t.Errorf("LogFile returned %s", cfg.LogFile())
	}
	if cfg.VerifyTimeout().Milliseconds() != int64(cfg.MLVerifyTimeout) {
		t.Errorf("VerifyTimeout returned %s for %dms", cfg.VerifyTimeout(), cfg.MLVerifyTimeout)
	}
	if cfg.ProposalInterval().Milliseconds() != int64(cfg.BlockInterval) {
		t.Errorf("ProposalInterval returned %s for %dms", cfg.ProposalInterval(), cfg.BlockInterval)
	}
}
