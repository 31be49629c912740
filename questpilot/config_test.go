package questpilot

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/questpilot/hackquest-bot/internal/domain/progression"
	"github.com/questpilot/hackquest-bot/questpilot/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(EnvSepoliaRPC, "")
	t.Setenv(EnvWebhookURL, "")

	path := writeConfig(t, `
actions = ["complete_quests", "ethereum_ecosystem"]

[general]
threads = 4
retry_attempts = 5
humanize = true

[delays]
delay_between_tasks = { min = 1, max = 2 }
delay_between_retries = { min = 0, max = 1 }

[referral]
invite_by_certain_ref_code = true
ref_code = " ABC123 "

[log]
level = "debug"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"complete_quests", "ethereum_ecosystem"}, cfg.Actions)
	assert.Equal(t, 4, cfg.General.Threads)
	assert.True(t, cfg.General.Humanize)
	assert.Equal(t, utils.Range{Min: 1, Max: 2}, cfg.Delays.BetweenTasks)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)

	// Untouched sections keep their defaults.
	def := DefaultConfig()
	assert.Equal(t, def.Delays.BetweenAccs, cfg.Delays.BetweenAccs)
	assert.Equal(t, def.DB, cfg.DB)
	assert.Equal(t, def.API, cfg.API)

	opts := cfg.ProgressionOptions()
	assert.Equal(t, 5, opts.Retry.Attempts)
	assert.Equal(t, utils.Range{Min: 0, Max: 1}, opts.Retry.Wait)
	assert.Equal(t, []progression.Action{progression.ActionCompleteQuests, progression.ActionEthereumEcosystem}, opts.Actions)
	assert.Equal(t, progression.Referral{Code: "ABC123"}, opts.Referral)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvSepoliaRPC, "https://sepolia.example.org")
	t.Setenv(EnvWebhookURL, "https://discord.com/api/webhooks/1/token")

	cfg, err := LoadConfig(writeConfig(t, `actions = ["mint_certificates"]`))
	require.NoError(t, err)
	assert.Equal(t, "https://sepolia.example.org", cfg.General.SepoliaRPC)
	assert.Equal(t, "https://discord.com/api/webhooks/1/token", cfg.Notify.DiscordWebhookURL)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		wantMsg string
	}{
		{
			name:   "defaults without mint",
			mutate: func(c *Config) { c.Actions = []string{"complete_quests"} },
		},
		{
			name:    "zero threads",
			mutate:  func(c *Config) { c.General.Threads = 0 },
			wantErr: true,
			wantMsg: "Threads",
		},
		{
			name:    "inverted range",
			mutate:  func(c *Config) { c.Delays.BetweenAccs = utils.Range{Min: 10, Max: 5} },
			wantErr: true,
			wantMsg: "BetweenAccs",
		},
		{
			name:    "bad rpc url",
			mutate:  func(c *Config) { c.General.SepoliaRPC = "not a url" },
			wantErr: true,
			wantMsg: "SepoliaRPC",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.DB.Driver = "mysql" },
			wantErr: true,
			wantMsg: "Driver",
		},
		{
			name:    "postgres without dsn",
			mutate:  func(c *Config) { c.DB.Driver = "postgres" },
			wantErr: true,
			wantMsg: "DSN",
		},
		{
			name:    "no actions",
			mutate:  func(c *Config) { c.Actions = nil },
			wantErr: true,
		},
		{
			name:    "unknown action suggests a name",
			mutate:  func(c *Config) { c.Actions = []string{"complete_quest"} },
			wantErr: true,
			wantMsg: `did you mean "complete_quests"`,
		},
		{
			name: "both referral modes",
			mutate: func(c *Config) {
				c.Actions = []string{"complete_quests"}
				c.Referral = ReferralConfig{InviteByNextRefCode: true, InviteByCertainRefCode: true, RefCode: "X"}
			},
			wantErr: true,
			wantMsg: "mutually exclusive",
		},
		{
			name: "certain referral without code",
			mutate: func(c *Config) {
				c.Actions = []string{"complete_quests"}
				c.Referral = ReferralConfig{InviteByCertainRefCode: true}
			},
			wantErr: true,
			wantMsg: "requires ref_code",
		},
		{
			name:    "mint without rpc",
			mutate:  func(c *Config) { c.Actions = []string{"mint_certificates"} },
			wantErr: true,
			wantMsg: "sepolia_rpc",
		},
		{
			name: "mint with rpc",
			mutate: func(c *Config) {
				c.Actions = []string{"mint_certificates"}
				c.General.SepoliaRPC = "https://rpc.sepolia.org"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.General.SepoliaRPC = ""
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil {
				assert.True(t, errors.Is(err, ErrInvalidConfig))
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestConfig_ProgressionOptionsReferral(t *testing.T) {
	tests := []struct {
		name     string
		referral ReferralConfig
		want     progression.Referral
	}{
		{name: "none", referral: ReferralConfig{}, want: progression.Referral{}},
		{name: "code without mode", referral: ReferralConfig{RefCode: " PLAIN "}, want: progression.Referral{Code: "PLAIN"}},
		{name: "next", referral: ReferralConfig{InviteByNextRefCode: true}, want: progression.Referral{UseLastUser: true}},
		{
			name:     "next with fallback",
			referral: ReferralConfig{InviteByNextRefCode: true, RefCode: "SEED"},
			want:     progression.Referral{UseLastUser: true, Code: "SEED"},
		},
		{
			name:     "certain",
			referral: ReferralConfig{InviteByCertainRefCode: true, RefCode: "CODE"},
			want:     progression.Referral{Code: "CODE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Referral = tt.referral
			assert.Equal(t, tt.want, cfg.ProgressionOptions().Referral)
		})
	}
}
