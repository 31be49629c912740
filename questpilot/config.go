package questpilot

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/questpilot/hackquest-bot/internal/domain/progression"
	"github.com/questpilot/hackquest-bot/internal/gateways/database"
	"github.com/questpilot/hackquest-bot/questpilot/config"
	"github.com/questpilot/hackquest-bot/questpilot/utils"
	"github.com/sahilm/fuzzy"
)

const (
	EnvConfigPath = "QUESTPILOT_CONFIG"
	EnvSepoliaRPC = "SEPOLIA_RPC"
	EnvWebhookURL = "DISCORD_WEBHOOK_URL"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Actions  []string          `toml:"actions" validate:"required,min=1,dive,required"`
	General  GeneralConfig     `toml:"general"`
	Delays   DelaysConfig      `toml:"delays"`
	Referral ReferralConfig    `toml:"referral"`
	Files    FilesConfig       `toml:"files"`
	DB       database.DBConfig `toml:"db"`
	Log      LogConfig         `toml:"log"`
	API      APIConfig         `toml:"api"`
	Metrics  MetricsConfig     `toml:"metrics"`
	Notify   NotifyConfig      `toml:"notify"`
	Schedule ScheduleConfig    `toml:"schedule"`
}

type GeneralConfig struct {
	Threads       int    `toml:"threads" validate:"gte=1"`
	RetryAttempts int    `toml:"retry_attempts" validate:"gte=0"`
	SepoliaRPC    string `toml:"sepolia_rpc" validate:"omitempty,url"`
	Humanize      bool   `toml:"humanize"`
}

type DelaysConfig struct {
	BetweenTasks   utils.Range `toml:"delay_between_tasks"`
	BetweenAccs    utils.Range `toml:"delay_between_accs"`
	BetweenRetries utils.Range `toml:"delay_between_retries"`
	BetweenAnswers utils.Range `toml:"delay_between_answers"`
}

type ReferralConfig struct {
	InviteByNextRefCode    bool   `toml:"invite_by_next_ref_code"`
	InviteByCertainRefCode bool   `toml:"invite_by_certain_ref_code"`
	RefCode                string `toml:"ref_code"`
}

type FilesConfig struct {
	PrivateKeys string `toml:"private_keys" validate:"required"`
	Proxies     string `toml:"proxies"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	File      string     `toml:"file"`
	AddSource bool       `toml:"add_source"`
}

type APIConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second" validate:"gt=0"`
	TimeoutSeconds    int     `toml:"timeout_seconds" validate:"gt=0"`
}

type MetricsConfig struct {
	Textfile string `toml:"textfile"`
}

type NotifyConfig struct {
	DiscordWebhookURL string `toml:"discord_webhook_url" validate:"omitempty,url"`
}

type ScheduleConfig struct {
	EveryHours int `toml:"every_hours" validate:"gte=0"`
}

// DefaultConfig is the configuration a missing key falls back to.
func DefaultConfig() Config {
	return Config{
		Actions: progression.KnownActions(),
		General: GeneralConfig{
			Threads:       1,
			RetryAttempts: 3,
		},
		Delays: DelaysConfig{
			BetweenTasks:   utils.Range{Min: 5, Max: 15},
			BetweenAccs:    utils.Range{Min: 10, Max: 30},
			BetweenRetries: utils.Range{Min: 3, Max: 7},
			BetweenAnswers: utils.Range{Min: 1, Max: 3},
		},
		Files: FilesConfig{
			PrivateKeys: config.DefaultPrivateKeysPath,
			Proxies:     config.DefaultProxiesPath,
		},
		DB: database.DBConfig{
			Driver: database.DriverSQLite,
			Path:   config.DefaultDatabasePath,
		},
		Log: LogConfig{
			Level: slog.LevelInfo,
			File:  config.DefaultLogPath,
		},
		API: APIConfig{
			RequestsPerSecond: config.DefaultRequestsPerSecond,
			TimeoutSeconds:    int(config.DefaultRequestTimeout.Seconds()),
		},
	}
}

// LoadConfig decodes path over the defaults, applies environment overrides
// and validates the result.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := DefaultConfig()
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSepoliaRPC); v != "" {
		c.General.SepoliaRPC = v
	}
	if v := os.Getenv(EnvWebhookURL); v != "" {
		c.Notify.DiscordWebhookURL = v
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	known := progression.KnownActions()
	for _, action := range c.Actions {
		if !slices.Contains(known, action) {
			return fmt.Errorf("%w: unknown action %q%s", ErrInvalidConfig, action, suggest(action, known))
		}
	}

	r := c.Referral
	if r.InviteByNextRefCode && r.InviteByCertainRefCode {
		return fmt.Errorf("%w: invite_by_next_ref_code and invite_by_certain_ref_code are mutually exclusive", ErrInvalidConfig)
	}
	if r.InviteByCertainRefCode && strings.TrimSpace(r.RefCode) == "" {
		return fmt.Errorf("%w: invite_by_certain_ref_code requires ref_code", ErrInvalidConfig)
	}

	if slices.Contains(c.Actions, string(progression.ActionMintCertificates)) && c.General.SepoliaRPC == "" {
		return fmt.Errorf("%w: mint_certificates requires general.sepolia_rpc", ErrInvalidConfig)
	}
	return nil
}

// suggest returns a "did you mean" hint for the closest known name.
func suggest(name string, known []string) string {
	matches := fuzzy.Find(name, known)
	if len(matches) == 0 {
		for _, k := range known {
			if strings.HasPrefix(k, name) || strings.HasPrefix(name, k) {
				return fmt.Sprintf(" (did you mean %q?)", k)
			}
		}
		return fmt.Sprintf(" (known actions: %s)", strings.Join(known, ", "))
	}
	return fmt.Sprintf(" (did you mean %q?)", matches[0].Str)
}

// ProgressionOptions maps the config onto account-run options.
func (c *Config) ProgressionOptions() progression.Options {
	selected := make([]progression.Action, len(c.Actions))
	for i, a := range c.Actions {
		selected[i] = progression.Action(a)
	}

	ref := progression.Referral{
		Code:        strings.TrimSpace(c.Referral.RefCode),
		UseLastUser: c.Referral.InviteByNextRefCode,
	}

	return progression.Options{
		Retry: progression.RetryPolicy{
			Attempts: c.General.RetryAttempts,
			Wait:     c.Delays.BetweenRetries,
		},
		TaskDelay:   c.Delays.BetweenTasks,
		AnswerDelay: c.Delays.BetweenAnswers,
		Humanize:    c.General.Humanize,
		Actions:     selected,
		Referral:    ref,
	}
}
