package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for the JSON file, with
// durations written as strings ("30s", "15m").
type StructuredJSONConfig struct {
	Storage struct {
		DB struct {
			DSN         string   `json:"dsn"`
			BusyTimeout Duration `json:"busy_timeout"`
			BusyRetries uint64   `json:"busy_retries"`
			BusyBackoff Duration `json:"busy_backoff"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Keys struct {
		Backend         string   `json:"backend"`
		KeyringBackends []string `json:"keyring_backends"`
		ServiceName     string   `json:"service_name"`
		FileDir         string   `json:"file_dir"`
	} `json:"keys,omitempty"`

	Gate struct {
		MaxAttempts   int      `json:"max_attempts"`
		LockoutBase   Duration `json:"lockout_base"`
		LockoutMax    Duration `json:"lockout_max"`
		GraceWindow   Duration `json:"grace_window"`
		PromptTimeout Duration `json:"prompt_timeout"`
		ArgonTime     uint32   `json:"argon_time"`
		ArgonMemory   uint32   `json:"argon_memory"`
		ArgonThreads  uint8    `json:"argon_threads"`
	} `json:"gate,omitempty"`

	Vault struct {
		DeleteRequiresAuth  *bool    `json:"delete_requires_auth"`
		DefaultCategory     string   `json:"default_category"`
		EnvelopeVersion     uint8    `json:"envelope_version"`
		ClipboardClearAfter Duration `json:"clipboard_clear_after"`
	} `json:"vault,omitempty"`

	Log struct {
		FilePath string `json:"file_path"`
	} `json:"log,omitempty"`
}

// parseJSON reads the JSON config file. The keyring file password is never
// read from the file.
func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Storage: Storage{
			DB: DB{
				DSN:         jsonCfg.Storage.DB.DSN,
				BusyTimeout: time.Duration(jsonCfg.Storage.DB.BusyTimeout),
				BusyRetries: jsonCfg.Storage.DB.BusyRetries,
				BusyBackoff: time.Duration(jsonCfg.Storage.DB.BusyBackoff),
			},
		},
		Keys: Keys{
			Backend:         jsonCfg.Keys.Backend,
			KeyringBackends: jsonCfg.Keys.KeyringBackends,
			ServiceName:     jsonCfg.Keys.ServiceName,
			FileDir:         jsonCfg.Keys.FileDir,
		},
		Gate: Gate{
			MaxAttempts:   jsonCfg.Gate.MaxAttempts,
			LockoutBase:   time.Duration(jsonCfg.Gate.LockoutBase),
			LockoutMax:    time.Duration(jsonCfg.Gate.LockoutMax),
			GraceWindow:   time.Duration(jsonCfg.Gate.GraceWindow),
			PromptTimeout: time.Duration(jsonCfg.Gate.PromptTimeout),
			ArgonTime:     jsonCfg.Gate.ArgonTime,
			ArgonMemory:   jsonCfg.Gate.ArgonMemory,
			ArgonThreads:  jsonCfg.Gate.ArgonThreads,
		},
		Vault: Vault{
			DeleteRequiresAuth:  jsonCfg.Vault.DeleteRequiresAuth,
			DefaultCategory:     jsonCfg.Vault.DefaultCategory,
			EnvelopeVersion:     jsonCfg.Vault.EnvelopeVersion,
			ClipboardClearAfter: time.Duration(jsonCfg.Vault.ClipboardClearAfter),
		},
		Log: Log{
			FilePath: jsonCfg.Log.FilePath,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
