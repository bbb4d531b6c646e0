// Package config loads the optional runtime settings for an
// actor.System. Every key has a built-in default; nothing here is
// required for a System to boot.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every runtime setting an actor.System accepts.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Log        LogConfig        `yaml:"log"`
	Mailbox    MailboxConfig    `yaml:"mailbox"`
	Dispatcher DispatcherConfig `yaml:"dispatcher"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
}

type LogConfig struct {
	TimeFormat string   `yaml:"time_format"`
	DateFormat string   `yaml:"date_format"`
	LogFormat  string   `yaml:"log_format"`
	Level      string   `yaml:"level"`
	Filter     []string `yaml:"filter"`
}

type MailboxConfig struct {
	// MsgProcessLimit bounds how many user messages a single Run drains
	// before yielding. Recommended default is 30.
	MsgProcessLimit uint32 `yaml:"msg_process_limit"`
}

type DispatcherConfig struct {
	// PoolSize bounds the number of kernel loops the PooledExecutor will
	// run concurrently; zero means "use the goroutine-per-actor executor
	// instead" (see executor.go).
	PoolSize  int `yaml:"pool_size"`
	StackSize int `yaml:"stack_size"`
}

type SchedulerConfig struct {
	// FrequencyMillis named a poll interval in a legacy poll-based
	// scheduler design; here the timer is demand-driven (see timer.go)
	// and this value instead floors how often the scheduler's single
	// goroutine is willing to wake for near-simultaneous jobs.
	FrequencyMillis int `yaml:"frequency_millis"`
}

// Default returns the built-in defaults for every key.
func Default() *Config {
	return &Config{
		Debug: false,
		Log: LogConfig{
			TimeFormat: "15:04:05.000",
			DateFormat: "2006-01-02",
			LogFormat:  "console",
			Level:      "info",
		},
		Mailbox: MailboxConfig{
			MsgProcessLimit: 30,
		},
		Dispatcher: DispatcherConfig{
			PoolSize:  0,
			StackSize: 0,
		},
		Scheduler: SchedulerConfig{
			FrequencyMillis: 50,
		},
	}
}

// Load reads a YAML config file and overlays it onto Default(). Missing
// keys keep their default value: the zero value of a struct field left
// unset by the YAML document is indistinguishable from "not configured"
// for every field here, which is an accepted simplification for a
// config surface this small.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(f, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
