package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
	Server struct {
		Addr                string   `yaml:"addr"`
		Pprof               bool     `yaml:"pprof"`
		ReadTimeoutSeconds  int      `yaml:"read_timeout_seconds"`
		WriteTimeoutSeconds int      `yaml:"write_timeout_seconds"`
		IdleTimeoutSeconds  int      `yaml:"idle_timeout_seconds"`
		AdminAllowCIDRs     []string `yaml:"admin_allow_cidrs"`
	} `yaml:"server"`
	Cycle struct {
		Quantity             float64 `yaml:"quantity"`
		PollIntervalSeconds  int     `yaml:"poll_interval_seconds"`
		FetchTimeoutSeconds  int     `yaml:"fetch_timeout_seconds"`
		OnError              string  `yaml:"on_error"` // "wait" or "retry"
		RetryIntervalSeconds int     `yaml:"retry_interval_seconds"`
	} `yaml:"cycle"`
	Venues struct {
		Coinbase struct {
			BaseURL string `yaml:"base_url"`
			Product string `yaml:"product"`
		} `yaml:"coinbase"`
		Gemini struct {
			BaseURL string `yaml:"base_url"`
			Symbol  string `yaml:"symbol"`
		} `yaml:"gemini"`
	} `yaml:"venues"`
	Network struct {
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"network"`
}

func defaultConfig() Config {
	var c Config
	c.Logging.Level = "info"
	c.Logging.Pretty = false
	c.Server.Addr = ":9090"
	c.Server.Pprof = false
	c.Server.ReadTimeoutSeconds = 5
	c.Server.WriteTimeoutSeconds = 10
	c.Server.IdleTimeoutSeconds = 60
	c.Server.AdminAllowCIDRs = []string{"127.0.0.0/8", "::1/128"}
	c.Cycle.Quantity = 10.0
	c.Cycle.PollIntervalSeconds = 10
	c.Cycle.FetchTimeoutSeconds = 5
	c.Cycle.OnError = "wait"
	c.Cycle.RetryIntervalSeconds = 2
	c.Venues.Coinbase.BaseURL = "https://api.exchange.coinbase.com"
	c.Venues.Coinbase.Product = "BTC-USD"
	c.Venues.Gemini.BaseURL = "https://api.gemini.com"
	c.Venues.Gemini.Symbol = "BTCUSD"
	c.Network.RequestsPerSecond = 2.0
	c.Network.Burst = 4
	return c
}

func Load() Config {
	c := defaultConfig()
	if path := os.Getenv("DEPTHWATCH_CONFIG"); path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	if v := os.Getenv("DEPTHWATCH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("DEPTHWATCH_LOG_PRETTY"); v == "1" || v == "true" {
		c.Logging.Pretty = true
	}
	if v := os.Getenv("DEPTHWATCH_HTTP_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("DEPTHWATCH_PPROF"); v == "1" || v == "true" {
		c.Server.Pprof = true
	}
	if v := os.Getenv("DEPTHWATCH_ADMIN_ALLOW_CIDRS"); v != "" {
		c.Server.AdminAllowCIDRs = splitCSV(v)
	}
	if v := os.Getenv("DEPTHWATCH_QUANTITY"); v != "" {
		var f float64
		_, _ = fmt.Sscan(v, &f)
		if f > 0 {
			c.Cycle.Quantity = f
		}
	}
	if v := os.Getenv("DEPTHWATCH_POLL_INTERVAL_SECONDS"); v != "" {
		var n int
		_, _ = fmt.Sscan(v, &n)
		if n > 0 {
			c.Cycle.PollIntervalSeconds = n
		}
	}
	if v := os.Getenv("DEPTHWATCH_ON_ERROR"); v == "wait" || v == "retry" {
		c.Cycle.OnError = v
	}
	if v := os.Getenv("DEPTHWATCH_RETRY_INTERVAL_SECONDS"); v != "" {
		var n int
		_, _ = fmt.Sscan(v, &n)
		if n > 0 {
			c.Cycle.RetryIntervalSeconds = n
		}
	}
	// Base URLs are overridable so tests and sandboxes can point at fixtures
	if v := os.Getenv("DEPTHWATCH_COINBASE_BASE_URL"); v != "" {
		c.Venues.Coinbase.BaseURL = v
	}
	if v := os.Getenv("DEPTHWATCH_GEMINI_BASE_URL"); v != "" {
		c.Venues.Gemini.BaseURL = v
	}
	return c
}

func splitCSV(s string) []string {
	var out []string
	buf := []rune{}
	for _, r := range s {
		if r == ',' {
			if len(buf) > 0 {
				out = append(out, string(buf))
				buf = buf[:0]
			}
			continue
		}
		buf = append(buf, r)
	}
	if len(buf) > 0 {
		out = append(out, string(buf))
	}
	return out
}
