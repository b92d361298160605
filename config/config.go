package config

import (
	"io"
	"io/ioutil"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/juju/errors"

	"github.com/9seconds/gazetteer/geolib"
)

const (
	DefaultListen = "localhost:8000"
)

type duration struct {
	time.Duration
}

func (dur *duration) UnmarshalText(text []byte) (err error) {
	dur.Duration, err = time.ParseDuration(string(text))
	return
}

type Config struct {
	Token           string   `toml:"token"`
	Listen          string   `toml:"listen"`
	BaseURL         string   `toml:"base_url"`
	BaseURLv6       string   `toml:"base_url_v6"`
	CacheCapacity   int      `toml:"cache_capacity"`
	Timeout         duration `toml:"timeout"`
	BatchSize       int      `toml:"batch_size"`
	TimeoutPerChunk duration `toml:"timeout_per_chunk"`
	TimeoutTotal    duration `toml:"timeout_total"`
}

// ClientConfig translates a file config into a geolib one. Zero values
// pass through: geolib applies its own defaults.
func (c *Config) ClientConfig() geolib.Config {
	return geolib.Config{
		Token:         c.Token,
		BaseURL:       c.BaseURL,
		BaseURLv6:     c.BaseURLv6,
		CacheCapacity: c.CacheCapacity,
		Timeout:       c.Timeout.Duration,
	}
}

func (c *Config) BatchOptions() geolib.BatchOptions {
	return geolib.BatchOptions{
		BatchSize:       c.BatchSize,
		TimeoutPerChunk: c.TimeoutPerChunk.Duration,
		TimeoutTotal:    c.TimeoutTotal.Duration,
	}
}

func Default() *Config {
	return &Config{Listen: DefaultListen}
}

func Parse(file io.Reader) (*Config, error) {
	conf := Default()

	buf, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, errors.Annotate(err, "Cannot read config file")
	}

	if _, err := toml.Decode(string(buf), conf); err != nil {
		return nil, errors.Annotate(err, "Cannot parse config file")
	}

	if err = validate(conf); err != nil {
		return nil, errors.Annotate(err, "Invalid value")
	}

	return conf, nil
}

func validate(conf *Config) error {
	if conf.CacheCapacity < 0 {
		return errors.Errorf("Incorrect cache capacity %d", conf.CacheCapacity)
	}

	if conf.BatchSize < 0 {
		return errors.Errorf("Incorrect batch size %d", conf.BatchSize)
	}

	for name, dur := range map[string]time.Duration{
		"timeout":           conf.Timeout.Duration,
		"timeout_per_chunk": conf.TimeoutPerChunk.Duration,
		"timeout_total":     conf.TimeoutTotal.Duration,
	} {
		if dur < 0 {
			return errors.Errorf("Incorrect duration %s for %s", dur, name)
		}
	}

	if conf.Listen == "" {
		return errors.Errorf("Listen address cannot be empty")
	}

	return nil
}
