package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
)

var sourceKinds = []string{SourceFixture, SourceFile, SourceHTTP}

// Validate checks that the configuration is usable. Every problem is
// reported as a criterio.FieldErrors entry keyed by its YAML path.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		c.validateSource(),
		c.validatePaging(),
		c.validateImages(),
		criterio.Run("log.level", c.Log.Level, validLogLevel),
		criterio.Run("data_dir", c.DataDir, notEmpty),
	)
}

func (c *Config) validateSource() error {
	var errs criterio.FieldErrorsBuilder
	s := c.Source

	if !slices.Contains(sourceKinds, s.Kind) {
		errs = errs.Append("source.kind", fmt.Errorf("must be one of %v, got %q", sourceKinds, s.Kind))
	}
	switch s.Kind {
	case SourceFile:
		if s.Path == "" {
			errs = errs.Append("source.path", errors.New("required when source.kind is file"))
		}
	case SourceHTTP:
		if err := httpURL(s.URL); err != nil {
			errs = errs.Append("source.url", err)
		}
	}
	if s.LatencyMin < 0 {
		errs = errs.Append("source.latency_min", errors.New("cannot be negative"))
	}
	if s.LatencyMax < s.LatencyMin {
		errs = errs.Append("source.latency_max", fmt.Errorf("must be at least latency_min (%s)", s.LatencyMin))
	}
	return errs.ToError()
}

func (c *Config) validatePaging() error {
	var errs criterio.FieldErrorsBuilder
	if c.Paging.Limit < 1 || c.Paging.Limit > MaxPageLimit {
		errs = errs.Append("paging.limit", fmt.Errorf("must be between 1 and %d", MaxPageLimit))
	}
	if c.Paging.ScreensAhead <= 0 {
		errs = errs.Append("paging.screens_ahead", errors.New("must be positive"))
	}
	return errs.ToError()
}

func (c *Config) validateImages() error {
	var errs criterio.FieldErrorsBuilder
	if c.Images.CacheSize < 1 {
		errs = errs.Append("images.cache_size", errors.New("must be at least 1"))
	}
	if c.Images.Timeout <= 0 {
		errs = errs.Append("images.timeout", errors.New("must be positive"))
	}
	return errs.ToError()
}

func httpURL(raw string) error {
	if raw == "" {
		return errors.New("required when source.kind is http")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return fmt.Errorf("must be an absolute URL, got %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	return nil
}

func validLogLevel(level string) error {
	if _, err := zerolog.ParseLevel(level); err != nil {
		return fmt.Errorf("unknown level %q", level)
	}
	return nil
}

func notEmpty(s string) error {
	if s == "" {
		return errors.New("cannot be empty")
	}
	return nil
}
