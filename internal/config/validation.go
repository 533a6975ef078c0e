package config

import (
	"errors"
	"fmt"
	"net/url"

	"golang.org/x/text/language"

	derrors "git.home.luguber.info/inful/postserve/internal/foundation/errors"
)

// Validate checks the settings that would otherwise fail at request time.
func (c *Config) Validate() error {
	if c.Local.Directory == "" {
		return derrors.ValidationError("local.directory must not be empty").Build()
	}
	if c.Remote.BaseURL != "" {
		if err := validateHTTPURL(c.Remote.BaseURL); err != nil {
			return derrors.ValidationError("remote.base_url must be an absolute http or https URL").
				WithCause(err).
				WithContext("url", c.Remote.BaseURL).
				Build()
		}
	}
	if c.Site.BaseURL != "" {
		if err := validateHTTPURL(c.Site.BaseURL); err != nil {
			return derrors.ValidationError("site.base_url must be an absolute http or https URL").
				WithCause(err).
				WithContext("url", c.Site.BaseURL).
				Build()
		}
	}
	if _, err := c.LanguageTag(); err != nil {
		return derrors.ValidationError("site.language is not a valid BCP 47 tag").
			WithCause(err).
			WithContext("language", c.Site.Language).
			Build()
	}
	if c.Server.Addr == "" {
		return derrors.ValidationError("server.addr must not be empty").Build()
	}
	return nil
}

// LanguageTag parses site.language. An empty value is language.Und.
func (c *Config) LanguageTag() (language.Tag, error) {
	if c.Site.Language == "" {
		return language.Und, nil
	}
	return language.Parse(c.Site.Language)
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
