// Package config loads the delivery configuration: SMTP settings and
// the email template. The matching engine never sees any of this; it is
// consumed only by the send command.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Validation error codes (E300-E399).
const (
	ErrConfigSyntax    = "E300" // file is not valid YAML
	ErrMissingHost     = "E301"
	ErrBadPort         = "E302"
	ErrMissingFrom     = "E303"
	ErrMissingSubject  = "E304"
	ErrMissingBody     = "E305"
	ErrMissingPassword = "E306" // neither env var nor inline password yields one
)

// SMTP holds transport settings.
//
// Password resolution prefers the environment variable named by
// PasswordEnvVar; the inline Password field is a fallback for setups
// that accept keeping a secret on disk.
type SMTP struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username,omitempty"`
	PasswordEnvVar string `yaml:"password_env_var,omitempty"`
	Password       string `yaml:"password,omitempty"`
	UseTLS         *bool  `yaml:"use_tls,omitempty"`
}

// TLS reports whether STARTTLS should be used. Defaults to true when the
// field is absent.
func (s SMTP) TLS() bool {
	return s.UseTLS == nil || *s.UseTLS
}

// Email holds the message template.
type Email struct {
	FromEmail string `yaml:"from_email"`
	Subject   string `yaml:"subject"`
	Body      string `yaml:"body"`
}

// Config is the full delivery configuration.
type Config struct {
	SMTP  SMTP  `yaml:"smtp"`
	Email Email `yaml:"email"`
}

// ValidationError is one configuration rule violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Load reads and decodes a config file. Semantic checks are separate;
// call Validate on the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate returns every violation found. Password presence is not
// checked here; dry runs are allowed to proceed without one, so it is
// resolved at send time via ResolvePassword.
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(cfg.SMTP.Host) == "" {
		errs = append(errs, ValidationError{
			Field:   "smtp.host",
			Message: "host is required",
			Code:    ErrMissingHost,
		})
	}
	if cfg.SMTP.Port <= 0 || cfg.SMTP.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "smtp.port",
			Message: fmt.Sprintf("port must be in 1-65535, got %d", cfg.SMTP.Port),
			Code:    ErrBadPort,
		})
	}
	if strings.TrimSpace(cfg.Email.FromEmail) == "" {
		errs = append(errs, ValidationError{
			Field:   "email.from_email",
			Message: "from_email is required",
			Code:    ErrMissingFrom,
		})
	}
	if strings.TrimSpace(cfg.Email.Subject) == "" {
		errs = append(errs, ValidationError{
			Field:   "email.subject",
			Message: "subject is required",
			Code:    ErrMissingSubject,
		})
	}
	if strings.TrimSpace(cfg.Email.Body) == "" {
		errs = append(errs, ValidationError{
			Field:   "email.body",
			Message: "body template is required",
			Code:    ErrMissingBody,
		})
	}

	return errs
}

// ResolvePassword returns the SMTP password, preferring the configured
// environment variable over the inline field. It fails when neither
// yields a value; callers doing a dry run skip this entirely.
func (s SMTP) ResolvePassword() (string, error) {
	if s.PasswordEnvVar != "" {
		if pw := os.Getenv(s.PasswordEnvVar); pw != "" {
			return pw, nil
		}
	}
	if s.Password != "" {
		return s.Password, nil
	}
	msg := "no password available: configure password_env_var or the inline password field"
	if s.PasswordEnvVar != "" {
		msg = fmt.Sprintf("no password available: %s is unset and no inline password is configured", s.PasswordEnvVar)
	}
	return "", ValidationError{
		Field:   "smtp.password",
		Message: msg,
		Code:    ErrMissingPassword,
	}
}
