// Package auth provides board service credential management.
// It implements a simple interface with multiple providers following the
// "deep modules" principle - simple interface, complex implementation hidden.
package auth

import (
	"errors"
	"fmt"
	"os"

	"github.com/h0rv/dayroll/internal/config"
)

// Credentials is the API key/token pair the board service authenticates with.
type Credentials struct {
	Key   string
	Token string
}

// Provider defines the interface for obtaining board service credentials.
// Implementations may use different sources (environment, config file, etc).
type Provider interface {
	Credentials() (Credentials, error)
}

// EnvProvider obtains credentials from the TRELLO_KEY and TRELLO_TOKEN
// environment variables. This is the preferred method.
type EnvProvider struct{}

// Credentials reads TRELLO_KEY and TRELLO_TOKEN.
// Returns an error unless both are set and non-empty.
func (e *EnvProvider) Credentials() (Credentials, error) {
	key := os.Getenv("TRELLO_KEY")
	token := os.Getenv("TRELLO_TOKEN")
	if key == "" || token == "" {
		return Credentials{}, errors.New("TRELLO_KEY and TRELLO_TOKEN environment variables not both set")
	}
	return Credentials{Key: key, Token: token}, nil
}

// FileProvider obtains credentials from the dayroll config file.
// This is the fallback method when the environment variables are not set.
type FileProvider struct {
	Path string
}

// Credentials reads the key/token pair from the config file at Path.
func (f *FileProvider) Credentials() (Credentials, error) {
	cfg, err := config.Load(f.Path)
	if err != nil {
		return Credentials{}, err
	}
	if cfg.Key == "" || cfg.Token == "" {
		return Credentials{}, fmt.Errorf("config file %s does not contain both key and token", f.Path)
	}
	return Credentials{Key: cfg.Key, Token: cfg.Token}, nil
}

// Resolve attempts to obtain credentials using the following strategy:
// 1. Environment variables (preferred)
// 2. The config file at configPath
// 3. Return a clear, actionable error if both fail
//
// This is the main entry point for credential retrieval in the application.
func Resolve(configPath string) (Credentials, error) {
	env := &EnvProvider{}
	creds, err := env.Credentials()
	if err == nil {
		return creds, nil
	}

	envErr := err

	file := &FileProvider{Path: configPath}
	creds, err = file.Credentials()
	if err == nil {
		return creds, nil
	}

	return Credentials{}, fmt.Errorf(
		"failed to obtain board service credentials: environment (%v) and config file (%v).\n"+
			"Please either:\n"+
			"  1. Set the TRELLO_KEY and TRELLO_TOKEN environment variables, or\n"+
			"  2. Add key and token entries to %s",
		envErr, err, configPath,
	)
}
