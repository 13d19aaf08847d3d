/* Copyright 2025 Libris Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"

	"github.com/libris/libris/pkg/dirs"
	"github.com/libris/libris/pkg/server/assets"
	"github.com/pkg/errors"
)

const (
	// AppEnvProduction represents an app environment for production.
	AppEnvProduction string = "PRODUCTION"
	// DefaultDBDir is the default directory name for Libris data
	DefaultDBDir = "libris"
	// DefaultDBFilename is the default database filename
	DefaultDBFilename = "server.db"
)

var (
	// DefaultDBPath is the default path to the database file
	DefaultDBPath = filepath.Join(dirs.DataHome, DefaultDBDir, DefaultDBFilename)
)

var (
	// ErrDBMissingPath is an error for an incomplete configuration missing the database path
	ErrDBMissingPath = errors.New("DB Path is empty")
	// ErrWebURLInvalid is an error for an incomplete configuration with invalid web url
	ErrWebURLInvalid = errors.New("Invalid WebURL")
	// ErrPortInvalid is an error for an incomplete configuration with invalid port
	ErrPortInvalid = errors.New("Invalid Port")
)

// getOrEnv returns value if non-empty, otherwise env var, otherwise default
func getOrEnv(value, envKey, defaultVal string) string {
	if value != "" {
		return value
	}
	if env := os.Getenv(envKey); env != "" {
		return env
	}
	return defaultVal
}

// Config is an application configuration
type Config struct {
	AppEnv            string
	WebURL            string
	Port              string
	DBPath            string
	AssetBaseURL      string
	HTTP500Page       []byte
	LogLevel          string
	CSRFAuthKey       string
	GoogleClientID    string
	GoogleSecret      string
	FacebookAppID     string
	FacebookAppSecret string
}

// Params are the configuration parameters for creating a new Config
type Params struct {
	AppEnv              string
	Port                string
	WebURL              string
	DBPath              string
	LogLevel            string
	GoogleSecretsPath   string
	FacebookSecretsPath string
}

// New constructs and returns a new validated config.
// Empty string params will fall back to environment variables and defaults.
func New(p Params) (Config, error) {
	c := Config{
		AppEnv:       getOrEnv(p.AppEnv, "APP_ENV", AppEnvProduction),
		Port:         getOrEnv(p.Port, "PORT", "3001"),
		WebURL:       getOrEnv(p.WebURL, "WebURL", "http://localhost:3001"),
		DBPath:       getOrEnv(p.DBPath, "DBPath", DefaultDBPath),
		LogLevel:     getOrEnv(p.LogLevel, "LOG_LEVEL", "info"),
		CSRFAuthKey:  os.Getenv("CSRFAuthKey"),
		AssetBaseURL: "/static",
		HTTP500Page:  assets.MustGetHTTP500ErrorPage(),
	}

	googleSecretsPath := getOrEnv(p.GoogleSecretsPath, "GoogleSecrets", "")
	if googleSecretsPath != "" {
		id, secret, err := loadWebSecrets(googleSecretsPath, "client_id", "client_secret")
		if err != nil {
			return Config{}, errors.Wrap(err, "loading google secrets")
		}

		c.GoogleClientID = id
		c.GoogleSecret = secret
	}

	facebookSecretsPath := getOrEnv(p.FacebookSecretsPath, "FacebookSecrets", "")
	if facebookSecretsPath != "" {
		id, secret, err := loadWebSecrets(facebookSecretsPath, "app_id", "app_secret")
		if err != nil {
			return Config{}, errors.Wrap(err, "loading facebook secrets")
		}

		c.FacebookAppID = id
		c.FacebookAppSecret = secret
	}

	if err := validate(c); err != nil {
		return Config{}, err
	}

	return c, nil
}

// loadWebSecrets reads a provider credential file of the form
// {"web": {<idKey>: ..., <secretKey>: ...}} and returns the two values.
func loadWebSecrets(path, idKey, secretKey string) (string, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", errors.Wrapf(err, "reading %s", path)
	}

	var payload struct {
		Web map[string]string `json:"web"`
	}
	if err := json.Unmarshal(b, &payload); err != nil {
		return "", "", errors.Wrapf(err, "parsing %s", path)
	}

	id := payload.Web[idKey]
	secret := payload.Web[secretKey]
	if id == "" || secret == "" {
		return "", "", errors.Errorf("%s is missing %s or %s", path, idKey, secretKey)
	}

	return id, secret, nil
}

// IsProd checks if the app environment is configured to be production.
func (c Config) IsProd() bool {
	return c.AppEnv == AppEnvProduction
}

func validate(c Config) error {
	if _, err := url.ParseRequestURI(c.WebURL); err != nil {
		return errors.Wrapf(ErrWebURLInvalid, "'%s'", c.WebURL)
	}
	if c.Port == "" {
		return ErrPortInvalid
	}

	if c.DBPath == "" {
		return ErrDBMissingPath
	}

	return nil
}
