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

package cmd

import (
	"fmt"
	"net/http"

	"github.com/libris/libris/pkg/server/buildinfo"
	"github.com/libris/libris/pkg/server/config"
	"github.com/libris/libris/pkg/server/controllers"
	"github.com/libris/libris/pkg/server/log"
	"github.com/pkg/errors"
	"github.com/robfig/cron"
	"github.com/spf13/cobra"
)

func newStartCmd() *cobra.Command {
	var port string
	var webURL string
	var dbPath string
	var logLevel string
	var googleSecrets string
	var facebookSecrets string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New(config.Params{
				Port:                port,
				WebURL:              webURL,
				DBPath:              dbPath,
				LogLevel:            logLevel,
				GoogleSecretsPath:   googleSecrets,
				FacebookSecretsPath: facebookSecrets,
			})
			if err != nil {
				return errors.Wrap(err, "loading config")
			}

			log.SetLevel(cfg.LogLevel)

			a := initApp(cfg)
			defer func() {
				sqlDB, err := a.DB.DB()
				if err == nil {
					sqlDB.Close()
				}
			}()

			// Prune expired sessions periodically
			c := cron.New()
			c.AddFunc("@hourly", func() {
				if err := a.DeleteExpiredSessions(); err != nil {
					log.ErrorWrap(err, "deleting expired sessions")
				}
			})
			c.Start()
			defer c.Stop()

			ctl := controllers.New(&a)
			rc := controllers.RouteConfig{
				WebRoutes:   controllers.NewWebRoutes(&a, ctl),
				APIRoutes:   controllers.NewAPIRoutes(&a, ctl),
				Controllers: ctl,
			}

			r, err := controllers.NewRouter(&a, rc)
			if err != nil {
				return errors.Wrap(err, "initializing router")
			}

			log.WithFields(log.Fields{
				"version": buildinfo.Version,
				"port":    cfg.Port,
			}).Info("Libris server starting")

			return http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r)
		},
	}

	f := cmd.Flags()
	f.StringVar(&port, "port", "", "Server port (env: PORT, default: 3001)")
	f.StringVar(&webURL, "webUrl", "", "Full URL to server without trailing slash (env: WebURL, default: http://localhost:3001)")
	f.StringVar(&dbPath, "dbPath", "", "Path to SQLite database file (env: DBPath, default: $XDG_DATA_HOME/libris/server.db)")
	f.StringVar(&logLevel, "logLevel", "", "Log level: debug, info, warn, or error (env: LOG_LEVEL, default: info)")
	f.StringVar(&googleSecrets, "googleSecrets", "", "Path to Google client secrets JSON file (env: GoogleSecrets)")
	f.StringVar(&facebookSecrets, "facebookSecrets", "", "Path to Facebook app secrets JSON file (env: FacebookSecrets)")

	return cmd
}
