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
	"github.com/libris/libris/pkg/clock"
	"github.com/libris/libris/pkg/server/app"
	"github.com/libris/libris/pkg/server/config"
	"github.com/libris/libris/pkg/server/database"
	"github.com/libris/libris/pkg/server/oauth"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func initDB(dbPath string) *gorm.DB {
	db := database.Open(dbPath)
	database.InitSchema(db)
	if err := database.Migrate(db); err != nil {
		panic(errors.Wrap(err, "running migrations"))
	}

	return db
}

func initApp(cfg config.Config) app.App {
	db := initDB(cfg.DBPath)

	return app.App{
		DB:           db,
		Clock:        clock.New(),
		Google:       oauth.NewGoogle(cfg.GoogleClientID, cfg.GoogleSecret),
		Facebook:     oauth.NewFacebook(cfg.FacebookAppID, cfg.FacebookAppSecret),
		HTTP500Page:  cfg.HTTP500Page,
		WebURL:       cfg.WebURL,
		CSRFAuthKey:  cfg.CSRFAuthKey,
		Port:         cfg.Port,
		DBPath:       cfg.DBPath,
		AssetBaseURL: cfg.AssetBaseURL,
	}
}
