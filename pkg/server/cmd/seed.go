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
	"os"

	"github.com/fatih/color"
	"github.com/libris/libris/pkg/server/config"
	"github.com/libris/libris/pkg/server/database"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var dbPath string
	var seedFile string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database from a seed file",
		Long: `Populate the database with genres and sample data from a YAML seed file.

Genres are reference data and must be seeded before books can be catalogued.
Seeding is idempotent: running it again with the same file makes no changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New(config.Params{DBPath: dbPath})
			if err != nil {
				return errors.Wrap(err, "loading config")
			}

			f, err := os.Open(seedFile)
			if err != nil {
				return errors.Wrapf(err, "opening seed file %s", seedFile)
			}
			defer f.Close()

			data, err := database.ParseSeed(f)
			if err != nil {
				return errors.Wrap(err, "parsing seed file")
			}

			db := initDB(cfg.DBPath)
			defer func() {
				sqlDB, err := db.DB()
				if err == nil {
					sqlDB.Close()
				}
			}()

			if err := database.Seed(db, data); err != nil {
				return errors.Wrap(err, "seeding database")
			}

			green := color.New(color.FgGreen)
			green.Printf("seeded")
			fmt.Printf(" %d genres, %d users, %d libraries from %s\n",
				len(data.Genres), len(data.Users), len(data.Libraries), seedFile)

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&dbPath, "dbPath", "", "Path to SQLite database file (env: DBPath, default: $XDG_DATA_HOME/libris/server.db)")
	f.StringVar(&seedFile, "file", "seed.yml", "Path to the seed file")

	return cmd
}
