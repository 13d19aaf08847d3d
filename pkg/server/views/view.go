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

// Package views renders the HTML pages
package views

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/gorilla/csrf"
	"github.com/libris/libris/pkg/clock"
	"github.com/libris/libris/pkg/server/app"
	"github.com/libris/libris/pkg/server/assets"
	"github.com/libris/libris/pkg/server/context"
	"github.com/libris/libris/pkg/server/log"
	"github.com/pkg/errors"
)

const (
	// TemplateExt is the template extension
	TemplateExt string = ".gohtml"
)

const (
	siteTitle = "Libris"
)

// Config is a view config
type Config struct {
	Title       string
	Layout      string
	AlertInBody bool
	Clock       clock.Clock
}

func (c Config) getLayout() string {
	if c.Layout == "" {
		return "base"
	}

	return c.Layout
}

func (c Config) getTitle() string {
	if c.Title == "" {
		return siteTitle
	}

	return fmt.Sprintf("%s | %s", c.Title, siteTitle)
}

func (c Config) getClock() clock.Clock {
	if c.Clock != nil {
		return c.Clock
	}

	return clock.New()
}

// Engine builds views from the embedded templates
type Engine struct {
	fs fs.FS
}

// NewDefaultEngine returns an engine backed by the embedded templates
func NewDefaultEngine() *Engine {
	return &Engine{fs: assets.MustGetTemplateFS()}
}

// layoutFiles are the templates that every view is composed with
var layoutFiles = []string{"base", "navbar", "alert"}

// NewView builds a view from the layout and the given template files. It
// panics on a malformed template because views are constructed at startup.
func (e *Engine) NewView(a *app.App, conf Config, templateFiles ...string) *View {
	files := append([]string{}, layoutFiles...)
	files = append(files, templateFiles...)

	patterns := make([]string, 0, len(files))
	for _, f := range files {
		patterns = append(patterns, f+TemplateExt)
	}

	t := template.New(conf.getLayout()).Funcs(template.FuncMap{
		"title": func() string {
			return conf.getTitle()
		},
		"csrfField": func() (template.HTML, error) {
			return "", errors.New("csrfField is not implemented")
		},
		"timeAgo": func(t time.Time) string {
			return relativeTime(t, conf.getClock().Now())
		},
	})

	t, err := t.ParseFS(e.fs, patterns...)
	if err != nil {
		panic(errors.Wrap(err, "parsing templates"))
	}

	return &View{
		Template:    t,
		Layout:      conf.getLayout(),
		AlertInBody: conf.AlertInBody,
		App:         a,
	}
}

// View holds the information about a view
type View struct {
	Template *template.Template
	Layout   string
	// AlertInBody specifies if alert should be set in the body instead of the header
	AlertInBody bool
	App         *app.App
}

func (v *View) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	v.Render(w, r, nil, http.StatusOK)
}

// Render is used to render the view with the predefined layout
func (v *View) Render(w http.ResponseWriter, r *http.Request, data *Data, statusCode int) {
	w.Header().Set("Content-Type", "text/html")

	var vd Data
	if data != nil {
		vd = *data
	}

	if alert := getAlert(r); alert != nil {
		vd.PutAlert(*alert, v.AlertInBody)
		clearAlert(w)
	}

	vd.User = context.User(r.Context())
	vd.Session = context.Session(r.Context())

	if vd.Yield == nil {
		vd.Yield = map[string]interface{}{}
	}
	if vd.User != nil {
		vd.Yield["Email"] = vd.User.Email.String
	}
	vd.Yield["CurrentPath"] = r.URL.Path

	var buf bytes.Buffer
	csrfField := csrf.TemplateField(r)
	tpl := v.Template.Funcs(template.FuncMap{
		"csrfField": func() template.HTML {
			return csrfField
		},
	})

	if err := tpl.ExecuteTemplate(&buf, v.Layout, vd); err != nil {
		log.ErrorWrap(err, fmt.Sprintf("executing template for URI '%s'", r.RequestURI))
		w.WriteHeader(http.StatusInternalServerError)
		w.Write(v.App.HTTP500Page)
		return
	}

	w.WriteHeader(statusCode)
	io.Copy(w, &buf)
}
