//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"lottiegrid/internal/config"
	"lottiegrid/internal/domain"
	"lottiegrid/internal/driver"
	applog "lottiegrid/internal/log"
	"lottiegrid/internal/version"
)

// Run starts the Fyne desktop grid for the catalog and blocks until the
// window is closed.
func Run(cfg config.AppConfig, cat domain.Catalog) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.Int("sections", len(cat.Sections)), slog.Int("cards", cat.Count()))

	fyneApp := app.NewWithID("lottiegrid")
	w := fyneApp.NewWindow("LottieGrid " + version.Version)
	// Restore window size from preferences (with sane minimums)
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1100)
	winH := prefs.IntWithFallback("window.height", 800)
	if winW < 640 {
		winW = 640
	}
	if winH < 480 {
		winH = 480
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel(fmt.Sprintf("%d animations", cat.Count()))
	g := newGrid(cfg, cat, driver.HostFunc(fyne.Do), func(err error) {
		status.SetText(err.Error())
	})

	w.SetContent(container.NewBorder(nil, status, nil, nil, container.NewVScroll(g.content)))
	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		g.close()
		l.Info("UI closed")
	})
	w.ShowAndRun()
	return nil
}
