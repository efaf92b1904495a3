/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"lottiegrid/internal/domain"
	applog "lottiegrid/internal/log"
	"lottiegrid/internal/lottie"
)

// ProbeFunc reads asset metadata from a path.
type ProbeFunc func(path string) (lottie.Info, error)

// AssetResult is the outcome of probing one card for one theme.
type AssetResult struct {
	Section string
	Card    string
	Theme   domain.Theme
	Path    string
	Info    lottie.Info
	Err     error
	// Warning is set when the asset loads but the loop window does not fit it.
	Warning string
}

// Report lists results in catalog order.
type Report struct {
	Results []AssetResult
}

// Failed counts results with an error.
func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// CheckOptions tunes Check. Zero values probe files with up to NumCPU workers.
type CheckOptions struct {
	Probe   ProbeFunc
	Workers int
}

// Check probes every asset variant a grid would load: both theme folders for
// themed cards, the pinned folder once for theme-independent ones.
func Check(ctx context.Context, cat domain.Catalog, root string, opts CheckOptions) (Report, error) {
	probe := opts.Probe
	if probe == nil {
		probe = lottie.ProbeFile
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	l := applog.WithOperation(applog.WithComponent("catalog"), "check")

	var rep Report
	for _, sec := range cat.Sections {
		for _, a := range sec.Animations {
			themes := []domain.Theme{domain.Dark, domain.Light}
			if a.ThemeIndependent() {
				themes = themes[:1]
			}
			for _, th := range themes {
				rep.Results = append(rep.Results, AssetResult{Section: sec.ID, Card: a.ID, Theme: th, Path: a.AssetPath(root, th)})
			}
		}
	}
	specs := map[string]domain.AnimationSpec{}
	for _, sec := range cat.Sections {
		for _, a := range sec.Animations {
			specs[a.ID] = a
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range rep.Results {
		res := &rep.Results[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			info, err := probe(res.Path)
			if err != nil {
				res.Err = err
				l.Warn("asset check failed", slog.String("path", res.Path), slog.Any("err", err))
				return nil
			}
			res.Info = info
			res.Warning = loopWarning(specs[res.Card], info)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return rep, fmt.Errorf("check catalog: %w", err)
	}
	l.Info("catalog checked", slog.Int("assets", len(rep.Results)), slog.Int("failed", rep.Failed()))
	return rep, nil
}

func loopWarning(a domain.AnimationSpec, info lottie.Info) string {
	if a.Type != domain.Loop || a.Loop == nil {
		return ""
	}
	total := int(info.TotalFrames())
	if a.Loop.End > total {
		return fmt.Sprintf("loop window [%d, %d] exceeds %d frames and will be clamped", a.Loop.Start, a.Loop.End, total)
	}
	return ""
}
