/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lottiegrid/internal/domain"
)

// PresetName represents a named sheet preset.
type PresetName string

const (
	PresetScreen PresetName = "screen"
	PresetPrint  PresetName = "print"
)

// PresetOptions returns the options of a preset. Screen sheets use the dark
// palette; print sheets are light with guide ticks.
func PresetOptions(p PresetName) (Options, error) {
	switch PresetName(strings.ToLower(string(p))) {
	case "", PresetScreen:
		return Options{Theme: domain.Dark}, nil
	case PresetPrint:
		return Options{Theme: domain.Light, Guides: true}, nil
	}
	return Options{}, fmt.Errorf("unknown preset: %s", p)
}

// WriteFile renders the sheet in the format named by the path extension
// (.png, .pdf or .svg), creating the parent directory when needed.
func WriteFile(path string, s Sheet) error {
	var buf bytes.Buffer
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		err = WritePNG(&buf, s)
	case ".pdf":
		err = WritePDF(&buf, s)
	case ".svg":
		err = WriteSVG(&buf, s)
	default:
		return fmt.Errorf("unknown format: %q", ext)
	}
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure out dir: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write sheet: %w", err)
	}
	return nil
}
