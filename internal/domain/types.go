/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package domain holds the animation catalog model: sections of animation
// specs, their playback policy and the theme-dependent asset path convention.
package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// AnimationType selects the playback policy of a card. The zero value is Loop,
// which is what catalog entries without an explicit type get.
type AnimationType int

const (
	Loop AnimationType = iota
	PlayOnce
	PlayAndHold
)

func (t AnimationType) String() string {
	switch t {
	case Loop:
		return "loop"
	case PlayOnce:
		return "playOnce"
	case PlayAndHold:
		return "playAndHold"
	default:
		return fmt.Sprintf("AnimationType(%d)", int(t))
	}
}

// ParseAnimationType accepts the catalog spellings (case-insensitive). Empty means Loop.
func ParseAnimationType(s string) (AnimationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "loop":
		return Loop, nil
	case "playonce":
		return PlayOnce, nil
	case "playandhold":
		return PlayAndHold, nil
	}
	return Loop, fmt.Errorf("unknown animation type %q", s)
}

// Theme is the light/dark variant a card shows.
type Theme int

const (
	Dark Theme = iota
	Light
)

func (t Theme) String() string {
	if t == Light {
		return "light"
	}
	return "dark"
}

// Folder is the asset folder holding the variant designed for this theme:
// light backgrounds use the white artwork.
func (t Theme) Folder() string {
	if t == Light {
		return "White"
	}
	return "Black"
}

// ThemeFromLight maps a toggle state to a Theme.
func ThemeFromLight(light bool) Theme {
	if light {
		return Light
	}
	return Dark
}

// LoopFrames is the [Start, End] frame window a loop card cycles through while hovered.
// Frames before Start are the intro, frames after End the outro.
type LoopFrames struct {
	Start int
	End   int
}

// Degenerate reports whether the window is empty, which leaves the whole
// animation to the outro.
func (b LoopFrames) Degenerate() bool { return b.End <= b.Start }

// Clamp fits the window into [0, total] keeping Start <= End.
func (b LoopFrames) Clamp(total int) LoopFrames {
	if total < 0 {
		total = 0
	}
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > total {
			return total
		}
		return v
	}
	out := LoopFrames{Start: clamp(b.Start), End: clamp(b.End)}
	if out.End < out.Start {
		out.End = out.Start
	}
	return out
}

// AnimationSpec describes one card of the grid. It is immutable once loaded.
type AnimationSpec struct {
	ID          string
	FileName    string
	DisplayName string
	Type        AnimationType
	// Loop is only meaningful for Loop cards; nil means (0, 0).
	Loop *LoopFrames
	// Folder pins the asset to one folder regardless of theme; empty means themed.
	Folder     string
	Feedback   string
	Background string // CSS-style hex color for theme-independent cards, e.g. "#EFEAFE"
	Wide       bool
}

// Title is the display name, or the file name without its .lottie/.json extension.
func (s AnimationSpec) Title() string {
	if t := strings.TrimSpace(s.DisplayName); t != "" {
		return t
	}
	name := s.FileName
	for _, ext := range []string{".lottie", ".json"} {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

// ThemeIndependent reports whether the asset ignores the theme toggle.
func (s AnimationSpec) ThemeIndependent() bool { return strings.TrimSpace(s.Folder) != "" }

// AssetPath resolves the asset file for a theme: {root}/{Black|White}/{file}, or
// {root}/{folder}/{file} for theme-independent animations.
func (s AnimationSpec) AssetPath(root string, t Theme) string {
	folder := t.Folder()
	if s.ThemeIndependent() {
		folder = strings.TrimSpace(s.Folder)
	}
	return filepath.Join(root, folder, s.FileName)
}

// LoopBounds returns the configured loop window, or the zero window when the card
// is not a loop card or has none.
func (s AnimationSpec) LoopBounds() LoopFrames {
	if s.Type != Loop || s.Loop == nil {
		return LoopFrames{}
	}
	return *s.Loop
}

// Validate checks the invariants that do not need the loaded asset.
func (s AnimationSpec) Validate() error {
	if strings.TrimSpace(s.FileName) == "" {
		return errors.New("file name is required")
	}
	if s.Loop != nil {
		if s.Type != Loop {
			return fmt.Errorf("%s: loop frames set on a %s animation", s.FileName, s.Type)
		}
		if s.Loop.Start < 0 || s.Loop.End < s.Loop.Start {
			return fmt.Errorf("%s: loop frames [%d, %d] out of order", s.FileName, s.Loop.Start, s.Loop.End)
		}
	}
	return nil
}

// Section groups cards under a heading.
type Section struct {
	ID          string
	Title       string
	Description string
	Animations  []AnimationSpec
}

// Catalog is the ordered list of sections shown by the grid.
type Catalog struct {
	Sections []Section
}

// Count returns the number of cards across all sections.
func (c Catalog) Count() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Animations)
	}
	return n
}

// Slug lowercases s and replaces runs of non-alphanumerics with a single dash.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
