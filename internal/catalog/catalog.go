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
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"lottiegrid/internal/domain"
	applog "lottiegrid/internal/log"
)

//go:embed catalog.schema.json
var schemaJSON []byte

// ErrInvalidCatalog is wrapped by every error caused by the catalog content.
var ErrInvalidCatalog = errors.New("invalid catalog")

// fileCatalog mirrors the on-disk layout. JSON catalogs parse through the same
// YAML decoder.
type fileCatalog struct {
	Sections []fileSection `yaml:"sections"`
}

type fileSection struct {
	ID          string          `yaml:"id,omitempty"`
	Title       string          `yaml:"title"`
	Description string          `yaml:"description,omitempty"`
	Animations  []fileAnimation `yaml:"animations"`
}

type fileAnimation struct {
	ID            string `yaml:"id,omitempty"`
	FileName      string `yaml:"fileName"`
	DisplayName   string `yaml:"displayName,omitempty"`
	AnimationType string `yaml:"animationType,omitempty"`
	LoopFrames    []int  `yaml:"loopFrames,omitempty,flow"`
	Feedback      string `yaml:"feedback,omitempty"`
	Folder        string `yaml:"folder,omitempty"`
	BgColor       string `yaml:"bgColor,omitempty"`
	IsWide        bool   `yaml:"isWide,omitempty"`
}

// Load reads and validates a catalog file (YAML or JSON).
func Load(path string) (domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	applog.WithComponent("catalog").Debug("catalog loaded",
		"path", path, "sections", len(cat.Sections), "cards", cat.Count())
	return cat, nil
}

// Parse validates data against the catalog schema and converts it.
func Parse(data []byte) (domain.Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.Catalog{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if raw == nil {
		return domain.Catalog{}, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
	}
	if err := validateSchema(raw); err != nil {
		return domain.Catalog{}, err
	}
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return domain.Catalog{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return fc.toDomain()
}

func validateSchema(doc any) error {
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(msgs, "; "))
}

func (fc fileCatalog) toDomain() (domain.Catalog, error) {
	var cat domain.Catalog
	seen := map[string]bool{}
	for _, fs := range fc.Sections {
		sec := domain.Section{ID: fs.ID, Title: fs.Title, Description: fs.Description}
		if sec.ID == "" {
			sec.ID = domain.Slug(fs.Title) + "-section"
		}
		for _, fa := range fs.Animations {
			a, err := fa.toDomain()
			if err != nil {
				return domain.Catalog{}, fmt.Errorf("%w: section %q: %v", ErrInvalidCatalog, fs.Title, err)
			}
			if seen[a.ID] {
				return domain.Catalog{}, fmt.Errorf("%w: duplicate animation id %q", ErrInvalidCatalog, a.ID)
			}
			seen[a.ID] = true
			sec.Animations = append(sec.Animations, a)
		}
		cat.Sections = append(cat.Sections, sec)
	}
	return cat, nil
}

func (fa fileAnimation) toDomain() (domain.AnimationSpec, error) {
	typ, err := domain.ParseAnimationType(fa.AnimationType)
	if err != nil {
		return domain.AnimationSpec{}, err
	}
	a := domain.AnimationSpec{
		ID:          fa.ID,
		FileName:    fa.FileName,
		DisplayName: fa.DisplayName,
		Type:        typ,
		Folder:      fa.Folder,
		Feedback:    fa.Feedback,
		Background:  fa.BgColor,
		Wide:        fa.IsWide,
	}
	if len(fa.LoopFrames) == 2 {
		a.Loop = &domain.LoopFrames{Start: fa.LoopFrames[0], End: fa.LoopFrames[1]}
	}
	if a.ID == "" {
		a.ID = domain.Slug(a.Title())
	}
	if err := a.Validate(); err != nil {
		return domain.AnimationSpec{}, err
	}
	return a, nil
}

// Marshal writes cat in the catalog file layout.
func Marshal(cat domain.Catalog) ([]byte, error) {
	var fc fileCatalog
	for _, s := range cat.Sections {
		fs := fileSection{ID: s.ID, Title: s.Title, Description: s.Description}
		for _, a := range s.Animations {
			fa := fileAnimation{
				ID:          a.ID,
				FileName:    a.FileName,
				DisplayName: a.DisplayName,
				Feedback:    a.Feedback,
				Folder:      a.Folder,
				BgColor:     a.Background,
				IsWide:      a.Wide,
			}
			if a.Type != domain.Loop {
				fa.AnimationType = a.Type.String()
			}
			if a.Loop != nil {
				fa.LoopFrames = []int{a.Loop.Start, a.Loop.End}
			}
			fs.Animations = append(fs.Animations, fa)
		}
		fc.Sections = append(fc.Sections, fs)
	}
	return yaml.Marshal(fc)
}
