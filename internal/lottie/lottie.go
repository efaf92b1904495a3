/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package lottie reads playback metadata (frame rate, in/out points, size) from
// Lottie JSON documents and dotLottie archives. It does not decode or render
// animation content.
package lottie

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrInvalidAsset is wrapped by every error caused by the asset content itself.
var ErrInvalidAsset = errors.New("invalid lottie asset")

// maxDocumentSize bounds how much of one animation document is read.
const maxDocumentSize = 64 << 20

// Info is the subset of a Lottie document the playback driver needs.
type Info struct {
	Name      string
	FrameRate float64
	InPoint   float64
	OutPoint  float64
	Width     int
	Height    int
}

// TotalFrames is the number of frames between the in and out points.
func (i Info) TotalFrames() float64 {
	if n := i.OutPoint - i.InPoint; n > 0 {
		return n
	}
	return 0
}

// ProbeFile reads metadata from a .json Lottie document or a .lottie archive.
func ProbeFile(p string) (Info, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Info{}, fmt.Errorf("read asset %s: %w", filepath.Base(p), err)
	}
	if strings.EqualFold(filepath.Ext(p), ".json") {
		return Parse(data)
	}
	return ProbeArchive(data)
}

// Parse reads metadata from a Lottie JSON document.
func Parse(doc []byte) (Info, error) {
	if !gjson.ValidBytes(doc) {
		return Info{}, fmt.Errorf("%w: not a JSON document", ErrInvalidAsset)
	}
	res := gjson.GetManyBytes(doc, "nm", "fr", "ip", "op", "w", "h")
	if !res[3].Exists() {
		return Info{}, fmt.Errorf("%w: missing out point (op)", ErrInvalidAsset)
	}
	info := Info{
		Name:      res[0].String(),
		FrameRate: res[1].Float(),
		InPoint:   res[2].Float(),
		OutPoint:  res[3].Float(),
		Width:     int(res[4].Int()),
		Height:    int(res[5].Int()),
	}
	if info.OutPoint < info.InPoint {
		return Info{}, fmt.Errorf("%w: out point %.2f before in point %.2f", ErrInvalidAsset, info.OutPoint, info.InPoint)
	}
	return info, nil
}

// animationDirs are the archive folders holding animation documents:
// dotLottie 1.x uses animations/, 2.x uses a/.
var animationDirs = []string{"animations", "a"}

// ProbeArchive reads the first animation listed in a dotLottie archive's manifest.
// Archives without a manifest fall back to the first JSON entry of an animation folder.
func ProbeArchive(data []byte) (Info, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Info{}, fmt.Errorf("%w: open archive: %w", ErrInvalidAsset, err)
	}
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[path.Clean(f.Name)] = f
	}

	var entry *zip.File
	if mf, ok := files["manifest.json"]; ok {
		manifest, err := readEntry(mf)
		if err != nil {
			return Info{}, err
		}
		if id := gjson.GetBytes(manifest, "animations.0.id").String(); id != "" {
			for _, dir := range animationDirs {
				if entry = files[path.Join(dir, id+".json")]; entry != nil {
					break
				}
			}
			if entry == nil {
				return Info{}, fmt.Errorf("%w: manifest names animation %q but archive has no %s.json", ErrInvalidAsset, id, id)
			}
		}
	}
	if entry == nil {
		entry = firstAnimation(zr.File)
	}
	if entry == nil {
		return Info{}, fmt.Errorf("%w: archive holds no animation", ErrInvalidAsset)
	}
	doc, err := readEntry(entry)
	if err != nil {
		return Info{}, err
	}
	return Parse(doc)
}

func firstAnimation(files []*zip.File) *zip.File {
	for _, dir := range animationDirs {
		for _, f := range files {
			if path.Dir(path.Clean(f.Name)) == dir && strings.HasSuffix(f.Name, ".json") {
				return f
			}
		}
	}
	return nil
}

func readEntry(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > maxDocumentSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrInvalidAsset, f.Name, maxDocumentSize)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrInvalidAsset, f.Name, err)
	}
	defer func() { _ = rc.Close() }()
	b, err := io.ReadAll(io.LimitReader(rc, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrInvalidAsset, f.Name, err)
	}
	return b, nil
}

// WriteArchive packs a Lottie JSON document into a minimal dotLottie archive
// under the given animation id.
func WriteArchive(w io.Writer, id string, doc []byte) error {
	zw := zip.NewWriter(w)
	manifest := fmt.Sprintf(`{"version":"1","generator":"lottiegrid","animations":[{"id":%q}]}`, id)
	for _, e := range []struct {
		name string
		data []byte
	}{
		{"manifest.json", []byte(manifest)},
		{path.Join("animations", id+".json"), doc},
	} {
		fw, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("add %s: %w", e.name, err)
		}
		if _, err := fw.Write(e.data); err != nil {
			return fmt.Errorf("write %s: %w", e.name, err)
		}
	}
	return zw.Close()
}
