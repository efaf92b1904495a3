/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package lottie

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{"v":"5.7.4","nm":"Symbol Idle","fr":60,"ip":0,"op":120,"w":512,"h":512,"layers":[]}`

func TestParse(t *testing.T) {
	info, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	assert.Equal(t, "Symbol Idle", info.Name)
	assert.Equal(t, 60.0, info.FrameRate)
	assert.Equal(t, 120.0, info.TotalFrames())
	assert.Equal(t, 512, info.Width)
}

func TestParseRejectsBadDocuments(t *testing.T) {
	for name, doc := range map[string]string{
		"not json":   `{"fr":`,
		"missing op": `{"fr":30,"ip":0}`,
		"reversed":   `{"fr":30,"ip":50,"op":10}`,
	} {
		_, err := Parse([]byte(doc))
		assert.ErrorIsf(t, err, ErrInvalidAsset, "case %s", name)
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteArchive(&buf, "symbol_idle", []byte(sampleDoc)))

	info, err := ProbeArchive(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 120.0, info.TotalFrames())
}

func TestArchiveWithoutManifestUsesFirstAnimation(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	fw, err := zw.Create("animations/a.json")
	require.NoError(t, err)
	_, err = fw.Write([]byte(`{"fr":24,"ip":10,"op":58}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	info, err := ProbeArchive(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 48.0, info.TotalFrames())
}

// zipEntries builds an archive holding the given name/content pairs.
func zipEntries(t *testing.T, entries ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i := 0; i+1 < len(entries); i += 2 {
		fw, err := zw.Create(entries[i])
		require.NoError(t, err)
		_, err = fw.Write([]byte(entries[i+1]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestArchiveVersion2Layout(t *testing.T) {
	data := zipEntries(t,
		"manifest.json", `{"version":"2","animations":[{"id":"intro"}]}`,
		"a/intro.json", `{"fr":30,"ip":0,"op":120}`,
	)
	info, err := ProbeArchive(data)
	require.NoError(t, err)
	assert.Equal(t, 120.0, info.TotalFrames())

	info, err = ProbeArchive(zipEntries(t, "a/loop.json", `{"fr":30,"ip":0,"op":45}`))
	require.NoError(t, err)
	assert.Equal(t, 45.0, info.TotalFrames())
}

func TestArchiveErrorsKeepCause(t *testing.T) {
	_, err := ProbeArchive([]byte("definitely not a zip"))
	assert.ErrorIs(t, err, ErrInvalidAsset)
	assert.ErrorIs(t, err, zip.ErrFormat)
}

func TestArchiveErrors(t *testing.T) {
	_, err := ProbeArchive([]byte("definitely not a zip"))
	assert.ErrorIs(t, err, ErrInvalidAsset)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	fw, _ := zw.Create("manifest.json")
	_, _ = fw.Write([]byte(`{"animations":[{"id":"ghost"}]}`))
	require.NoError(t, zw.Close())
	_, err = ProbeArchive(buf.Bytes())
	assert.ErrorIs(t, err, ErrInvalidAsset)
}

func TestProbeFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleDoc), 0o644))
	info, err := ProbeFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 60.0, info.FrameRate)

	var buf bytes.Buffer
	require.NoError(t, WriteArchive(&buf, "a", []byte(sampleDoc)))
	lottiePath := filepath.Join(dir, "a.lottie")
	require.NoError(t, os.WriteFile(lottiePath, buf.Bytes(), 0o644))
	info, err = ProbeFile(lottiePath)
	require.NoError(t, err)
	assert.Equal(t, 120.0, info.TotalFrames())

	_, err = ProbeFile(filepath.Join(dir, "missing.lottie"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
