/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package playback

import "fmt"

// AssetLoadError reports an asset that could not be loaded for a card.
type AssetLoadError struct {
	Card string
	Path string
	Err  error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("card %s: load %s: %v", e.Card, e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error { return e.Err }
