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

import "lottiegrid/internal/domain"

// Default is the built-in catalog used when no catalog file is configured.
// The In-Out symbols hold inside a loop window; the other loop cards have none
// and restart from the top while hovered.
func Default() domain.Catalog {
	return domain.Catalog{Sections: []domain.Section{
		{
			ID:    "logotype-section",
			Title: "Logotype",
			Animations: []domain.AnimationSpec{
				{ID: "logotype-intro", FileName: "Logotype Intro.lottie", Type: domain.PlayAndHold, Feedback: "Freezes on end"},
				{ID: "logotype-idle", FileName: "Logotype Idle.lottie", Type: domain.Loop, Feedback: "Continuous idle loop"},
			},
		},
		{
			ID:    "symbol-section",
			Title: "Symbol",
			Animations: []domain.AnimationSpec{
				{ID: "symbol-idle", FileName: "Symbol Idle.lottie", Type: domain.Loop, Feedback: "Floating/Idle state"},
				{
					ID: "symbol-in-out-long", FileName: "Symbol In-Out Long.lottie", DisplayName: "Symbol In-Out (Long)",
					Type: domain.Loop, Loop: &domain.LoopFrames{Start: 30, End: 90}, Feedback: "Long duration hold",
				},
				{
					ID: "symbol-in-out-short", FileName: "Symbol In-Out Short.lottie", DisplayName: "Symbol In-Out (Short)",
					Type: domain.Loop, Loop: &domain.LoopFrames{Start: 15, End: 45}, Feedback: "Quick interaction",
				},
			},
		},
		{
			ID:    "slides-section",
			Title: "Slides & Unique",
			Animations: []domain.AnimationSpec{
				{ID: "slide-gradients", FileName: "Slide_Gradients.lottie", Folder: "Unique", Feedback: "Continuous Loop"},
				{ID: "slide-squares", FileName: "Slide_Squares.lottie", Folder: "Unique", Feedback: "Continuous Loop"},
				{ID: "slide-stroke", FileName: "Slide_Stroke.lottie", Folder: "Unique", Feedback: "Continuous Loop"},
			},
		},
	}}
}
