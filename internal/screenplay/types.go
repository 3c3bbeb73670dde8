/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package screenplay classifies free-form Arabic screenplay text into typed
// elements. A single forward scan over the input lines drives a line
// classifier plus two multi-line aggregators (scene headers and dialogue
// blocks) and produces both a flat ordered element list and a bucketed
// per-type record from the same pass.
package screenplay

// ElementType identifies the kind of a screenplay element.
type ElementType string

const (
	ElementBasmala     ElementType = "basmala"
	ElementSceneHeader ElementType = "scene-header"
	ElementAction      ElementType = "action"
	ElementDialogue    ElementType = "dialogue"
	ElementTransition  ElementType = "transition"
)

// ScreenplayElement is one typed block of the classified document.
// Content is the newline-joined text of the block. Lines preserves the
// per-line breakdown: for dialogue blocks the character-name line comes
// first (trailing colon kept), followed by parenthetical and dialogue lines
// in their original interleaved order, so a renderer can style each line
// without re-running the scan.
type ScreenplayElement struct {
	Type    ElementType `json:"type"`
	Content string      `json:"content"`
	Lines   []string    `json:"lines"`
}

// SceneHeaderParts is the structured form of a scene header. SceneNum is the
// normalized "مشهد N" form (or "م. N" when the abbreviated form opened the
// line). TimeLocation carries the interior/exterior and time-of-day pair with
// whatever separator appeared unified to a single hyphen; it may be empty.
// Place accumulates across continuation lines, joined with " – ".
// ConsumedLines tells the caller how many raw lines to skip; it is always
// at least 1.
type SceneHeaderParts struct {
	SceneNum      string `json:"sceneNum"`
	TimeLocation  string `json:"timeLocation"`
	Place         string `json:"place"`
	ConsumedLines int    `json:"consumedLines"`
}

// DialogueBlock is the structured form of one speaker turn. CharacterName
// has the trailing colon stripped. Parentheticals and DialogueLines each
// preserve the relative order of appearance within their kind. EndIndex is
// the index of the last line absorbed into the block and is never smaller
// than StartIndex.
type DialogueBlock struct {
	CharacterName  string   `json:"characterName"`
	Parentheticals []string `json:"parentheticals"`
	DialogueLines  []string `json:"dialogueLines"`
	StartIndex     int      `json:"startIndex"`
	EndIndex       int      `json:"endIndex"`
}

// DialogueEntry is one spoken line in the rich output shape. Lang is "syc"
// for Syriac-script dialogue and "ar" for Arabic translation glosses;
// it stays empty otherwise. IsTranslation marks a parenthesized Arabic gloss
// that followed Syriac dialogue of the same speaker.
type DialogueEntry struct {
	Speaker       string `json:"speaker"`
	Text          string `json:"text"`
	Lang          string `json:"lang,omitempty"`
	IsTranslation bool   `json:"isTranslation,omitempty"`
}

// ExtractResult buckets the scan output per element kind. Characters holds
// speaker names in first-appearance order without duplicates.
type ExtractResult struct {
	Basmala        []string           `json:"basmala"`
	SceneHeaders   []SceneHeaderParts `json:"sceneHeaders"`
	Characters     []string           `json:"characters"`
	Dialogues      []DialogueEntry    `json:"dialogues"`
	Parentheticals []string           `json:"parentheticals"`
	Transitions    []string           `json:"transitions"`
	Actions        []string           `json:"actions"`
}

// Document is the result of one classification scan, carrying both output
// shapes. LineCount is the number of raw input lines, including blanks.
type Document struct {
	Elements  []ScreenplayElement `json:"elements"`
	Result    ExtractResult       `json:"result"`
	LineCount int                 `json:"lineCount"`
}
