/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

import (
	"strings"
	"unicode/utf8"

	"github.com/sinsweatpants/ara-scriptease/internal/arabic"
)

// maxParentheticalRunes is the length cap of the stage-direction filter.
const maxParentheticalRunes = 45

// Classify splits text into lines and drives a single forward scan over
// them, producing the flat element sequence and the bucketed result from
// the same pass. Empty input yields an empty document; whitespace-only
// input yields no elements but a positive LineCount, which downstream
// pagination turns into one blank placeholder block.
func Classify(text string) Document {
	if text == "" {
		return Document{}
	}
	lines := strings.Split(text, "\n")
	doc := Document{LineCount: len(lines)}

	seenCharacter := make(map[string]bool)
	addCharacter := func(name string) {
		if name == "" || seenCharacter[name] {
			return
		}
		seenCharacter[name] = true
		doc.Result.Characters = append(doc.Result.Characters, name)
	}

	i := 0
	for i < len(lines) {
		ln := arabic.Normalize(lines[i])
		if ln == "" {
			i++
			continue
		}

		if IsBasmala(ln) {
			doc.Elements = append(doc.Elements, ScreenplayElement{
				Type:    ElementBasmala,
				Content: ln,
				Lines:   []string{ln},
			})
			doc.Result.Basmala = append(doc.Result.Basmala, ln)
			i++
			continue
		}

		if hdr, ok := ExtractSceneHeader(lines, i); ok {
			elem := ScreenplayElement{
				Type:    ElementSceneHeader,
				Content: headerContent(hdr),
			}
			for j := i; j < i+hdr.ConsumedLines && j < len(lines); j++ {
				if s := arabic.Normalize(lines[j]); s != "" {
					elem.Lines = append(elem.Lines, s)
				}
			}
			doc.Elements = append(doc.Elements, elem)
			doc.Result.SceneHeaders = append(doc.Result.SceneHeaders, hdr)
			i += hdr.ConsumedLines
			continue
		}

		if IsTransition(ln) {
			doc.Elements = append(doc.Elements, ScreenplayElement{
				Type:    ElementTransition,
				Content: ln,
				Lines:   []string{ln},
			})
			doc.Result.Transitions = append(doc.Result.Transitions, ln)
			i++
			continue
		}

		if blk, ok := ExtractDialogueBlock(lines, i); ok {
			addCharacter(blk.CharacterName)
			doc.Elements = append(doc.Elements, dialogueElement(lines, blk, &doc.Result))
			i = blk.EndIndex + 1
			continue
		}

		// A parenthetical outside any dialogue block renders as action;
		// the rich shape still buckets the plausible ones separately.
		if IsParenthetical(ln) {
			if isPlausibleParenthetical(ln) {
				doc.Result.Parentheticals = append(doc.Result.Parentheticals, ln)
			} else {
				doc.Result.Actions = append(doc.Result.Actions, ln)
			}
			doc.Elements = append(doc.Elements, ScreenplayElement{
				Type:    ElementAction,
				Content: ln,
				Lines:   []string{ln},
			})
			i++
			continue
		}

		doc.Elements = append(doc.Elements, ScreenplayElement{
			Type:    ElementAction,
			Content: ln,
			Lines:   []string{ln},
		})
		doc.Result.Actions = append(doc.Result.Actions, ln)
		i++
	}
	return doc
}

// dialogueElement re-walks the block's line range so the element keeps the
// original interleaving of parentheticals and dialogue, which the block's
// separate arrays lose. The walk also applies the translation rule: an
// Arabic-only parenthesized line directly after Syriac-tagged speech (or
// after a prior translation in the same turn) is the speech's gloss, not a
// stage direction.
func dialogueElement(lines []string, blk DialogueBlock, res *ExtractResult) ScreenplayElement {
	name, inline := splitCharacterLine(lines[blk.StartIndex])
	elem := ScreenplayElement{
		Type:  ElementDialogue,
		Lines: []string{name + ":"},
	}

	sawSyriac := false
	sawTranslation := false

	emit := func(piece string) {
		if IsParenthetical(piece) {
			inner := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(piece, "("), ")"))
			if (sawSyriac || sawTranslation) && arabic.HasArabic(inner) && !arabic.HasSyriac(inner) {
				res.Dialogues = append(res.Dialogues, DialogueEntry{
					Speaker:       name,
					Text:          inner,
					Lang:          "ar",
					IsTranslation: true,
				})
				elem.Lines = append(elem.Lines, piece)
				sawTranslation = true
				sawSyriac = false
				return
			}
			if isPlausibleParenthetical(piece) {
				res.Parentheticals = append(res.Parentheticals, piece)
				elem.Lines = append(elem.Lines, piece)
				return
			}
			// Implausible parenthetical, treat as spoken text.
		}
		entry := DialogueEntry{Speaker: name, Text: piece}
		if arabic.HasSyriac(piece) {
			entry.Lang = "syc"
			sawSyriac = true
		} else {
			sawSyriac = false
		}
		sawTranslation = false
		res.Dialogues = append(res.Dialogues, entry)
		elem.Lines = append(elem.Lines, piece)
	}

	if inline != "" {
		emit(inline)
	}
	for j := blk.StartIndex + 1; j <= blk.EndIndex && j < len(lines); j++ {
		if s := arabic.Normalize(lines[j]); s != "" {
			emit(s)
		}
	}

	elem.Content = strings.Join(elem.Lines, "\n")
	return elem
}

// isPlausibleParenthetical applies the stage-direction filter: short,
// no sentence-ending punctuation, no Latin or Syriac script. Lines that
// fail stay dialogue or action.
func isPlausibleParenthetical(line string) bool {
	if utf8.RuneCountInString(strings.TrimSpace(line)) > maxParentheticalRunes {
		return false
	}
	if strings.ContainsAny(line, "؟!…") {
		return false
	}
	return !arabic.HasLatin(line) && !arabic.HasSyriac(line)
}

func headerContent(h SceneHeaderParts) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{h.SceneNum, h.TimeLocation, h.Place} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " - ")
}
