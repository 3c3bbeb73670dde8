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

// maxContinuationRunes bounds how long a post-blank line may be and still
// count as the same speaker's turn continuing.
const maxContinuationRunes = 200

// ExtractDialogueBlock parses a dialogue block starting at lines[start].
// The second return value is false when start is out of range or the line
// is not a character line.
//
// The character name is everything before the first colon; inline text
// after the colon becomes the first fragment. Following lines are absorbed
// as parentheticals or dialogue until a structural line appears. A blank
// line ends the block unless the next non-blank line still reads like the
// same turn (not structural, not opening with an action verb, short), in
// which case the blank run is a soft paragraph break. EndIndex is the index
// of the last absorbed line, so the caller resumes at EndIndex+1.
func ExtractDialogueBlock(lines []string, start int) (DialogueBlock, bool) {
	if start < 0 || start >= len(lines) {
		return DialogueBlock{}, false
	}
	if !IsCharacterLine(lines[start]) {
		return DialogueBlock{}, false
	}

	name, inline := splitCharacterLine(lines[start])
	blk := DialogueBlock{
		CharacterName: name,
		StartIndex:    start,
		EndIndex:      start,
	}
	if inline != "" {
		if IsParenthetical(inline) {
			blk.Parentheticals = append(blk.Parentheticals, inline)
		} else {
			blk.DialogueLines = append(blk.DialogueLines, inline)
		}
	}

	i := start + 1
	for i < len(lines) {
		ln := arabic.Normalize(lines[i])
		if ln == "" {
			j := i + 1
			for j < len(lines) && arabic.Normalize(lines[j]) == "" {
				j++
			}
			if j >= len(lines) {
				break
			}
			next := arabic.Normalize(lines[j])
			if isHardStructural(next) || IsCharacterLine(next) {
				break
			}
			if !isDialogueContinuation(next) {
				break
			}
			i = j
			continue
		}
		if isHardStructural(ln) {
			break
		}
		if IsParenthetical(ln) {
			blk.Parentheticals = append(blk.Parentheticals, ln)
		} else {
			blk.DialogueLines = append(blk.DialogueLines, ln)
		}
		blk.EndIndex = i
		i++
	}
	return blk, true
}

// isHardStructural matches the lines that unconditionally end a run of
// free text: basmala, scene header start, transition, or the explicit
// "NAME:" character form. The bare short-name heuristic is excluded so
// that a one-word reply directly under a character line stays dialogue.
func isHardStructural(line string) bool {
	return IsBasmala(line) ||
		IsSceneHeaderStart(line) ||
		IsTransition(line) ||
		isColonCharacterLine(line)
}

// isDialogueContinuation decides whether a post-blank line resumes the
// current speaker's turn. Action-verb openings and long lines read as
// narration, not continued speech.
func isDialogueContinuation(line string) bool {
	if utf8.RuneCountInString(line) >= maxContinuationRunes {
		return false
	}
	words := strings.Fields(line)
	if len(words) == 0 {
		return false
	}
	return !hasVerbPrefix(words[0])
}
