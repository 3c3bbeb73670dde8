/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sinsweatpants/ara-scriptease/internal/arabic"
)

const (
	inoutAlt = `داخلي|خارجي|د\.|خ\.`
	timeAlt  = `(?:ال)?(?:ليل|نهار|صباح|مساء|فجر|ظهر|عصر|مغرب|عشاء|شروق|غروب)`
	// sepCls are the separator characters writers put between the
	// in/out marker and the time of day.
	sepCls = `[-–—:،]`
)

var (
	reSceneStart = regexp.MustCompile(`^(مشهد|م\.)\s*([0-9]+)\s*(.*)$`)
	reInOutTime  = regexp.MustCompile(`(` + inoutAlt + `)\s*` + sepCls + `?\s*(` + timeAlt + `)`)
	reTimeInOut  = regexp.MustCompile(`(` + timeAlt + `)\s*` + sepCls + `?\s*(` + inoutAlt + `)`)
)

// IsSceneHeaderStart reports whether the line opens a scene header:
// "مشهد" or "م." followed by a number. Eastern Arabic digits are folded
// before matching, so "مشهد ٣" matches like "مشهد 3".
func IsSceneHeaderStart(line string) bool {
	return reSceneStart.MatchString(arabic.Normalize(line))
}

// ExtractSceneHeader parses a scene header starting at lines[start].
// The second return value is false when start is out of range or the
// line does not open a scene header; the caller then reprocesses the
// line under the ordinary rules.
//
// The start line yields the scene number, the time/location token and an
// inline place fragment. Following lines extend the place as long as they
// keep reading like place fragments; the first structural line (or a line
// with sentence punctuation or an action verb) ends the header. Blank
// lines inside the run are consumed but never end it on their own.
func ExtractSceneHeader(lines []string, start int) (SceneHeaderParts, bool) {
	if start < 0 || start >= len(lines) {
		return SceneHeaderParts{}, false
	}
	m := reSceneStart.FindStringSubmatch(arabic.Normalize(lines[start]))
	if m == nil {
		return SceneHeaderParts{}, false
	}

	parts := SceneHeaderParts{
		SceneNum:      m[1] + " " + m[2],
		ConsumedLines: 1,
	}

	timeLoc, inlinePlace := splitTimeLocation(m[3])
	parts.TimeLocation = timeLoc

	placeParts := make([]string, 0, 4)
	if inlinePlace != "" {
		placeParts = append(placeParts, inlinePlace)
	}

	pending := 0
	for i := start + 1; i < len(lines); i++ {
		ln := arabic.Normalize(lines[i])
		if ln == "" {
			pending++
			continue
		}
		if terminatesHeader(ln) || !isPlaceFragment(ln) {
			break
		}
		parts.ConsumedLines += pending + 1
		pending = 0
		placeParts = append(placeParts, ln)
	}
	parts.ConsumedLines += pending

	parts.Place = strings.Join(placeParts, " – ")
	return parts, true
}

// terminatesHeader matches the structural lines that end place
// aggregation. Bare short name lines are deliberately not structural
// here: a two-word place fragment would otherwise read as a name.
func terminatesHeader(line string) bool {
	return isHardStructural(line) || IsParenthetical(line)
}

// isPlaceFragment reports whether a line can extend a scene header's
// place: no sentence-ending punctuation and no action-verb word. A
// rejected line ends the header and classifies on its own.
func isPlaceFragment(line string) bool {
	if strings.ContainsAny(line, ".!?؟…") {
		return false
	}
	for _, w := range strings.Fields(line) {
		if hasVerbPrefix(w) {
			return false
		}
	}
	return true
}

// splitTimeLocation scans the remainder of a scene header start line for
// the time/location token in either order (داخلي-نهار or نهار-داخلي) and
// returns the token joined by a single hyphen plus the leftover text as
// the inline place. With no token the whole remainder is place.
func splitTimeLocation(rest string) (timeLocation, place string) {
	for _, re := range []*regexp.Regexp{reInOutTime, reTimeInOut} {
		loc := re.FindStringSubmatchIndex(rest)
		if loc == nil {
			continue
		}
		if !cleanTokenBoundary(rest, loc[0], loc[1]) {
			continue
		}
		first := rest[loc[2]:loc[3]]
		second := rest[loc[4]:loc[5]]
		before := trimSeparators(rest[:loc[0]])
		after := trimSeparators(rest[loc[1]:])
		switch {
		case before != "" && after != "":
			place = before + " " + after
		case before != "":
			place = before
		default:
			place = after
		}
		return first + "-" + second, place
	}
	return "", trimSeparators(rest)
}

// cleanTokenBoundary rejects matches embedded inside longer Arabic words,
// e.g. the نهار inside منهار. RE2 has no Arabic word boundaries, so the
// runes on each side of the match are checked directly.
func cleanTokenBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if arabic.IsArabicLetter(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if arabic.IsArabicLetter(r) {
			return false
		}
	}
	return true
}

func trimSeparators(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		switch r {
		case '-', '–', '—', ':', '،':
			return true
		}
		return unicode.IsSpace(r)
	})
}
