/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package arabic provides the text normalization and script detection
// primitives the screenplay classifier builds on. Normalization is split in
// two tiers: Normalize produces the canonical form of a line that is kept as
// element content (trimming, digit folding, removal of invisible direction
// marks), while Fold produces a comparison key that is additionally
// diacritic-insensitive and whitespace-collapsed. Fold output is never
// shown to users.
package arabic

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tatweel is the Arabic letter extender (kashida); it carries no meaning and
// is dropped from comparison keys.
const Tatweel = 'ـ'

func isFormatControl(r rune) bool {
	switch r {
	case '​', '‌', '‍', '‎', '‏': // zero-width + LRM/RLM
		return true
	case '؜': // Arabic letter mark
		return true
	case '\uFEFF': // BOM
		return true
	}
	// Directional embedding and isolate controls.
	return (r >= '‪' && r <= '‮') || (r >= '⁦' && r <= '⁩')
}

// foldDigit maps Arabic-Indic and Extended Arabic-Indic digits to ASCII.
// Other runes pass through unchanged.
func foldDigit(r rune) rune {
	switch {
	case r >= '٠' && r <= '٩':
		return '0' + (r - '٠')
	case r >= '۰' && r <= '۹':
		return '0' + (r - '۰')
	}
	return r
}

var (
	lineNormalizer = transform.Chain(
		runes.Remove(runes.Predicate(isFormatControl)),
		runes.Map(foldDigit),
	)
	diacriticStripper = transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
)

// Normalize returns the canonical form of an input line: surrounding
// whitespace trimmed, invisible direction/formatting marks removed and
// Eastern-Arabic digits folded to ASCII. The result is what classification
// operates on and what elements carry as content.
func Normalize(line string) string {
	out, _, err := transform.String(lineNormalizer, strings.TrimSpace(line))
	if err != nil {
		return strings.TrimSpace(line)
	}
	return out
}

// StripDiacritics removes Arabic vowel marks (tashkeel) and any other
// combining marks. Input that fails to transform is returned unchanged.
func StripDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}

// Fold returns the comparison key for a line: Normalize plus diacritic
// stripping, tatweel removal and whitespace collapsing. Two lines that differ
// only in vocalization, kashida or spacing fold to the same key.
func Fold(s string) string {
	key := StripDiacritics(Normalize(s))
	key = strings.Map(func(r rune) rune {
		if r == Tatweel {
			return -1
		}
		return r
	}, key)
	return strings.Join(strings.Fields(key), " ")
}

// FoldDigits folds Eastern-Arabic digits to ASCII without any other change.
func FoldDigits(s string) string {
	return strings.Map(foldDigit, s)
}
