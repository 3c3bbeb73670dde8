/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package arabic

import "unicode"

// IsArabicLetter reports whether r is a letter of the Arabic script
// (including presentation forms). Digits, punctuation and combining marks
// are not letters.
func IsArabicLetter(r rune) bool {
	return unicode.IsLetter(r) && unicode.Is(unicode.Arabic, r)
}

// HasArabic reports whether s contains at least one Arabic letter.
func HasArabic(s string) bool {
	for _, r := range s {
		if IsArabicLetter(r) {
			return true
		}
	}
	return false
}

// HasLatin reports whether s contains at least one Latin letter.
func HasLatin(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}

// HasSyriac reports whether s contains at least one Syriac-script rune.
// Bilingual liturgical scripts interleave Syriac dialogue with Arabic
// glosses; the document classifier keys its translation rule on this.
func HasSyriac(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Syriac, r) {
			return true
		}
	}
	return false
}

// IsArabicRun reports whether s consists solely of Arabic letters and
// whitespace with at least one letter. Combining marks riding on Arabic
// letters are tolerated so diacritized names still qualify.
func IsArabicRun(s string) bool {
	hasLetter := false
	for _, r := range s {
		switch {
		case IsArabicLetter(r):
			hasLetter = true
		case unicode.IsSpace(r):
		case unicode.Is(unicode.Mn, r):
		default:
			return false
		}
	}
	return hasLetter
}
