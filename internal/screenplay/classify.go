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

// LineKind is the classification of a single line.
type LineKind int

const (
	// KindAction is the catch-all; every line that matches no other rule
	// is narrative action prose.
	KindAction LineKind = iota
	KindBasmala
	KindSceneHeader
	KindTransition
	KindCharacter
	KindParenthetical
)

func (k LineKind) String() string {
	switch k {
	case KindBasmala:
		return "basmala"
	case KindSceneHeader:
		return "scene-header"
	case KindTransition:
		return "transition"
	case KindCharacter:
		return "character"
	case KindParenthetical:
		return "parenthetical"
	default:
		return "action"
	}
}

// classifyRules is evaluated top to bottom; the first matching predicate
// wins. The order matters because the classes overlap: a scene header also
// reads as a short run of Arabic words that the character-name heuristic
// would otherwise claim.
var classifyRules = []struct {
	kind  LineKind
	match func(string) bool
}{
	{KindBasmala, IsBasmala},
	{KindSceneHeader, IsSceneHeaderStart},
	{KindTransition, IsTransition},
	{KindCharacter, IsCharacterLine},
	{KindParenthetical, IsParenthetical},
}

// ClassifyLine assigns a kind to one line. Predicates normalize their input
// themselves, so raw and pre-normalized lines classify identically. No
// predicate panics; unmatched lines fall through to KindAction.
func ClassifyLine(line string) LineKind {
	for _, r := range classifyRules {
		if r.match(line) {
			return r.kind
		}
	}
	return KindAction
}

var basmalaKey = arabic.Fold("بسم الله الرحمن الرحيم")

// IsBasmala reports whether the line is the opening invocation, ignoring
// surrounding whitespace, inner spacing and diacritics.
func IsBasmala(line string) bool {
	return arabic.Fold(line) == basmalaKey
}

// transitionPhrases is the fixed whole-line transition vocabulary, including
// the common undotted-hamza spelling variants writers actually type.
var transitionPhrases = []string{
	"قطع",
	"قطع إلى",
	"قطع الى",
	"قطع سريع",
	"انتقال",
	"انتقال إلى",
	"انتقال الى",
	"فيد",
	"فيد إن",
	"فيد ان",
	"فيد آوت",
	"فيد اوت",
	"ذوبان",
	"مزج",
	"تلاشي",
	"إظلام",
	"اظلام",
	"النهاية",
	"نهاية",
	"نهاية المشهد",
	"نهاية الفيلم",
}

var transitionSet = foldSet(transitionPhrases)

// IsTransition reports whether the whole line is one of the fixed transition
// phrases, diacritic-insensitive, with an optional trailing "." or ":".
func IsTransition(line string) bool {
	key := arabic.Fold(line)
	key = strings.TrimRight(key, ".:")
	key = strings.TrimSpace(key)
	_, ok := transitionSet[key]
	return ok
}

// commonWordList contains high-frequency prepositions, demonstratives and
// discourse markers. A short Arabic line containing any of them is prose,
// not a character name. The set is fixed; classification results depend on
// its exact contents.
var commonWordList = []string{
	"في", "على", "من", "إلى", "الى", "عن", "مع", "بين", "عند",
	"هذا", "هذه", "ذلك", "تلك", "هناك", "هنا",
	"الذي", "التي", "الذين",
	"ثم", "لكن", "حيث", "بل", "حتى", "أو", "او",
	"كان", "كانت", "يكون", "تكون",
	"إن", "ان", "أن", "لا", "ما", "هل", "قد", "لقد", "لم", "لن",
	"إذا", "اذا", "كل", "بعد", "قبل", "أمام", "امام", "خلف", "فوق", "تحت",
}

// actionVerbList contains present-tense verbs that open action description
// lines (masculine and feminine forms). A line whose first word starts with
// one of these is stage action, not a character name.
var actionVerbList = []string{
	"يدخل", "تدخل", "يخرج", "تخرج", "يجلس", "تجلس", "يقف", "تقف",
	"ينظر", "تنظر", "يمشي", "تمشي", "يقول", "تقول", "يفتح", "تفتح",
	"يغلق", "تغلق", "يلتفت", "تلتفت", "يبتسم", "تبتسم", "يضحك", "تضحك",
	"يبكي", "تبكي", "يركض", "تركض", "يتحرك", "تتحرك", "يرفع", "ترفع",
	"يضع", "تضع", "يأخذ", "تأخذ", "ياخذ", "تاخذ", "يعود", "تعود",
	"يصمت", "تصمت", "يصرخ", "تصرخ", "يهمس", "تهمس",
}

var (
	commonWordSet = foldSet(commonWordList)
	actionVerbSet = foldSet(actionVerbList)
)

func foldSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[arabic.Fold(w)] = struct{}{}
	}
	return m
}

// CommonWords returns a copy of the fixed common-word list.
func CommonWords() []string {
	return append([]string(nil), commonWordList...)
}

// ActionVerbs returns a copy of the fixed action-verb list.
func ActionVerbs() []string {
	return append([]string(nil), actionVerbList...)
}

const (
	maxNameWords = 3
	maxNameRunes = 30
)

// IsCharacterLine reports whether the line introduces a speaker: either an
// Arabic-letter run followed by a colon (dialogue may continue inline after
// the colon), or a bare short all-Arabic line that contains no common word
// and does not open with an action verb.
func IsCharacterLine(line string) bool {
	return isColonCharacterLine(line) || isBareNameLine(line)
}

// isColonCharacterLine matches the explicit "NAME:" form. The text before
// the first colon must be a run of Arabic letters and spaces.
func isColonCharacterLine(line string) bool {
	s := arabic.Normalize(line)
	idx := strings.IndexAny(s, ":：")
	if idx <= 0 {
		return false
	}
	return arabic.IsArabicRun(strings.TrimSpace(s[:idx]))
}

// isBareNameLine is the heuristic fallback for colon-less speaker lines.
// It deliberately errs toward rejecting: one false "character" swallows the
// following lines as dialogue, while a false "action" only loses styling.
func isBareNameLine(line string) bool {
	s := arabic.Normalize(line)
	if s == "" || utf8.RuneCountInString(s) > maxNameRunes {
		return false
	}
	words := strings.Fields(s)
	if len(words) == 0 || len(words) > maxNameWords {
		return false
	}
	if !arabic.IsArabicRun(s) {
		return false
	}
	for _, w := range words {
		if _, ok := commonWordSet[arabic.Fold(w)]; ok {
			return false
		}
	}
	return !hasVerbPrefix(words[0])
}

func hasVerbPrefix(word string) bool {
	key := arabic.Fold(word)
	if _, ok := actionVerbSet[key]; ok {
		return true
	}
	for v := range actionVerbSet {
		if strings.HasPrefix(key, v) {
			return true
		}
	}
	return false
}

// IsParenthetical reports whether the entire trimmed line is wrapped in one
// matching pair of parentheses.
func IsParenthetical(line string) bool {
	s := arabic.Normalize(line)
	runes := []rune(s)
	if len(runes) < 2 || runes[0] != '(' || runes[len(runes)-1] != ')' {
		return false
	}
	depth := 0
	for i, r := range runes {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
			if depth == 0 && i != len(runes)-1 {
				return false
			}
		}
	}
	return depth == 0
}

// splitCharacterLine splits a character line into the name (colon stripped)
// and any inline text after the colon. A colon-less bare name returns the
// whole line as the name and an empty remainder.
func splitCharacterLine(line string) (name, inline string) {
	s := arabic.Normalize(line)
	idx := strings.IndexAny(s, ":：")
	if idx < 0 {
		return s, ""
	}
	_, w := utf8.DecodeRuneInString(s[idx:])
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+w:])
}
