/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

import "testing"

func TestIsBasmala_WhitespaceAndDiacritics(t *testing.T) {
	variants := []string{
		"بسم الله الرحمن الرحيم",
		"  بسم الله الرحمن الرحيم  ",
		"بسم  الله   الرحمن	الرحيم",
		"بِسْمِ اللهِ الرَّحْمَنِ الرَّحِيمِ",
	}
	for _, v := range variants {
		if !IsBasmala(v) {
			t.Fatalf("IsBasmala(%q) = false, want true", v)
		}
		if got := ClassifyLine(v); got != KindBasmala {
			t.Fatalf("ClassifyLine(%q) = %v, want basmala", v, got)
		}
	}
	if IsBasmala("بسم الله") {
		t.Fatalf("IsBasmala accepted a partial phrase")
	}
}

func TestIsTransition(t *testing.T) {
	accepted := []string{"قطع", "قطع إلى", "قطع الى:", "ذوبان.", "فيد آوت", "النهاية"}
	for _, v := range accepted {
		if !IsTransition(v) {
			t.Fatalf("IsTransition(%q) = false, want true", v)
		}
	}
	rejected := []string{"قطعية", "قطع الشجرة بسرعة", "انتقل أحمد إلى الباب"}
	for _, v := range rejected {
		if IsTransition(v) {
			t.Fatalf("IsTransition(%q) = true, want false", v)
		}
	}
}

func TestIsCharacterLine_ColonForm(t *testing.T) {
	if !IsCharacterLine("أحمد: مرحباً بكم") {
		t.Fatalf("colon character line rejected")
	}
	if !IsCharacterLine("أم كلثوم :") {
		t.Fatalf("colon character line with spaced colon rejected")
	}
	if IsCharacterLine("Ahmed: hello") {
		t.Fatalf("Latin name accepted as character line")
	}
	if IsCharacterLine(": مرحباً") {
		t.Fatalf("empty name before colon accepted")
	}
}

func TestIsCharacterLine_BareNameHeuristic(t *testing.T) {
	if !IsCharacterLine("أحمد") {
		t.Fatalf("bare single name rejected")
	}
	if !IsCharacterLine("أم كلثوم") {
		t.Fatalf("bare two-word name rejected")
	}
}

func TestIsCharacterLine_RejectsCommonWords(t *testing.T) {
	// Short all-Arabic lines holding a common word are prose, never names.
	for _, v := range []string{"في البيت", "على السطح", "هذا أحمد"} {
		if IsCharacterLine(v) {
			t.Fatalf("IsCharacterLine(%q) = true, want false", v)
		}
	}
}

func TestIsCharacterLine_RejectsVerbOpenings(t *testing.T) {
	for _, v := range []string{"يدخل أحمد", "تخرج سعاد", "يجلسان معاً"} {
		if IsCharacterLine(v) {
			t.Fatalf("IsCharacterLine(%q) = true, want false", v)
		}
	}
}

func TestIsParenthetical(t *testing.T) {
	if !IsParenthetical("(يبتسم)") {
		t.Fatalf("simple parenthetical rejected")
	}
	if !IsParenthetical("  (بعد توقف قصير)  ") {
		t.Fatalf("padded parenthetical rejected")
	}
	if IsParenthetical("(يبتسم) ثم يخرج") {
		t.Fatalf("trailing text accepted")
	}
	if IsParenthetical("(أ) و (ب)") {
		t.Fatalf("two separate groups accepted")
	}
	if IsParenthetical("يقول (بحزن)") {
		t.Fatalf("leading text accepted")
	}
}

func TestClassifyLine_Priority(t *testing.T) {
	cases := []struct {
		line string
		want LineKind
	}{
		{"بسم الله الرحمن الرحيم", KindBasmala},
		{"مشهد 12 - داخلي-ليل", KindSceneHeader},
		{"م. 3", KindSceneHeader},
		{"قطع", KindTransition},
		{"أحمد: صباح الخير", KindCharacter},
		{"سعاد", KindCharacter},
		{"(هامساً)", KindParenthetical},
		{"يدخل أحمد إلى الغرفة ويجلس قرب النافذة.", KindAction},
		{"", KindAction},
	}
	for _, c := range cases {
		if got := ClassifyLine(c.line); got != c.want {
			t.Fatalf("ClassifyLine(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}

func TestWordListAccessorsCopy(t *testing.T) {
	cw := CommonWords()
	if len(cw) == 0 {
		t.Fatalf("CommonWords returned empty list")
	}
	cw[0] = "مُعدل"
	if CommonWords()[0] == "مُعدل" {
		t.Fatalf("CommonWords returned a shared slice")
	}
	av := ActionVerbs()
	if len(av) == 0 {
		t.Fatalf("ActionVerbs returned empty list")
	}
}
