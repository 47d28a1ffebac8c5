package vocab

// StaticKana is the built-in kana table: the basic gojūon plus the voiced
// (dakuten) and half-voiced (handakuten) rows.
type StaticKana struct{}

type kanaRow struct {
	group    string
	romaji   []string
	hiragana []string
	katakana []string
}

var kanaRows = []kanaRow{
	{"vowels", []string{"a", "i", "u", "e", "o"}, []string{"あ", "い", "う", "え", "お"}, []string{"ア", "イ", "ウ", "エ", "オ"}},
	{"k", []string{"ka", "ki", "ku", "ke", "ko"}, []string{"か", "き", "く", "け", "こ"}, []string{"カ", "キ", "ク", "ケ", "コ"}},
	{"s", []string{"sa", "shi", "su", "se", "so"}, []string{"さ", "し", "す", "せ", "そ"}, []string{"サ", "シ", "ス", "セ", "ソ"}},
	{"t", []string{"ta", "chi", "tsu", "te", "to"}, []string{"た", "ち", "つ", "て", "と"}, []string{"タ", "チ", "ツ", "テ", "ト"}},
	{"n", []string{"na", "ni", "nu", "ne", "no"}, []string{"な", "に", "ぬ", "ね", "の"}, []string{"ナ", "ニ", "ヌ", "ネ", "ノ"}},
	{"h", []string{"ha", "hi", "fu", "he", "ho"}, []string{"は", "ひ", "ふ", "へ", "ほ"}, []string{"ハ", "ヒ", "フ", "ヘ", "ホ"}},
	{"m", []string{"ma", "mi", "mu", "me", "mo"}, []string{"ま", "み", "む", "め", "も"}, []string{"マ", "ミ", "ム", "メ", "モ"}},
	{"y", []string{"ya", "yu", "yo"}, []string{"や", "ゆ", "よ"}, []string{"ヤ", "ユ", "ヨ"}},
	{"r", []string{"ra", "ri", "ru", "re", "ro"}, []string{"ら", "り", "る", "れ", "ろ"}, []string{"ラ", "リ", "ル", "レ", "ロ"}},
	{"w", []string{"wa", "wo"}, []string{"わ", "を"}, []string{"ワ", "ヲ"}},
	{"n-final", []string{"n"}, []string{"ん"}, []string{"ン"}},
	{"g", []string{"ga", "gi", "gu", "ge", "go"}, []string{"が", "ぎ", "ぐ", "げ", "ご"}, []string{"ガ", "ギ", "グ", "ゲ", "ゴ"}},
	{"z", []string{"za", "ji", "zu", "ze", "zo"}, []string{"ざ", "じ", "ず", "ぜ", "ぞ"}, []string{"ザ", "ジ", "ズ", "ゼ", "ゾ"}},
	{"d", []string{"da", "di", "du", "de", "do"}, []string{"だ", "ぢ", "づ", "で", "ど"}, []string{"ダ", "ヂ", "ヅ", "デ", "ド"}},
	{"b", []string{"ba", "bi", "bu", "be", "bo"}, []string{"ば", "び", "ぶ", "べ", "ぼ"}, []string{"バ", "ビ", "ブ", "ベ", "ボ"}},
	{"p", []string{"pa", "pi", "pu", "pe", "po"}, []string{"ぱ", "ぴ", "ぷ", "ぺ", "ぽ"}, []string{"パ", "ピ", "プ", "ペ", "ポ"}},
}

func (StaticKana) Hiragana() []Kana { return buildKana(ScriptHiragana) }

func (StaticKana) Katakana() []Kana { return buildKana(ScriptKatakana) }

func buildKana(script Script) []Kana {
	var out []Kana
	for _, row := range kanaRows {
		chars := row.hiragana
		if script == ScriptKatakana {
			chars = row.katakana
		}
		for i, c := range chars {
			out = append(out, Kana{Char: c, Romaji: row.romaji[i], Type: script, Group: row.group})
		}
	}
	return out
}
