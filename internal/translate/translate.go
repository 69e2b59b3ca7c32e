// Package translate holds a fixed phrase book for twelve languages.
// The tables are read-only; accessors return copies.
package translate

// phrases lists the phrase book keys in display order.
var phrases = []string{
	"hello", "goodbye", "thank you", "please", "yes", "no",
	"good morning", "good night", "how are you", "i love you", "water", "food",
}

// languages lists supported target languages in display order.
var languages = []string{
	"spanish", "french", "german", "italian", "portuguese", "dutch",
	"russian", "japanese", "chinese", "korean", "hindi", "arabic",
}

var book = map[string]map[string]string{
	"spanish": {
		"hello": "hola", "goodbye": "adiós", "thank you": "gracias", "please": "por favor",
		"yes": "sí", "no": "no", "good morning": "buenos días", "good night": "buenas noches",
		"how are you": "cómo estás", "i love you": "te amo", "water": "agua", "food": "comida",
	},
	"french": {
		"hello": "bonjour", "goodbye": "au revoir", "thank you": "merci", "please": "s'il vous plaît",
		"yes": "oui", "no": "non", "good morning": "bonjour", "good night": "bonne nuit",
		"how are you": "comment allez-vous", "i love you": "je t'aime", "water": "eau", "food": "nourriture",
	},
	"german": {
		"hello": "hallo", "goodbye": "auf wiedersehen", "thank you": "danke", "please": "bitte",
		"yes": "ja", "no": "nein", "good morning": "guten morgen", "good night": "gute nacht",
		"how are you": "wie geht es dir", "i love you": "ich liebe dich", "water": "wasser", "food": "essen",
	},
	"italian": {
		"hello": "ciao", "goodbye": "arrivederci", "thank you": "grazie", "please": "per favore",
		"yes": "sì", "no": "no", "good morning": "buongiorno", "good night": "buonanotte",
		"how are you": "come stai", "i love you": "ti amo", "water": "acqua", "food": "cibo",
	},
	"portuguese": {
		"hello": "olá", "goodbye": "tchau", "thank you": "obrigado", "please": "por favor",
		"yes": "sim", "no": "não", "good morning": "bom dia", "good night": "boa noite",
		"how are you": "como está", "i love you": "eu te amo", "water": "água", "food": "comida",
	},
	"dutch": {
		"hello": "hallo", "goodbye": "tot ziens", "thank you": "dank je", "please": "alsjeblieft",
		"yes": "ja", "no": "nee", "good morning": "goedemorgen", "good night": "goedenacht",
		"how are you": "hoe gaat het", "i love you": "ik hou van je", "water": "water", "food": "eten",
	},
	"russian": {
		"hello": "привет", "goodbye": "до свидания", "thank you": "спасибо", "please": "пожалуйста",
		"yes": "да", "no": "нет", "good morning": "доброе утро", "good night": "спокойной ночи",
		"how are you": "как дела", "i love you": "я тебя люблю", "water": "вода", "food": "еда",
	},
	"japanese": {
		"hello": "こんにちは", "goodbye": "さようなら", "thank you": "ありがとう", "please": "お願いします",
		"yes": "はい", "no": "いいえ", "good morning": "おはよう", "good night": "おやすみ",
		"how are you": "元気ですか", "i love you": "愛してる", "water": "水", "food": "食べ物",
	},
	"chinese": {
		"hello": "你好", "goodbye": "再见", "thank you": "谢谢", "please": "请",
		"yes": "是", "no": "不", "good morning": "早上好", "good night": "晚安",
		"how are you": "你好吗", "i love you": "我爱你", "water": "水", "food": "食物",
	},
	"korean": {
		"hello": "안녕하세요", "goodbye": "안녕히 가세요", "thank you": "감사합니다", "please": "제발",
		"yes": "네", "no": "아니요", "good morning": "좋은 아침", "good night": "잘 자요",
		"how are you": "어떻게 지내세요", "i love you": "사랑해요", "water": "물", "food": "음식",
	},
	"hindi": {
		"hello": "नमस्ते", "goodbye": "अलविदा", "thank you": "धन्यवाद", "please": "कृपया",
		"yes": "हाँ", "no": "नहीं", "good morning": "सुप्रभात", "good night": "शुभ रात्रि",
		"how are you": "आप कैसे हैं", "i love you": "मैं तुमसे प्यार करता हूँ", "water": "पानी", "food": "खाना",
	},
	"arabic": {
		"hello": "مرحبا", "goodbye": "وداعا", "thank you": "شكرا", "please": "من فضلك",
		"yes": "نعم", "no": "لا", "good morning": "صباح الخير", "good night": "تصبح على خير",
		"how are you": "كيف حالك", "i love you": "أحبك", "water": "ماء", "food": "طعام",
	},
}

// Languages returns the supported target languages in display order.
func Languages() []string {
	return append([]string(nil), languages...)
}

// Supported reports whether lang has a phrase book.
func Supported(lang string) bool {
	_, ok := book[lang]
	return ok
}

// Phrases returns the phrases translatable into lang, or nil if lang is unsupported.
func Phrases(lang string) []string {
	if !Supported(lang) {
		return nil
	}
	return append([]string(nil), phrases...)
}

// Lookup returns the translation of phrase into lang.
// Matching is exact on the whole phrase; callers normalize case first.
func Lookup(lang, phrase string) (string, bool) {
	table, ok := book[lang]
	if !ok {
		return "", false
	}
	s, ok := table[phrase]
	return s, ok
}
