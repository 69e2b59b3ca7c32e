package translate

import "testing"

func TestBookIsComplete(t *testing.T) {
	if len(Languages()) != 12 {
		t.Fatalf("len(Languages()) = %d, want 12", len(Languages()))
	}
	for _, lang := range Languages() {
		ps := Phrases(lang)
		if len(ps) != 12 {
			t.Errorf("%s: %d phrases, want 12", lang, len(ps))
		}
		for _, p := range ps {
			if s, ok := Lookup(lang, p); !ok || s == "" {
				t.Errorf("Lookup(%q, %q) missing", lang, p)
			}
		}
	}
}

func TestLookup_Stable(t *testing.T) {
	for _, lang := range Languages() {
		for _, p := range Phrases(lang) {
			first, _ := Lookup(lang, p)
			second, _ := Lookup(lang, p)
			if first != second {
				t.Errorf("Lookup(%q, %q) = %q then %q", lang, p, first, second)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		lang, phrase, want string
	}{
		{"german", "hello", "hallo"},
		{"spanish", "thank you", "gracias"},
		{"japanese", "thank you", "ありがとう"},
		{"french", "i love you", "je t'aime"},
		{"arabic", "good night", "تصبح على خير"},
	}
	for _, tt := range tests {
		got, ok := Lookup(tt.lang, tt.phrase)
		if !ok || got != tt.want {
			t.Errorf("Lookup(%q, %q) = %q, %v; want %q", tt.lang, tt.phrase, got, ok, tt.want)
		}
	}
}

func TestLookup_NoPartialMatch(t *testing.T) {
	tests := []struct {
		lang, phrase string
	}{
		{"german", "hello there"},
		{"german", "hell"},
		{"german", "Hello"},
		{"klingon", "hello"},
		{"spanish", ""},
	}
	for _, tt := range tests {
		if got, ok := Lookup(tt.lang, tt.phrase); ok {
			t.Errorf("Lookup(%q, %q) = %q, want no match", tt.lang, tt.phrase, got)
		}
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	langs := Languages()
	langs[0] = "mutated"
	if Languages()[0] != "spanish" {
		t.Error("Languages() exposed internal slice")
	}

	ps := Phrases("german")
	ps[0] = "mutated"
	if Phrases("german")[0] != "hello" {
		t.Error("Phrases() exposed internal slice")
	}

	if Phrases("klingon") != nil {
		t.Error("Phrases(unsupported) should be nil")
	}
}
