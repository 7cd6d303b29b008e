package set

import (
	"reflect"
	"testing"
)

func TestNormalizeModesPairing(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []Mode
	}{
		{"learn forces speak", []string{"learn"}, []Mode{ModeLearn, ModeSpeak}},
		{"speak forces learn", []string{"speak"}, []Mode{ModeLearn, ModeSpeak}},
		{"read alone stays alone", []string{"read"}, []Mode{ModeRead}},
		{"listen alone stays alone", []string{"listen"}, []Mode{ModeListen}},
		{"pairing with read", []string{"read", "speak"}, []Mode{ModeLearn, ModeSpeak, ModeRead}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeModes(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("NormalizeModes(%v): want=%v got=%v", tc.in, tc.want, got)
			}
		})
	}
}

func TestNormalizeModesCanonicalOrder(t *testing.T) {
	in := []string{"listen", "read", "speak", "learn"}
	want := []Mode{ModeLearn, ModeSpeak, ModeRead, ModeListen}
	got := NormalizeModes(in)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("canonical order: want=%v got=%v", want, got)
	}
}

func TestNormalizeModesDropsUnknownAndDupes(t *testing.T) {
	got := NormalizeModes([]string{"READ", "read", "flashcards", " read ", "test"})
	want := []Mode{ModeRead}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeModes: want=%v got=%v", want, got)
	}
}

func TestNormalizeModesEmpty(t *testing.T) {
	if got := NormalizeModes(nil); got != nil {
		t.Fatalf("NormalizeModes(nil): want=nil got=%v", got)
	}
	if got := NormalizeModes([]string{"bogus"}); got != nil {
		t.Fatalf("NormalizeModes(bogus): want=nil got=%v", got)
	}
}

func TestInferModesExplicitWins(t *testing.T) {
	s := &Set{
		DeclaredModes: []string{"learn"},
		Passages:      []Passage{{Title: "A", Polish: "Cześć", English: "Hi"}},
	}
	want := []Mode{ModeLearn, ModeSpeak}
	if got := InferModes(s); !reflect.DeepEqual(got, want) {
		t.Fatalf("explicit modes: want=%v got=%v", want, got)
	}
}

func TestInferModesStructural(t *testing.T) {
	cases := []struct {
		name string
		set  *Set
		want []Mode
	}{
		{
			"passages mean read only",
			&Set{Passages: []Passage{{Title: "A", Polish: "Cześć", English: "Hi"}}},
			[]Mode{ModeRead},
		},
		{
			"audio reference means listen",
			&Set{Cards: []Card{{Phrase: "tak", Meaning: "yes", Audio: "listening/d001.mp3"}}},
			[]Mode{ModeListen},
		},
		{
			"audio url means listen",
			&Set{Cards: []Card{{Phrase: "nie", Meaning: "no", AudioURL: "https://cdn.example/d.mp3"}}},
			[]Mode{ModeListen},
		},
		{
			"empty passages list still means read",
			&Set{HasPassages: true, Passages: []Passage{}},
			[]Mode{ModeRead},
		},
		{
			"plain cards default to learn and speak",
			&Set{Cards: []Card{{Phrase: "czerwony", Meaning: "red"}}},
			[]Mode{ModeLearn, ModeSpeak},
		},
		{
			"no signal at all still yields the safe default",
			&Set{},
			[]Mode{ModeLearn, ModeSpeak},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InferModes(tc.set); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("InferModes: want=%v got=%v", tc.want, got)
			}
		})
	}
}

func TestInferModesDecodedEmptyPassagesList(t *testing.T) {
	s := DecodeDocument("empty", []byte(`{"name":"Empty","passages":[]}`))
	want := []Mode{ModeRead}
	if got := InferModes(s); !reflect.DeepEqual(got, want) {
		t.Fatalf("empty passages list: want=%v got=%v", want, got)
	}
}

func TestTypeForModes(t *testing.T) {
	if got := TypeForModes([]Mode{ModeRead}); got != "reading" {
		t.Fatalf("type: want=%q got=%q", "reading", got)
	}
	if got := TypeForModes([]Mode{ModeListen}); got != "listening" {
		t.Fatalf("type: want=%q got=%q", "listening", got)
	}
	if got := TypeForModes([]Mode{ModeLearn, ModeSpeak}); got != "flashcards" {
		t.Fatalf("type: want=%q got=%q", "flashcards", got)
	}
}
