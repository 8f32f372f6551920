package chat

import "testing"

func TestNormalizeStatusTextStripsPhaseGlyphsAndTrims(t *testing.T) {
	cases := map[string]string{
		"🔍 Buscando sitios...":  "Buscando sitios...",
		"🧠 Pensando":            "Pensando",
		"✍️ Escribiendo 💾":       "Escribiendo",
		"  sin adornos  ":       "sin adornos",
		"🎯":                     "",
		"🤖⭐ Eligiendo favoritos": "Eligiendo favoritos",
	}

	for input, want := range cases {
		if got := NormalizeStatusText(input); got != want {
			t.Fatalf("NormalizeStatusText(%q) = %q, want %q", input, got, want)
		}
	}
}
