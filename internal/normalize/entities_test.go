package normalize

import "testing"

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"amp", "Concert &amp; Jazz", "Concert & Jazz"},
		{"nbsp", "Salle&nbsp;des&nbsp;fêtes", "Salle des fêtes"},
		{"quot", "&quot;Hamlet&quot;", `"Hamlet"`},
		{"lt gt", "&lt;3 &gt;", "<3 >"},
		{"numeric apostrophe", "L&#39;été", "L'été"},
		{"numeric quote", "&#34;Jazz&#34;", `"Jazz"`},
		{"numeric accented", "F&#233;te", "Féte"},
		{"unknown named entity untouched", "caf&eacute;", "caf&eacute;"},
		{"hex reference untouched", "&#x27;", "&#x27;"},
		{"named decoded before numeric", "&amp;#39;", "'"},
		{"zero code point untouched", "&#0;", "&#0;"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeEntities(tt.in); got != tt.want {
				t.Errorf("DecodeEntities(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeEntities_IdempotentOnDecodedText(t *testing.T) {
	inputs := []string{
		"Concert &amp; Jazz",
		"L&#39;été &quot;en avance&quot;",
		"Salle&nbsp;Bellegrave &lt;Pessac&gt;",
		"Plain text & symbols < > \"",
		"Déjà décodé",
	}

	for _, in := range inputs {
		once := DecodeEntities(in)
		twice := DecodeEntities(once)
		if once != twice {
			t.Errorf("DecodeEntities not idempotent on %q: %q then %q", in, once, twice)
		}
	}
}
