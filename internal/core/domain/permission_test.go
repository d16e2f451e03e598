package domain

import "testing"

func TestPermissionImplies(t *testing.T) {
	tests := []struct {
		held      string
		requested string
		want      bool
	}{
		// Trailing wildcard covers deeper requests.
		{"book$*", "book$read", true},
		{"book$*", "book$read$42", true},
		{"book$*", "book", true},
		{"book$*", "magazine$read", false},

		// Exact match only at equal depth.
		{"newsletter$read", "newsletter$read", true},
		{"newsletter$read", "newsletter$write", false},
		{"newsletter$read", "newsletter$read$daily", false},
		{"newsletter$read", "newsletter", false},

		// Mid-position wildcard.
		{"book$*$42", "book$read$42", true},
		{"book$*$42", "book$read$43", false},

		// Held more specific than requested needs wildcard tail segments.
		{"book$read$42", "book$read", false},
		{"book$read$*", "book$read", true},

		// Bare wildcard grants everything.
		{"*", "book$read$42", true},
		{"*", "anything", true},

		// Case-sensitive.
		{"Book$read", "book$read", false},
	}

	for _, tt := range tests {
		t.Run(tt.held+"->"+tt.requested, func(t *testing.T) {
			held := MustParsePermission(tt.held)
			requested := MustParsePermission(tt.requested)
			if got := held.Implies(requested); got != tt.want {
				t.Errorf("%q.Implies(%q) = %v, want %v", tt.held, tt.requested, got, tt.want)
			}
		})
	}
}

func TestParsePermissionRejectsInvalid(t *testing.T) {
	for _, s := range []string{"", "$", "book$", "$read", "book$$read"} {
		if _, err := ParsePermission(s); err == nil {
			t.Errorf("ParsePermission(%q) should fail", s)
		}
	}
}

func TestPermissionString(t *testing.T) {
	p := MustParsePermission("book$read$42")
	if p.String() != "book$read$42" {
		t.Errorf("String() = %q, want %q", p.String(), "book$read$42")
	}
}

func TestImpliesStringInvalidRequest(t *testing.T) {
	p := MustParsePermission("book$*")
	if p.ImpliesString("") {
		t.Error("ImpliesString(empty) should be false")
	}
	if !p.ImpliesString("book$read") {
		t.Error("ImpliesString(book$read) should be true")
	}
}

func TestMustParsePermissionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParsePermission(empty) should panic")
		}
	}()
	MustParsePermission("")
}
