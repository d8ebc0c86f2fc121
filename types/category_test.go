package types

import "testing"

func TestCategoryWireValue(t *testing.T) {
	if got := CategoryNone.WireValue(); got != "" {
		t.Fatalf("CategoryNone.WireValue() = %q; want empty", got)
	}
	if got := Category("tech").WireValue(); got != "tech" {
		t.Fatalf("WireValue() = %q; want tech", got)
	}
	if got := Category("").WireValue(); got != "" {
		t.Fatalf("empty WireValue() = %q; want empty", got)
	}
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"", "", true},
		{"_none", CategoryNone, true},
		{"tech", "tech", true},
		{"interview", "interview", true},
		{"sports", "", false},
	}

	for _, c := range cases {
		got, ok := ParseCategory(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("ParseCategory(%q) = (%q, %v); want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestCategoryOptionsIncludeSentinelFirst(t *testing.T) {
	opts := CategoryOptions()
	if len(opts) == 0 || opts[0].Value != CategoryNone {
		t.Fatalf("expected sentinel first, got %+v", opts)
	}
	for _, opt := range opts {
		if opt.Label == "" {
			t.Fatalf("category %q has no label", opt.Value)
		}
	}
}
