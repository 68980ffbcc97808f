package core

import "testing"

func TestFromDisplay(t *testing.T) {
	cases := []struct {
		in  float64
		out int64
	}{
		{12.345, 12345},
		{1, 1000},
		{0, 0},
		{-1.5, -1500},
		{0.0005, 1}, // half away from zero
		{-0.0005, -1},
		{19.99, 19990},
	}
	for _, tc := range cases {
		if got := FromDisplay(tc.in); got.Miliunits != tc.out {
			t.Fatalf("FromDisplay(%v) = %d, want %d", tc.in, got.Miliunits, tc.out)
		}
	}
}

func TestDisplay(t *testing.T) {
	if got := (Money{Miliunits: 12345}).Display(); got != 12.345 {
		t.Fatalf("Display(12345) = %v, want 12.345", got)
	}
	if got := (Money{Miliunits: -500}).Display(); got != -0.5 {
		t.Fatalf("Display(-500) = %v, want -0.5", got)
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"12.34", 12340, true},
		{"12,34", 12340, true},
		{"-3.5", -3500, true},
		{"0", 0, true},
		{"1.2345", 1235, true}, // rounds half away from zero
		{" 2.50 ", 2500, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Miliunits != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Miliunits, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := Money{Miliunits: -2500}.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "-2500" {
		t.Fatalf("marshal = %s, want -2500", b)
	}

	var m Money
	if err := m.UnmarshalJSON([]byte("12345")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.Miliunits != 12345 {
		t.Fatalf("unmarshal = %d, want 12345", m.Miliunits)
	}
	if err := m.UnmarshalJSON([]byte(`"12.3"`)); err == nil {
		t.Fatal("expected error for non-integer JSON")
	}
}
