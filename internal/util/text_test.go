package util

import (
	"reflect"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\nb\n", []string{"a", "b"}},
		{"a\r\nb\rc", []string{"a", "b", "c"}},
		{"a\n\nb", []string{"a", "", "b"}},
		{"\n", []string{""}},
	}
	for _, tt := range tests {
		if got := SplitLines(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("सुनावणी", 3); got != "सुन" {
		t.Errorf("got %q", got)
	}
	if got := TruncateRunes("abc", 10); got != "abc" {
		t.Errorf("got %q", got)
	}
	if got := TruncateRunes("abc", 0); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"b", "a", "b", "c", "a"})
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := Dedupe(nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestNonEmptyLines(t *testing.T) {
	got := NonEmptyLines("  one \n\n two\n three\n", 2)
	want := []string{"one", "two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := NonEmptyLines("", 0); got == nil {
		t.Error("expected non-nil slice")
	}
}

func TestOr(t *testing.T) {
	if got := Or("", "", "x", "y"); got != "x" {
		t.Errorf("got %q", got)
	}
	if got := Or(); got != "" {
		t.Errorf("got %q", got)
	}
}
