package redact

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"aadhaar spaced", "आधार 1234 5678 9012 आहे", "आधार XXXX XXXX XXXX आहे"},
		{"aadhaar compact", "UID:123456789012.", "UID:XXXX XXXX XXXX."},
		{"aadhaar devanagari digits", "आधार १२३४ ५६७८ ९०१२", "आधार XXXX XXXX XXXX"},
		{"pan", "PAN ABCDE1234F दिले", "PAN XXXXX9999X दिले"},
		{"mobile", "मो. 9876543210", "मो. XXXXXXXXXX"},
		{"mobile low first digit", "5876543210", "5876543210"},
		{"thirteen digits untouched", "1234567890123", "1234567890123"},
		{"glued to letters", "ABC9876543210", "ABC9876543210"},
		{"glued to devanagari", "क9876543210", "क9876543210"},
		{"lowercase pan", "abcde1234f", "abcde1234f"},
		{"no sensitive data", "सुनावणी दिनांक 13/05/2025", "सुनावणी दिनांक 13/05/2025"},
		{"several", "9876543210, 9123456789", "XXXXXXXXXX, XXXXXXXXXX"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.in); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestText_Idempotent(t *testing.T) {
	inputs := []string{
		"आधार 1234 5678 9012, PAN ABCDE1234F, मो. 9876543210",
		"123456789012 9876543210",
		"XXXXX9999X XXXX XXXX XXXX",
		"plain text",
	}
	for _, in := range inputs {
		once := Text(in)
		if twice := Text(once); twice != once {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestText_AadhaarBeforeMobile(t *testing.T) {
	// a 12-digit ID starting with 9 must not be half-masked as a mobile
	if got := Text("987654321012"); got != AadhaarMask {
		t.Errorf("got %q", got)
	}
}

func TestCount(t *testing.T) {
	counts := Count("1234 5678 9012 ABCDE1234F 9876543210 9123456789")
	if counts["aadhaar"] != 1 || counts["pan"] != 1 || counts["mobile"] != 2 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestPreview(t *testing.T) {
	text := strings.Repeat("अ", 10) + " 9876543210"
	if got := Preview(text, 5, true); got != "अअअअअ" {
		t.Errorf("got %q", got)
	}
	if got := Preview(text, 100, true); !strings.HasSuffix(got, MobileMask) {
		t.Errorf("expected masked mobile, got %q", got)
	}
	if got := Preview(text, 100, false); got != text {
		t.Errorf("expected raw text, got %q", got)
	}
	if got := Preview(text, 15, true); utf8.RuneCountInString(got) > 15 {
		t.Errorf("preview longer than limit: %q", got)
	}
}
