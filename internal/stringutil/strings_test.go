package stringutil

import "testing"

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Valid digits", "123456", true},
		{"Single digit", "7", true},
		{"Empty string", "", false},
		{"Contains letter", "123a456", false},
		{"Contains space", "123 456", false},
		{"Only letters", "abc", false},
		{"Special chars", "123-456", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsNumeric(tt.input)
			if got != tt.want {
				t.Errorf("IsNumeric(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsNameToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Chinese course name", "高等数学", true},
		{"Mixed letters and Han", "C语言程序设计", true},
		{"ASCII name", "Calculus", true},
		{"Single rune", "数", false},
		{"Empty string", "", false},
		{"Contains dash", "1-16", false},
		{"Contains colon", "08:00", false},
		{"Digits only still a token", "2024", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsNameToken(tt.input)
			if got != tt.want {
				t.Errorf("IsNameToken(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
