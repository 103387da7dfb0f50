package config

import "testing"

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"manual", "manual"},
		{"User Manual", "User_Manual"},
		{"50% off & more", "50__off___more"},
		{"{draft}#1", "_draft__1"},
		{".hidden", "hidden"},
		{"...", "_bad_file_name_"},
		{"", "_bad_file_name_"},
		{"a/b", "ab"},
		{"tab\there", "tabhere"},
		{"Руководство", "Руководство"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CleanFileName(tt.in); got != tt.want {
				t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
