package config

import "testing"

func TestGetWorkerLimit(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 8},
		{"invalid", "abc", 8},
		{"zero", "0", 8},
		{"negative", "-4", 8},
		{"min", "1", 1},
		{"mid", "16", 16},
		{"max", "64", 64},
		{"over", "100", 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("WORKER_LIMIT", tt.env)
			if got := getWorkerLimit(); got != tt.want {
				t.Errorf("getWorkerLimit() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetHTTPTimeout(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 10},
		{"invalid", "later", 10},
		{"zero", "0", 10},
		{"valid", "5", 5},
		{"over", "120", 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HTTP_TIMEOUT_SECONDS", tt.env)
			if got := getHTTPTimeout(); got != tt.want {
				t.Errorf("getHTTPTimeout() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetCountry(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want string
	}{
		{"empty", "", "US"},
		{"too_long", "USA", "US"},
		{"valid", "GB", "GB"},
		{"lowercase", "de", "de"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ITUNES_COUNTRY", tt.env)
			if got := getCountry(); got != tt.want {
				t.Errorf("getCountry() = %q; want %q", got, tt.want)
			}
		})
	}
}
