package domain

import (
	"net"
	"testing"
)

func TestCheckImportURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://example.com/rules.md", false},
		{"http", "http://example.com/rules.md", false},
		{"file scheme", "file:///etc/passwd", true},
		{"ftp scheme", "ftp://example.com/x", true},
		{"no host", "https:///path", true},
		{"localhost", "http://localhost:8080/x", true},
		{"sub localhost", "http://api.localhost/x", true},
		{"loopback v4", "http://127.0.0.1/x", true},
		{"private v4", "http://10.1.2.3/x", true},
		{"link local v4", "http://169.254.169.254/latest/meta-data", true},
		{"documentation v4", "http://192.0.2.10/x", true},
		{"loopback v6", "http://[::1]/x", true},
		{"unique local v6", "http://[fd00::1]/x", true},
		{"public v4", "http://93.184.216.34/x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CheckImportURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckImportURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestDisallowedIP(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"255.255.255.255", true},
		{"0.0.0.0", true},
		{"224.0.0.1", true},
		{"fe80::1", true},
		{"::", true},
		{"8.8.8.8", false},
		{"2606:4700:4700::1111", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			if got := DisallowedIP(net.ParseIP(tt.ip)); got != tt.want {
				t.Errorf("DisallowedIP(%s) = %v, want %v", tt.ip, got, tt.want)
			}
		})
	}
}
