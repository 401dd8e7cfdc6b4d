package archive

import (
	"strings"
	"testing"
)

func TestS3_ImplementsStorage(t *testing.T) {
	var _ Storage = (*S3)(nil)
}

func TestS3_Key(t *testing.T) {
	tests := []struct {
		prefix string
		key    string
		want   string
	}{
		{"", "run/summary.json", "run/summary.json"},
		{"backtests", "run/summary.json", "backtests/run/summary.json"},
		{"backtests/", "run/summary.json", "backtests/run/summary.json"},
	}

	for _, tt := range tests {
		s := &S3{prefix: strings.TrimSuffix(tt.prefix, "/")}
		if got := s.key(tt.key); got != tt.want {
			t.Errorf("key(%q) with prefix %q = %q, want %q", tt.key, tt.prefix, got, tt.want)
		}
	}
}
