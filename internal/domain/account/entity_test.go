package account

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		err  error
	}{
		{in: "user", want: KindUser},
		{in: " Company ", want: KindCompany},
		{in: "admin", err: ErrUnknownKind},
		{in: "", err: ErrUnknownKind},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if !errors.Is(err, tt.err) {
			t.Fatalf("ParseKind(%q) err = %v, want %v", tt.in, err, tt.err)
		}
		if got != tt.want {
			t.Fatalf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
