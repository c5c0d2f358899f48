package analyze

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateContent(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		wantErr error
	}{
		{"empty", "", ErrEmptyContent},
		{"whitespace only", "   \n\t  ", ErrEmptyContent},
		{"just under minimum", strings.Repeat("x", 99), ErrContentTooShort},
		{"exactly minimum", strings.Repeat("x", 100), nil},
		{"exactly maximum", strings.Repeat("x", 100000), nil},
		{"over maximum", strings.Repeat("x", 100001), ErrContentTooLong},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateContent(tc.text)
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("expected success, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
