package server

import "testing"

func TestValidateAddress(t *testing.T) {
	cases := []struct {
		name           string
		addr           string
		requireOnCurve bool
		wantErr        bool
	}{
		{"valid wallet", validWallet, true, false},
		{"valid mint", validToken, false, false},
		{"empty", "", true, true},
		{"not base58", "0OIl+/=", true, true},
		{"too short", "abc", true, true},
		{"too long", validToken + validToken, false, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := validateAddress(c.addr, c.requireOnCurve)
			if (err != nil) != c.wantErr {
				t.Errorf("validateAddress(%q, %v) error = %v, wantErr %v", c.addr, c.requireOnCurve, err, c.wantErr)
			}
		})
	}
}
