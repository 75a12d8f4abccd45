package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposePhone(t *testing.T) {
	assert.Equal(t, "+880 1712345678", ComposePhone("+880", "1712345678"))
	assert.Equal(t, "+44 ", ComposePhone("+44", ""))
}

func TestStripCountryCode(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{name: "composed number", phone: "+880 1712345678", want: "1712345678"},
		{name: "no space after code", phone: "+8801712345678", want: ""},
		{name: "no country code", phone: "01712345678", want: "01712345678"},
		{name: "code only", phone: "+880 ", want: ""},
		{name: "only first token stripped", phone: "+1 +44 2071234567", want: "+44 2071234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCountryCode(tt.phone))
		})
	}
}

func TestSplitPhone(t *testing.T) {
	tests := []struct {
		name         string
		phone        string
		wantCode     string
		wantNational string
	}{
		{name: "composed number", phone: "+44 2071234567", wantCode: "+44", wantNational: "2071234567"},
		{name: "no country code", phone: "2071234567", wantCode: "", wantNational: "2071234567"},
		{name: "empty", phone: "", wantCode: "", wantNational: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, national := SplitPhone(tt.phone)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantNational, national)
		})
	}
}
