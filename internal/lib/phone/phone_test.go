package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "bare 10 digits", input: "5551234567", want: "+15551234567"},
		{name: "formatted nanp", input: "(555) 123-4567", want: "+15551234567"},
		{name: "dotted nanp", input: "555.123.4567", want: "+15551234567"},
		{name: "leading 1", input: "15551234567", want: "+15551234567"},
		{name: "plus one", input: "+1 555 123 4567", want: "+15551234567"},
		{name: "international", input: "+44 20 7946 0958", want: "+442079460958"},
		{name: "whitespace padded", input: "  5551234567  ", want: "+15551234567"},
		{name: "empty", input: "", wantErr: true},
		{name: "letters", input: "555-CALL-NOW", wantErr: true},
		{name: "too short", input: "12345", wantErr: true},
		{name: "eleven digits no leading one", input: "25551234567", wantErr: true},
		{name: "international too short", input: "+1234567", wantErr: true},
		{name: "international too long", input: "+1234567890123456", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeOrEmpty(t *testing.T) {
	got, err := NormalizeOrEmpty("   ")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = NormalizeOrEmpty("555-123-4567")
	require.NoError(t, err)
	assert.Equal(t, "+15551234567", got)

	_, err = NormalizeOrEmpty("not a phone")
	assert.Error(t, err)
}
