package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortCodeString(t *testing.T) {
	code := ShortCode{Prefix: "PROJ", Type: TypeTask, Number: 7}
	assert.Equal(t, "PROJ-T-0007", code.String())

	code = ShortCode{Prefix: "AB", Type: TypeVision, Number: 1234}
	assert.Equal(t, "AB-V-1234", code.String())
}

func TestParseShortCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ShortCode
		wantErr bool
	}{
		{
			name:  "task code",
			input: "PROJ-T-0007",
			want:  ShortCode{Prefix: "PROJ", Type: TypeTask, Number: 7},
		},
		{
			name:  "adr code",
			input: "CHARTR-A-0042",
			want:  ShortCode{Prefix: "CHARTR", Type: TypeAdr, Number: 42},
		},
		{
			name:    "lowercase prefix rejected",
			input:   "proj-T-0007",
			wantErr: true,
		},
		{
			name:    "unknown type letter",
			input:   "PROJ-X-0007",
			wantErr: true,
		},
		{
			name:    "three digit number rejected",
			input:   "PROJ-T-007",
			wantErr: true,
		},
		{
			name:    "five digit number rejected",
			input:   "PROJ-T-00007",
			wantErr: true,
		},
		{
			name:    "prefix too short",
			input:   "P-T-0007",
			wantErr: true,
		},
		{
			name:    "prefix too long",
			input:   "ABCDEFGHI-T-0007",
			wantErr: true,
		},
		{
			name:    "missing segment",
			input:   "PROJ-0007",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseShortCode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidShortCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestValidPrefix(t *testing.T) {
	assert.True(t, ValidPrefix("AB"))
	assert.True(t, ValidPrefix("CHARTER"))
	assert.False(t, ValidPrefix("A"))
	assert.False(t, ValidPrefix("ABCDEFGHI"))
	assert.False(t, ValidPrefix("ab"))
	assert.False(t, ValidPrefix("A1"))
	assert.False(t, ValidPrefix(""))
}
