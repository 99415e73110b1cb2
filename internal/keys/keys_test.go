package keys

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	id := uuid.NewString()
	for _, kind := range []string{KindConference, KindSession, KindSpeaker} {
		key := Encode(kind, id)
		got, err := Decode(kind, key)
		require.NoError(t, err)
		require.Equal(t, id, got)
	}
}

func TestDecode_Invalid(t *testing.T) {
	confKey := Encode(KindConference, uuid.NewString())

	tests := []struct {
		name string
		kind string
		key  string
	}{
		{"empty", KindConference, ""},
		{"whitespace only", KindConference, "   "},
		{"not base64", KindConference, "%%%not-a-key%%%"},
		{"no kind separator", KindConference, Encode("", "")[:0] + "YWJj"}, // "abc"
		{"wrong kind", KindSession, confKey},
		{"id is not a uuid", KindConference, Encode(KindConference, "42")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.kind, tt.key)
			require.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestDecode_TrimsWhitespace(t *testing.T) {
	id := uuid.NewString()
	got, err := Decode(KindSession, "  "+Encode(KindSession, id)+" ")
	require.NoError(t, err)
	require.Equal(t, id, got)
}
