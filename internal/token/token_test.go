package token

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode_KnownVectors(t *testing.T) {
	cases := []struct {
		name       string
		giver      string
		assignedTo string
		want       string
	}{
		{name: "ascii", giver: "Alice", assignedTo: "Bob", want: "QWxpY2V8Qm9i"},
		{name: "accents use underscore", giver: "José", assignedTo: "Zoë", want: "Sm9zw6l8Wm_Dqw"},
		{name: "spaces and umlaut", giver: "Ana María", assignedTo: "Björn", want: "QW5hIE1hcsOtYXxCasO2cm4"},
		{name: "both substitutions", giver: ">>>", assignedTo: "???", want: "Pj4-fD8_Pw"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Encode(tc.giver, tc.assignedTo)
			require.Equal(t, tc.want, got)
			require.NotContains(t, got, "=")
			require.NotContains(t, got, "+")
			require.NotContains(t, got, "/")
		})
	}
}

func TestEncode_MatchesRawURLEncoding(t *testing.T) {
	for _, pair := range [][2]string{{"a", "b"}, {"Alice", "Bob"}, {"李雷", "韩梅梅"}, {"x y z", "🎁"}} {
		want := base64.RawURLEncoding.EncodeToString([]byte(pair[0] + "|" + pair[1]))
		require.Equal(t, want, Encode(pair[0], pair[1]))
	}
}

func TestRoundTrip(t *testing.T) {
	names := []string{"A", "Al", "Ali", "Alic", "Alice", "José", "Ana María", "O'Brien", "🎄 Santa", "名字", "a-b_c+d/e=f"}
	for _, giver := range names {
		for _, recipient := range names {
			got, err := Decode(Encode(giver, recipient))
			require.NoError(t, err)
			require.Equal(t, Pair{Name: giver, AssignedTo: recipient}, got)
		}
	}
}

func TestDecode_Invalid(t *testing.T) {
	cases := []struct {
		name string
		tok  string
	}{
		{name: "empty", tok: ""},
		{name: "bad alphabet", tok: "not-valid-base64!!"},
		{name: "empty recipient", tok: Encode("OnlyOneName", "")},
		{name: "empty giver", tok: Encode("", "OnlyOneName")},
		{name: "no delimiter", tok: base64.RawURLEncoding.EncodeToString([]byte("AliceBob"))},
		{name: "too many parts", tok: Encode("Alice", "Bob|Carol")},
		{name: "only delimiter", tok: Encode("", "")},
		{name: "impossible length", tok: "QWxpY"},
		{name: "invalid utf8", tok: base64.RawURLEncoding.EncodeToString([]byte{0xff, '|', 0xfe})},
		{name: "whitespace", tok: "   "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				_, err := Decode(tc.tok)
				require.True(t, errors.Is(err, ErrInvalid), "got %v", err)
			})
		})
	}
}

func TestDecode_AcceptsPaddedAndStandardAlphabet(t *testing.T) {
	std := base64.StdEncoding.EncodeToString([]byte(">>>|???"))
	require.True(t, strings.HasSuffix(std, "="))

	got, err := Decode(std)
	require.NoError(t, err)
	require.Equal(t, Pair{Name: ">>>", AssignedTo: "???"}, got)
}

func TestDecode_AcceptsFabricatedToken(t *testing.T) {
	forged := base64.RawURLEncoding.EncodeToString([]byte("Mallory|Whoever"))
	got, err := Decode(forged)
	require.NoError(t, err)
	require.Equal(t, "Mallory", got.Name)
}
