package session_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"identity-service/internal/client/session"
	"identity-service/pkg/token"
)

func payloadToken(t *testing.T, payload string) string {
	t.Helper()
	enc := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return "eyJhbGciOiJIUzI1NiJ9." + enc + ".signature"
}

func TestDecodePayload_RealToken(t *testing.T) {
	issuer := token.NewIssuer([]byte("secret"), "identity-service", "identity-client")
	tok, err := issuer.Issue(1, "harold@test.com", "Harold")
	require.NoError(t, err)

	claims, ok := session.DecodePayload(tok)

	assert.True(t, ok)
	assert.Equal(t, "harold@test.com", claims.Email)
	assert.Equal(t, "Harold", claims.Name)
}

func TestDecodePayload_AlternateKeySpellings(t *testing.T) {
	cases := []struct {
		payload string
		email   string
		name    string
	}{
		{`{"email":"a@b.com","name":"Ana"}`, "a@b.com", "Ana"},
		{`{"Email":"a@b.com","Nombre":"Ana"}`, "a@b.com", "Ana"},
		{`{"email":"a@b.com","nombre":"Ana"}`, "a@b.com", "Ana"},
		{`{"Email":"a@b.com","Name":"Ana"}`, "a@b.com", ""},
	}

	for _, tc := range cases {
		claims, ok := session.DecodePayload(payloadToken(t, tc.payload))
		assert.True(t, ok, tc.payload)
		assert.Equal(t, tc.email, claims.Email, tc.payload)
		assert.Equal(t, tc.name, claims.Name, tc.payload)
	}
}

func TestDecodePayload_MissingFieldsStillOK(t *testing.T) {
	claims, ok := session.DecodePayload(payloadToken(t, `{"sub":"1"}`))

	assert.True(t, ok)
	assert.Empty(t, claims.Email)
	assert.Empty(t, claims.Name)
}

func TestDecodePayload_PaddingRestoration(t *testing.T) {
	// Payload lengths chosen so the encoded segment hits each mod-4 case.
	for _, payload := range []string{
		`{"email":"a@b.com"}`,
		`{"email":"ab@c.com"}`,
		`{"email":"abc@d.com"}`,
		`{"email":"abcd@e.com"}`,
	} {
		claims, ok := session.DecodePayload(payloadToken(t, payload))
		require.True(t, ok, payload)
		assert.NotEmpty(t, claims.Email, payload)
	}
}

func TestDecodePayload_Malformed(t *testing.T) {
	cases := []string{
		"",
		"no-dots-at-all",
		"only.!!!not-base64!!!.sig",
		payloadToken(t, `not json`),
	}

	for _, tok := range cases {
		_, ok := session.DecodePayload(tok)
		assert.False(t, ok, tok)
	}
}

func TestDecodePayload_TwoSegmentsSuffice(t *testing.T) {
	// No signature segment: the decoder does not verify, so it does not care.
	tok := payloadToken(t, `{"email":"a@b.com"}`)
	tok = strings.TrimSuffix(tok, ".signature")

	claims, ok := session.DecodePayload(tok)
	assert.True(t, ok)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestDecodePayload_NonStringClaimIgnored(t *testing.T) {
	claims, ok := session.DecodePayload(payloadToken(t, `{"email":42,"nombre":"Ana"}`))

	assert.True(t, ok)
	assert.Empty(t, claims.Email)
	assert.Equal(t, "Ana", claims.Name)
}
