package instrument

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMasker_Value(t *testing.T) {
	t.Parallel()

	m := NewMasker([]string{"OTP", " token ", ""})

	got := m.Value(map[string]any{
		"email": "a@x.com",
		"otp":   "12345",
		"data":  []any{map[string]any{"Token": "abc", "keep": 1.0}},
	})

	assert.Equal(t, map[string]any{
		"email": "a@x.com",
		"otp":   Masked,
		"data":  []any{map[string]any{"Token": Masked, "keep": 1.0}},
	}, got)
}

func TestMasker_Body(t *testing.T) {
	t.Parallel()

	m := NewMasker([]string{"otp"})

	tests := []struct {
		name string
		body []byte
		want any
	}{
		{name: "Empty", body: nil, want: nil},
		{name: "JSON", body: []byte(`{"otp":"1","email":"e"}`), want: map[string]any{"otp": Masked, "email": "e"}},
		{name: "Text", body: []byte("plain"), want: "plain"},
		{name: "Binary", body: []byte{0xff, 0xfe}, want: "<binary body omitted>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, m.Body(tt.body))
		})
	}
}

func TestMasker_AttrAndHeaders(t *testing.T) {
	t.Parallel()

	m := NewMasker([]string{"authorization", "secret"})

	assert.Equal(t, Masked, m.Attr(slog.String("secret", "x")).Value.String())
	assert.Equal(t, `{"secret":"***"}`, m.Attr(slog.String("payload", `{"secret":"x"}`)).Value.String())

	h := http.Header{"Authorization": {"Bearer abc"}, "Accept": {"*/*"}}
	got := m.Headers(h)
	assert.Equal(t, Masked, got.Get("Authorization"))
	assert.Equal(t, "*/*", got.Get("Accept"))
	assert.Equal(t, "Bearer abc", h.Get("Authorization"))

	assert.True(t, NewMasker(nil).Empty())
}

func TestCorrelationID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetCorrelationID(context.Background()))
	assert.Equal(t, "cid-1", GetCorrelationID(SetCorrelationID(context.Background(), "cid-1")))
}
