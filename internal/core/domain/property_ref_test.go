package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePropertyRef(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantID  int64
		wrapped bool
	}{
		{name: "wrapped", raw: `{"propertyData":{"id":7,"address":"x"}}`, wantID: 7, wrapped: true},
		{name: "bare", raw: `{"id":7,"address":"x"}`, wantID: 7},
		{name: "null wrapper falls back to id", raw: `{"propertyData":null,"id":3}`, wantID: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParsePropertyRef(json.RawMessage(tt.raw))
			require.NoError(t, err)

			_, id, err := ResolveID(ref)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)

			_, isWrapped := ref.(WrappedRef)
			assert.Equal(t, tt.wrapped, isWrapped)
		})
	}
}

func TestParsePropertyRef_Unresolvable(t *testing.T) {
	for _, raw := range []string{`{}`, `{"address":"x"}`, `[]`, `not json`} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParsePropertyRef(json.RawMessage(raw))
			assert.True(t, errors.Is(err, ErrIdentityResolution))
		})
	}
}

func TestResolveID_ZeroIDIsUnusable(t *testing.T) {
	_, _, err := ResolveID(BareRef{Property: Property{Address: "no id"}})
	assert.ErrorIs(t, err, ErrIdentityResolution)

	_, _, err = ResolveID(nil)
	assert.ErrorIs(t, err, ErrIdentityResolution)
}

func TestRefWith_KeepsShape(t *testing.T) {
	updated := Property{ID: 7, Address: "new"}

	assert.Equal(t, WrappedRef{PropertyData: updated}, RefWith(WrappedRef{}, updated))
	assert.Equal(t, BareRef{Property: updated}, RefWith(BareRef{}, updated))
}

func TestOperationError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &OperationError{Op: "create", Kind: ErrRemoteWrite, Message: "Failed", Err: cause}

	assert.ErrorIs(t, err, ErrRemoteWrite)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed", UserMessage(err, "fallback"))
	assert.Equal(t, "fallback", UserMessage(cause, "fallback"))
	assert.Equal(t, "create", Diagnostics(err)["operation"])
}
