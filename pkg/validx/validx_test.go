package validx_test

import (
	"strings"
	"testing"

	"github.com/aussiebroadwan/sessiond/pkg/validx"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string `json:"name"     jsonschema:"required,minLength=2"`
	Email    string `json:"email"    jsonschema:"required,format=email"`
	Password string `json:"password" jsonschema:"required,minLength=6"`
	Nickname string `json:"nickname,omitempty"`
}

func TestDecodeValid(t *testing.T) {
	v := validx.MustFor[signup]()

	got, err := v.Decode(strings.NewReader(`{"name":"Alice","email":"alice@example.com","password":"secret1","role":"admin"}`))
	require.NoError(t, err)
	require.Equal(t, signup{Name: "Alice", Email: "alice@example.com", Password: "secret1"}, got)
}

func TestDecodeRejects(t *testing.T) {
	v := validx.MustFor[signup]()

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"short name", `{"name":"A","email":"alice@example.com","password":"secret1"}`, "name"},
		{"bad email", `{"name":"Alice","email":"not-an-email","password":"secret1"}`, "email"},
		{"short password", `{"name":"Alice","email":"alice@example.com","password":"12345"}`, "password"},
		{"missing password", `{"name":"Alice","email":"alice@example.com"}`, "password"},
		{"wrong type", `{"name":42,"email":"alice@example.com","password":"secret1"}`, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Decode(strings.NewReader(tt.body))
			require.ErrorIs(t, err, validx.ErrValidation)

			var ve *validx.ValidationError
			require.ErrorAs(t, err, &ve)
			require.NotEmpty(t, ve.Fields)

			fields := make([]string, 0, len(ve.Fields))
			for _, f := range ve.Fields {
				fields = append(fields, f.Field)
				require.NotEmpty(t, f.Message)
			}
			require.Contains(t, fields, tt.field)
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	v := validx.MustFor[signup]()

	for _, body := range []string{"", "{", "not json"} {
		_, err := v.Decode(strings.NewReader(body))
		require.ErrorIs(t, err, validx.ErrInvalidBody, "body %q", body)
	}
}

func TestDecodeRejectsNonObject(t *testing.T) {
	v := validx.MustFor[signup]()

	_, err := v.Decode(strings.NewReader(`["alice@example.com"]`))
	require.ErrorIs(t, err, validx.ErrValidation)
}

func TestSchemaIsExposed(t *testing.T) {
	v := validx.MustFor[signup]()
	require.Contains(t, string(v.Schema()), `"minLength":6`)
}

type account struct {
	Profile struct {
		Name  string `json:"name"  jsonschema:"required"`
		Email string `json:"email" jsonschema:"required"`
		Phone string `json:"phone" jsonschema:"required"`
	} `json:"profile" jsonschema:"required"`
}

func TestDecodeReportsEachMissingNestedField(t *testing.T) {
	v := validx.MustFor[account]()

	_, err := v.Decode(strings.NewReader(`{"profile":{}}`))
	require.ErrorIs(t, err, validx.ErrValidation)

	var ve *validx.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, []validx.FieldError{
		{Field: "profile.email", Message: "is required"},
		{Field: "profile.name", Message: "is required"},
		{Field: "profile.phone", Message: "is required"},
	}, ve.Fields)
}
