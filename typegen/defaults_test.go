package typegen

import (
	"testing"

	"github.com/erraggy/oasmodels/internal/issues"
	"github.com/erraggy/oasmodels/internal/severity"
	"github.com/erraggy/oasmodels/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeDefaultLiterals(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		kind    model.Kind
		want    any
		literal string
		tag     string
	}{
		{"bool", true, model.KindBoolean, true, "true", ""},
		{"int32", int64(7), model.KindInt32, int32(7), "7", ""},
		{"int32 from integral float", float64(7), model.KindInt32, int32(7), "7", ""},
		{"int64", int64(10), model.KindInt64, int64(10), "10", "long"},
		{"float", 1.5, model.KindFloat, float32(1.5), "1.5", "float"},
		{"float from integer", int64(2), model.KindFloat, float32(2), "2", "float"},
		{"double", 0.25, model.KindDouble, 0.25, "0.25", ""},
		{"string", "hello", model.KindString, "hello", "hello", ""},
		{"pattern string", "abc", model.KindStringPattern, "abc", "abc", ""},
		{"bytes", "aGk=", model.KindBytes, []byte("hi"), "aGk=", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dv, note := SynthesizeDefault(tt.value, tt.kind, nil)
			require.Nil(t, note)
			require.NotNil(t, dv)
			assert.Equal(t, model.DefaultLiteral, dv.Form)
			assert.Equal(t, tt.kind, dv.Kind)
			assert.Equal(t, tt.want, dv.Value)
			assert.Equal(t, tt.literal, dv.Literal)
			assert.Equal(t, tt.tag, dv.Tag())
			assert.False(t, dv.MayFail)
		})
	}
}

func TestSynthesizeDefaultStructured(t *testing.T) {
	tests := []struct {
		kind  model.Kind
		value string
	}{
		{model.KindDate, "2024-01-31"},
		{model.KindDateTime, "2024-01-31T10:00:00Z"},
		{model.KindUUID, "3fa85f64-5717-4562-b3fc-2c963f66afa6"},
		{model.KindURI, "urn:isbn:0451450523"},
		{model.KindURL, "https://example.com/pets"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			dv, note := SynthesizeDefault(tt.value, tt.kind, nil)
			require.Nil(t, note)
			require.NotNil(t, dv)
			assert.Equal(t, model.DefaultParse, dv.Form)
			assert.Equal(t, tt.value, dv.Literal)
			assert.True(t, dv.MayFail)
		})
	}
}

func TestSynthesizeDefaultEnum(t *testing.T) {
	enum := &model.EnumDecl{
		Name: "Status",
		Constants: []model.EnumConstant{
			{Name: "PLACED", Value: "placed"},
			{Name: "DELIVERED", Value: "delivered"},
		},
	}

	dv, note := SynthesizeDefault("delivered", model.KindEnum, enum)
	require.Nil(t, note)
	require.NotNil(t, dv)
	assert.Equal(t, model.DefaultEnumConstant, dv.Form)
	assert.Equal(t, "Status", dv.EnumType)
	assert.Equal(t, "DELIVERED", dv.EnumConstant)
	assert.Equal(t, "delivered", dv.Value)

	dv, note = SynthesizeDefault("lost", model.KindEnum, enum)
	assert.Nil(t, dv)
	require.NotNil(t, note)
	assert.Equal(t, issues.CodeDefaultMismatch, note.Code)
}

func TestSynthesizeDefaultDropped(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		kind     model.Kind
		code     issues.Code
		severity severity.Severity
	}{
		{"string for integer", "ten", model.KindInt32, issues.CodeDefaultMismatch, severity.SeverityWarning},
		{"fraction for integer", 1.5, model.KindInt64, issues.CodeDefaultMismatch, severity.SeverityWarning},
		{"int32 overflow", int64(1) << 40, model.KindInt32, issues.CodeDefaultMismatch, severity.SeverityWarning},
		{"number for bool", int64(1), model.KindBoolean, issues.CodeDefaultMismatch, severity.SeverityWarning},
		{"number for string", int64(1), model.KindString, issues.CodeDefaultMismatch, severity.SeverityWarning},
		{"bad date", "31/01/2024", model.KindDate, issues.CodeDefaultUnparsable, severity.SeverityWarning},
		{"bad date-time", "2024-01-31", model.KindDateTime, issues.CodeDefaultUnparsable, severity.SeverityWarning},
		{"bad uuid", "not-a-uuid", model.KindUUID, issues.CodeDefaultUnparsable, severity.SeverityWarning},
		{"relative url", "/pets", model.KindURL, issues.CodeDefaultUnparsable, severity.SeverityWarning},
		{"bad base64", "!!", model.KindBytes, issues.CodeDefaultUnparsable, severity.SeverityWarning},
		{"list", []any{"a"}, model.KindList, issues.CodeCollectionDefault, severity.SeverityInfo},
		{"set", []any{}, model.KindSet, issues.CodeCollectionDefault, severity.SeverityInfo},
		{"map", map[string]any{}, model.KindMap, issues.CodeCollectionDefault, severity.SeverityInfo},
		{"object", map[string]any{"a": int64(1)}, model.KindObject, issues.CodeDefaultMismatch, severity.SeverityWarning},
		{"any", "x", model.KindAny, issues.CodeDefaultMismatch, severity.SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dv, note := SynthesizeDefault(tt.value, tt.kind, nil)
			assert.Nil(t, dv)
			require.NotNil(t, note)
			assert.Equal(t, tt.code, note.Code)
			assert.Equal(t, tt.severity, note.Severity)
			assert.NotEmpty(t, note.Message)
		})
	}
}

func TestSynthesizeDefaultNil(t *testing.T) {
	dv, note := SynthesizeDefault(nil, model.KindString, nil)
	assert.Nil(t, dv)
	assert.Nil(t, note)
}
