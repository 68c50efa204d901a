package typegen

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/erraggy/oasmodels/internal/issues"
	"github.com/erraggy/oasmodels/internal/severity"
	"github.com/erraggy/oasmodels/model"
	"github.com/google/uuid"
)

// Note explains why a declared default was not turned into an initializer.
type Note struct {
	Code     issues.Code
	Severity severity.Severity
	Message  string
}

// SynthesizeDefault describes the initializer for a field of kind k whose
// schema declares value as its default. enum must be the referenced
// declaration when k is KindEnum.
//
// A nil value yields no default and no note. A value that does not fit k
// yields no default and a note; synthesis never fails outright.
func SynthesizeDefault(value any, k model.Kind, enum *model.EnumDecl) (*model.DefaultValue, *Note) {
	if value == nil {
		return nil, nil
	}

	switch k {
	case model.KindBoolean:
		if b, ok := value.(bool); ok {
			return literal(k, b, strconv.FormatBool(b)), nil
		}

	case model.KindInt32:
		if n, ok := integral(value); ok && n >= math.MinInt32 && n <= math.MaxInt32 {
			return literal(k, int32(n), strconv.FormatInt(n, 10)), nil
		}

	case model.KindInt64:
		if n, ok := integral(value); ok {
			return literal(k, n, strconv.FormatInt(n, 10)), nil
		}

	case model.KindFloat:
		if f, ok := number(value); ok {
			return literal(k, float32(f), strconv.FormatFloat(f, 'g', -1, 32)), nil
		}

	case model.KindDouble:
		if f, ok := number(value); ok {
			return literal(k, f, strconv.FormatFloat(f, 'g', -1, 64)), nil
		}

	case model.KindString, model.KindStringPattern:
		if s, ok := value.(string); ok {
			return literal(k, s, s), nil
		}

	case model.KindDate, model.KindDateTime, model.KindUUID, model.KindURI, model.KindURL:
		s, ok := value.(string)
		if !ok {
			break
		}
		if err := checkStructured(s, k); err != nil {
			return nil, &Note{
				Code:     issues.CodeDefaultUnparsable,
				Severity: severity.SeverityWarning,
				Message:  fmt.Sprintf("default %q is not a valid %s: %v", s, k, err),
			}
		}
		return &model.DefaultValue{
			Form:    model.DefaultParse,
			Kind:    k,
			Value:   s,
			Literal: s,
			MayFail: true,
		}, nil

	case model.KindBytes:
		s, ok := value.(string)
		if !ok {
			break
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, &Note{
				Code:     issues.CodeDefaultUnparsable,
				Severity: severity.SeverityWarning,
				Message:  fmt.Sprintf("default %q is not valid base64: %v", s, err),
			}
		}
		return literal(k, b, s), nil

	case model.KindEnum:
		if enum == nil {
			break
		}
		c, ok := enum.Constant(value)
		if !ok {
			break
		}
		return &model.DefaultValue{
			Form:         model.DefaultEnumConstant,
			Kind:         k,
			Value:        c.Value,
			Literal:      fmt.Sprint(c.Value),
			EnumType:     enum.Name,
			EnumConstant: c.Name,
		}, nil

	case model.KindList, model.KindSet, model.KindMap:
		return nil, &Note{
			Code:     issues.CodeCollectionDefault,
			Severity: severity.SeverityInfo,
			Message:  fmt.Sprintf("defaults on %s fields are not supported; default dropped", k),
		}
	}

	return nil, &Note{
		Code:     issues.CodeDefaultMismatch,
		Severity: severity.SeverityWarning,
		Message:  fmt.Sprintf("default %v (%T) does not fit a %s field; default dropped", value, value, k),
	}
}

func literal(k model.Kind, v any, text string) *model.DefaultValue {
	return &model.DefaultValue{Form: model.DefaultLiteral, Kind: k, Value: v, Literal: text}
}

// integral accepts int64 values and float64 values with no fractional part.
func integral(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

// checkStructured reports whether s will parse as a value of kind k.
func checkStructured(s string, k model.Kind) error {
	switch k {
	case model.KindDate:
		_, err := time.Parse(time.DateOnly, s)
		return err
	case model.KindDateTime:
		_, err := time.Parse(time.RFC3339, s)
		return err
	case model.KindUUID:
		_, err := uuid.Parse(s)
		return err
	case model.KindURI:
		_, err := url.Parse(s)
		return err
	case model.KindURL:
		u, err := url.ParseRequestURI(s)
		if err != nil {
			return err
		}
		if u.Scheme == "" || u.Host == "" {
			return errors.New("missing scheme or host")
		}
	}
	return nil
}
