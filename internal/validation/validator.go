// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/lineup/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9 _.-]*$`)

// FieldError is one failed rule. Field is the JSON path of the offending
// value, e.g. "tags[1]" or "filters[age][0]".
type FieldError struct {
	Field   string
	Rule    string
	Param   string
	Message string
}

// QueryError collects every rule a listing query broke.
type QueryError struct {
	Fields []FieldError
}

func (e *QueryError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether field (or an element of it) broke rule.
func (e *QueryError) Has(field, rule string) bool {
	for _, f := range e.Fields {
		if f.Rule == rule && (f.Field == field || strings.HasPrefix(f.Field, field+"[")) {
			return true
		}
	}
	return false
}

// Details maps each offending field to its message for the API error body.
// When a field fails several rules the messages are joined.
func (e *QueryError) Details() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if prev, ok := out[f.Field]; ok {
			out[f.Field] = prev + "; " + f.Message
			continue
		}
		out[f.Field] = f.Message
	}
	return out
}

// GetValidator returns the shared validator. Field names are reported by
// their JSON tag so errors line up with the wire contract.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)

		_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// ValidateQuery checks q against its struct rules plus the deployment's
// upper bound on limit. maxLimit of zero disables the bound. The result is
// nil when q is valid.
func ValidateQuery(q *models.Query, maxLimit int) *QueryError {
	var fields []FieldError

	if err := GetValidator().Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return &QueryError{Fields: []FieldError{{Field: "query", Rule: "invalid", Message: err.Error()}}}
		}
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:   fieldPath(fe),
				Rule:    fe.Tag(),
				Param:   fe.Param(),
				Message: message(fe),
			})
		}
	}

	if maxLimit > 0 && q.Limit > maxLimit {
		fields = append(fields, FieldError{
			Field:   "limit",
			Rule:    "max",
			Param:   fmt.Sprint(maxLimit),
			Message: fmt.Sprintf("limit must be at most %d", maxLimit),
		})
	}

	if len(fields) == 0 {
		return nil
	}
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return &QueryError{Fields: fields}
}

// fieldPath strips the struct name from the validator namespace:
// "Query.tags[1]" becomes "tags[1]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func message(fe validator.FieldError) string {
	field := fieldPath(fe)
	param := fe.Param()
	text := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "slug":
		return field + " may only contain letters, digits, spaces, dots, hyphens and underscores"
	case "min":
		if text {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		switch {
		case text:
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		case fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map:
			return fmt.Sprintf("%s may hold at most %s entries", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
