package validator

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aashari/go-ai-proxy-server/internal/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// Report violations under the JSON name clients actually sent
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Violation is the first constraint a request body failed
type Violation struct {
	Field string
	Tag   string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("field '%s' failed validation: %s", v.Field, v.Tag)
}

// Message returns a client-facing message for the violation.
// missing is used for the "required" tag.
func (v *Violation) Message(missing string) string {
	switch v.Tag {
	case "required":
		if missing != "" {
			return missing
		}
		return fmt.Sprintf("%s is required", v.Field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", v.Field)
	default:
		return fmt.Sprintf("%s is invalid", v.Field)
	}
}

// DecodeJSON reads the request body into dst. An empty body leaves dst at
// its zero value so that missing-field validation reports the right message.
// Keys must match the struct's json names exactly; "Query" does not fill
// `json:"query"`. Malformed JSON or mistyped fields yield a 400, an
// oversized body a 413.
func DecodeJSON(r *http.Request, dst interface{}) *errors.APIError {
	if r.Body == nil {
		return nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if stderrors.As(err, &maxBytesErr) {
			return errors.NewRequestTooLargeError()
		}
		return errors.NewValidationError(errors.MessageInvalidRequestBody)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	body, err = exactKeys(body, dst)
	if err != nil {
		return errors.NewValidationError(errors.MessageInvalidRequestBody)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return errors.NewValidationError(errors.MessageInvalidRequestBody)
	}

	return nil
}

// exactKeys drops object keys that are not an exact json name of dst's
// fields, since encoding/json would otherwise match them case-insensitively.
// Non-struct targets get the body back unchanged.
func exactKeys(body []byte, dst interface{}) ([]byte, error) {
	names := jsonFieldNames(dst)
	if names == nil {
		return body, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	kept := make(map[string]json.RawMessage, len(raw))
	for key, value := range raw {
		if _, ok := names[key]; ok {
			kept[key] = value
		}
	}
	return json.Marshal(kept)
}

func jsonFieldNames(dst interface{}) map[string]struct{} {
	t := reflect.TypeOf(dst)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	names := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		fld := t.Field(i)
		if !fld.IsExported() {
			continue
		}
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			continue
		case "":
			name = fld.Name
		}
		names[name] = struct{}{}
	}
	return names
}

// Struct validates v against its `validate` tags and returns the first violation
func Struct(v interface{}) *Violation {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if stderrors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return &Violation{Field: fe.Field(), Tag: fe.Tag()}
	}

	return &Violation{Field: "body", Tag: "invalid"}
}
