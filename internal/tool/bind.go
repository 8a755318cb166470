package tool

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"posbridge/internal/model"
	"posbridge/internal/toast"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("bizdate", validateBusinessDate)
	_ = v.RegisterValidation("timestamp", validateTimestamp)
	return v
}

// validateBusinessDate accepts integers that spell a real YYYYMMDD date.
func validateBusinessDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("20060102", strconv.FormatInt(fl.Field().Int(), 10))
	return err == nil
}

func validateTimestamp(fl validator.FieldLevel) bool {
	_, ok := model.ParseTime(fl.Field().String())
	return ok
}

// bind decodes raw into dst and validates it. An empty body is an empty
// object. Every failure is a *toast.ValidationError.
func bind(raw json.RawMessage, dst any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		trimmed = []byte("{}")
	}
	if err := json.Unmarshal(trimmed, dst); err != nil {
		return &toast.ValidationError{Message: decodeMessage(err)}
	}

	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &toast.ValidationError{Message: err.Error()}
	}
	fields := make([]toast.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, toast.FieldError{Field: fieldPath(fe), Rule: fe.Tag()})
	}
	return &toast.ValidationError{Message: "invalid arguments", Fields: fields}
}

// fieldPath turns a validator namespace into the argument path a caller
// sent, such as "selections[0].itemGuid". The root type and embedded structs
// read the same in the json and Go namespaces; renamed fields never do.
func fieldPath(fe validator.FieldError) string {
	byTag := strings.Split(fe.Namespace(), ".")
	byName := strings.Split(fe.StructNamespace(), ".")
	if len(byTag) != len(byName) {
		return fe.Field()
	}
	parts := make([]string, 0, len(byTag))
	for i := range byTag {
		if byTag[i] != byName[i] {
			parts = append(parts, byTag[i])
		}
	}
	if len(parts) == 0 {
		return fe.Field()
	}
	return strings.Join(parts, ".")
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field + " must be " + typeErr.Type.String()
	}
	return err.Error()
}
