package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/go-playground/validator/v10"
)

// MaxRequestBodyBytes bounds JSON request bodies. The largest legitimate
// body is a 10000 character source text.
const MaxRequestBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		return domain.IsStrongPassword(fl.Field().String())
	}); err != nil {
		// ALLOW-PANIC: registration only fails for an invalid tag name
		panic(err)
	}
	return v
}

// DecodeJSON decodes the request body into v. Bodies larger than
// MaxRequestBodyBytes and trailing data are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// ValidateRequest validates v using its `validate` struct tags.
func ValidateRequest(v any) error {
	return validate.Struct(v)
}

// ValidationFieldErrors turns a validation failure into a field -> message
// map. It understands validator errors and domain validation errors and
// returns nil for anything else.
func ValidationFieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			field := fieldPath(fe.Namespace())
			if _, exists := out[field]; !exists {
				out[field] = tagMessage(fe)
			}
		}
		return out
	}

	var derrs domain.ValidationErrors
	if errors.As(err, &derrs) {
		return derrs.Fields()
	}

	var derr *domain.ValidationError
	if errors.As(err, &derr) {
		return map[string]string{derr.Field: derr.Message}
	}
	return nil
}

// fieldPath drops the root struct name: "Req.flashcards[0].front" becomes
// "flashcards[0].front".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func tagMessage(fe validator.FieldError) string {
	countable := fe.Kind() == reflect.String || fe.Kind() == reflect.Slice
	unit := "characters"
	if fe.Kind() == reflect.Slice {
		unit = "items"
	}

	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min", "gte":
		if countable {
			return fmt.Sprintf("must contain at least %s %s", fe.Param(), unit)
		}
		return "must be at least " + fe.Param()
	case "max", "lte":
		if countable {
			return fmt.Sprintf("must contain at most %s %s", fe.Param(), unit)
		}
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "eqfield":
		return "must match " + lowerFirst(fe.Param())
	case "password_strength":
		return fmt.Sprintf(
			"must be %d-%d characters and contain upper and lower case letters, a digit and a special character",
			domain.MinPasswordLength, domain.MaxPasswordLength)
	default:
		return "is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
