// Package validation is the single gate a candidate payload must pass
// before it reaches the store: ParseUser either returns the normalized
// record fields, correctly typed, or one ValidationError listing every
// violated rule.
//
// The rules, each checked independently per field:
//
//	name  — present, ≥3 characters, letters and whitespace only
//	email — present, valid email syntax
//	age   — present, integer within [0, 120]
//
// It is built on go-playground/validator (the validate:"..." tags on
// types.UserPayload). The library checks every field in a single pass and
// hands back one FieldError per failing field, which is what lets the
// response enumerate all problems at once instead of one at a time.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/aanand-mishra/users-api/internal/types"

	"github.com/go-playground/validator/v10"
)

// alphaSpaceRegex backs the custom alpha_space rule: one or more Unicode
// letters and/or whitespace, nothing else. validator has no built-in
// "alpha" variant that admits spaces, and names like "Juan Perez" need
// one.
var alphaSpaceRegex = regexp.MustCompile(`^[\p{L}\s]+$`)

// validate is the shared validator instance. validator caches struct
// metadata internally, so the package-wide instance is both the
// recommended usage and the place to hang the custom configuration below.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report violations under the json field name ("field name is
	// required"), not the Go field name ("field Name is required") —
	// the caller knows the payload by its json keys.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("alpha_space", func(fl validator.FieldLevel) bool {
		return alphaSpaceRegex.MatchString(fl.Field().String())
	}); err != nil {
		// Registration only fails on an empty tag name; reaching this
		// is a programming error, not a runtime condition.
		panic(fmt.Sprintf("validation: registering alpha_space: %v", err))
	}

	return v
}

// ParseUser checks every rule against the payload.
//
// On success it returns a types.User holding exactly the three validated
// fields (the id stays empty — assigning ids is the store's job).
//
// On failure it returns a ValidationError whose message joins one
// human-readable sentence per violated field with ", ", e.g.
//
//	"field name is required, field age must be at most 120"
func ParseUser(payload types.UserPayload) (types.User, *types.Error) {
	if err := validate.Struct(payload); err != nil {
		// Struct only returns a non-ValidationErrors value when handed
		// something that is not a struct, which cannot happen here, so
		// the assertion is safe.
		validateErrs := err.(validator.ValidationErrors)
		return types.User{}, types.ValidationError(messages(validateErrs))
	}

	// Every pointer is non-nil once the "required" rules have passed.
	return types.User{
		Name:  *payload.Name,
		Email: *payload.Email,
		Age:   *payload.Age,
	}, nil
}

// messages converts validator's field errors into the comma-joined,
// human-readable report the API contract promises. One case per tag in
// use on types.UserPayload, plus a catch-all so a future tag can never
// leak a raw validator message to a caller.
func messages(errs validator.ValidationErrors) string {
	errMessages := make([]string, 0, len(errs))

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "email":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a valid email address", e.Field()))
		case "min":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at least %s characters long",
					e.Field(), e.Param()))
		case "alpha_space":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must contain only letters and spaces",
					e.Field()))
		case "gte":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at least %s", e.Field(), e.Param()))
		case "lte":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at most %s", e.Field(), e.Param()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return strings.Join(errMessages, ", ")
}
