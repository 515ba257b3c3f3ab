package changelog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/pelletier/go-toml/v2"
)

// referencePattern matches issue references such as smithy-rs#123.
var referencePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+#\d+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("reference", func(fl validator.FieldLevel) bool {
		return referencePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// ValidationError describes one bad entry. Field locates it, for example
// smithy-rs[2].author.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors collects every problem found in one queue.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// LoadPending reads and validates the queue at path. A missing file is
// returned as an error wrapping fs.ErrNotExist so callers can decide
// whether that is acceptable.
func LoadPending(path string) (*Pending, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pending changelog: %w", err)
	}
	defer f.Close()

	return ParsePending(f)
}

// ParsePending decodes and validates a queue. Unknown top-level tables are
// unknown targets and are rejected, as are unknown entry fields.
func ParsePending(r io.Reader) (*Pending, error) {
	var p Pending

	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, decodeError(err)
	}

	for i := range p.Smithy {
		p.Smithy[i].Target = TargetSmithy
	}
	for i := range p.SDK {
		p.SDK[i].Target = TargetSDK
	}

	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks every entry and returns ValidationErrors naming each bad
// entry, or nil.
func Validate(p *Pending) error {
	var errs ValidationErrors
	for _, target := range Targets {
		for i, e := range p.Entries(target) {
			errs = append(errs, validateEntry(e, fmt.Sprintf("%s[%d]", target, i))...)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateEntry(e Entry, at string) []*ValidationError {
	err := validate.Struct(e)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []*ValidationError{{Field: at, Message: err.Error()}}
	}

	out := make([]*ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		out = append(out, &ValidationError{
			Field:   at + "." + field,
			Message: entryMessage(fe),
		})
	}
	return out
}

func entryMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "min":
		return "needs at least one reference"
	case "reference":
		return fmt.Sprintf("%q is not a valid reference (expected repo#number, e.g. smithy-rs#123)", fe.Value())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// decodeError turns go-toml errors into messages that point at the queue.
func decodeError(err error) error {
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		var errs ValidationErrors
		for i := range strict.Errors {
			key := strict.Errors[i].Key()
			if len(key) == 1 {
				errs = append(errs, &ValidationError{
					Field:   key[0],
					Message: fmt.Sprintf("unknown changelog target (expected %s or %s)", TargetSmithy, TargetSDK),
				})
				continue
			}
			errs = append(errs, &ValidationError{
				Field:   strings.Join(key, "."),
				Message: "unknown field",
			})
		}
		return errs
	}

	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Errorf("parsing TOML at line %d, column %d: %w", row, col, err)
	}
	return fmt.Errorf("parsing TOML: %w", err)
}
