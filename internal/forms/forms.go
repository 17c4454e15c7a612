package forms

import (
	"errors"
	"net/url"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
)

// Kinds of submission.
const (
	KindContact     = "contact"
	KindApplication = "application"
	KindNewsletter  = "newsletter"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{6,19}$`)

// Contact is the general enquiry form.
type Contact struct {
	Name     string `form:"name" validate:"required,min=2,max=80"`
	Email    string `form:"email" validate:"required,email"`
	Phone    string `form:"phone" validate:"omitempty,phone"`
	Subject  string `form:"subject" validate:"required,oneof=general programs partnerships media careers"`
	Message  string `form:"message" validate:"required,min=10,max=2000"`
	Nickname string `form:"nickname"`
}

// Application is a program application.
type Application struct {
	Program     string `form:"program" validate:"required,program"`
	FounderName string `form:"founder_name" validate:"required,min=2,max=80"`
	Email       string `form:"email" validate:"required,email"`
	Company     string `form:"company" validate:"required,min=2,max=120"`
	Stage       string `form:"stage" validate:"required,oneof=idea mvp revenue scaling"`
	Website     string `form:"website" validate:"omitempty,url"`
	Pitch       string `form:"pitch" validate:"required,min=50,max=3000"`
	Consent     bool   `form:"consent" validate:"required"`
	Nickname    string `form:"nickname"`
}

// Newsletter is the footer subscription form.
type Newsletter struct {
	Email    string `form:"email" validate:"required,email"`
	Nickname string `form:"nickname"`
}

// Submittable is implemented by every form that can be persisted.
type Submittable interface {
	Kind() string
	Contact() (name, email string)
	Fields() map[string]string
	Spam() bool
}

func (Contact) Kind() string                    { return KindContact }
func (c Contact) Contact() (string, string)     { return c.Name, c.Email }
func (c Contact) Spam() bool                    { return c.Nickname != "" }
func (Application) Kind() string                { return KindApplication }
func (a Application) Contact() (string, string) { return a.FounderName, a.Email }
func (a Application) Spam() bool                { return a.Nickname != "" }
func (Newsletter) Kind() string                 { return KindNewsletter }
func (n Newsletter) Contact() (string, string)  { return "", n.Email }
func (n Newsletter) Spam() bool                 { return n.Nickname != "" }
func (n Newsletter) Fields() map[string]string  { return map[string]string{} }

// Fields returns the non-identity values to persist.
func (c Contact) Fields() map[string]string {
	return map[string]string{"phone": c.Phone, "subject": c.Subject, "message": c.Message}
}

// Fields returns the non-identity values to persist.
func (a Application) Fields() map[string]string {
	return map[string]string{
		"program": a.Program,
		"company": a.Company,
		"stage":   a.Stage,
		"website": a.Website,
		"pitch":   a.Pitch,
		"consent": strconv.FormatBool(a.Consent),
	}
}

// FieldError is a single invalid field. Key is an i18n message key and Param
// the rule argument, if any.
type FieldError struct {
	Field string
	Key   string
	Param string
}

// Errors maps form field names to their first failure.
type Errors map[string]FieldError

// Has reports whether field failed validation.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Fields lists invalid field names in sorted order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Validator decodes and validates submitted forms.
type Validator struct {
	validate *validator.Validate
	decoder  *form.Decoder
	programs []string
}

// New builds a Validator that accepts the given program slugs.
func New(programs []string) *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		decoder:  form.NewDecoder(),
		programs: slices.Clone(programs),
	}
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("program", func(fl validator.FieldLevel) bool {
		return slices.Contains(v.programs, fl.Field().String())
	})
	v.decoder.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		return strings.TrimSpace(vals[0]), nil
	}, "")
	v.decoder.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		switch strings.ToLower(strings.TrimSpace(vals[0])) {
		case "on", "true", "1", "yes":
			return true, nil
		}
		return false, nil
	}, false)
	return v
}

// Decode fills dst from values and validates it. A nil result means valid.
func (v *Validator) Decode(values url.Values, dst any) (Errors, error) {
	if err := v.decoder.Decode(dst, values); err != nil {
		return nil, err
	}
	err := v.validate.Struct(dst)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	out := Errors{}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = FieldError{Field: fe.Field(), Key: messageKey(fe), Param: fe.Param()}
	}
	return out, nil
}

func messageKey(fe validator.FieldError) string {
	tag := fe.Tag()
	if tag == "required" && fe.Kind().String() == "bool" {
		return "form.error.consent"
	}
	switch tag {
	case "min", "max":
		if fe.Kind().String() == "string" {
			return "form.error." + tag + "_len"
		}
	}
	return "form.error." + tag
}
