package profile

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/gradnet/backend/core"
)

func newTestValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	return validate, translator
}

func TestUpsertProfileValidate(t *testing.T) {
	validate, translator := newTestValidator()

	tests := []struct {
		name    string
		up      UpsertProfile
		wantErr bool
	}{
		{name: "minimal", up: UpsertProfile{FullName: "Ada Lovelace"}},
		{name: "full name required", up: UpsertProfile{GraduationYear: "2020"}, wantErr: true},
		{name: "whitespace name is empty", up: UpsertProfile{FullName: "   "}, wantErr: true},
		{name: "valid year", up: UpsertProfile{FullName: "Ada", GraduationYear: "2020"}},
		{name: "empty year ok", up: UpsertProfile{FullName: "Ada", GraduationYear: ""}},
		{name: "year not a number", up: UpsertProfile{FullName: "Ada", GraduationYear: "soon"}, wantErr: true},
		{name: "year out of range", up: UpsertProfile{FullName: "Ada", GraduationYear: "1024"}, wantErr: true},
		{name: "valid linkedin url", up: UpsertProfile{FullName: "Ada", LinkedinURL: "https://linkedin.com/in/ada"}},
		{name: "bad linkedin url", up: UpsertProfile{FullName: "Ada", LinkedinURL: "not a url"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.up.Validate(validate, translator)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpsertProfileYear(t *testing.T) {
	up := UpsertProfile{GraduationYear: "2019"}
	if got := up.Year(); got == nil || *got != 2019 {
		t.Errorf("Year() = %v, want 2019", got)
	}

	up.GraduationYear = ""
	if got := up.Year(); got != nil {
		t.Errorf("Year() = %v, want nil", *got)
	}
}
