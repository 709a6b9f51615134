package validators

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

type passwordInput struct {
	Password string `json:"password" validate:"hasupper,haslower,hasdigit,hasspecial,nospaces"`
}

type secretInput struct {
	Secret string `json:"secret" validate:"maxbytes=8"`
}

func TestPasswordTags(t *testing.T) {
	v := New()

	tests := []struct {
		password string
		failing  string
	}{
		{"Abcdef1!", ""},
		{"abcdef1!", "hasupper"},
		{"ABCDEF1!", "haslower"},
		{"Abcdefg!", "hasdigit"},
		{"Abcdefg1", "hasspecial"},
		{"Abc def1!", "nospaces"},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := v.Struct(&passwordInput{Password: tt.password})
			if tt.failing == "" {
				if err != nil {
					t.Errorf("Struct() error = %v, want nil", err)
				}
				return
			}

			var ve validator.ValidationErrors
			if !errors.As(err, &ve) {
				t.Fatalf("Struct() error = %v, want validation errors", err)
			}
			if ve[0].Tag() != tt.failing {
				t.Errorf("failing tag = %s, want %s", ve[0].Tag(), tt.failing)
			}
		})
	}
}

func TestMaxBytes(t *testing.T) {
	v := New()

	tests := []struct {
		name   string
		secret string
		ok     bool
	}{
		{"ascii at the limit", "abcdefgh", true},
		{"ascii over the limit", "abcdefghi", false},
		{"multibyte under the rune count but over the byte count", "éééée", false},
		{"multibyte at the limit", "éééé", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(&secretInput{Secret: tt.secret})
			if tt.ok {
				if err != nil {
					t.Errorf("Struct() error = %v, want nil", err)
				}
				return
			}

			var ve validator.ValidationErrors
			if !errors.As(err, &ve) {
				t.Fatalf("Struct() error = %v, want validation errors", err)
			}
			if ve[0].Tag() != "maxbytes" {
				t.Errorf("failing tag = %s, want maxbytes", ve[0].Tag())
			}
			if ve[0].Field() != "secret" {
				t.Errorf("Field() = %s, want the JSON name secret", ve[0].Field())
			}
		})
	}
}
