package compose

import (
	"testing"

	"github.com/ytget/scrolly/internal/model"
)

func TestRegistrationFormValidate(t *testing.T) {
	tests := []struct {
		name    string
		form    RegistrationForm
		wantErr bool
	}{
		{"complete", RegistrationForm{Name: "Ann", Email: "a@b.c", Password: "pw"}, false},
		{"missing name", RegistrationForm{Email: "a@b.c", Password: "pw"}, true},
		{"blank email", RegistrationForm{Name: "Ann", Email: "  ", Password: "pw"}, true},
		{"missing password", RegistrationForm{Name: "Ann", Email: "a@b.c"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err.Error() != MsgMissingFields {
				t.Errorf("message = %q, expected %q", err.Error(), MsgMissingFields)
			}
		})
	}
}

func TestRegistrationFormRequest(t *testing.T) {
	form := RegistrationForm{Name: " Ann ", Email: "a@b.c", Password: "pw"}

	req, err := form.Request()
	if err != nil {
		t.Fatal(err)
	}
	if req.Name != "Ann" || req.ProfilePic != "" {
		t.Errorf("Request() = %+v", req)
	}

	if err := form.AttachImage(model.SelectedImage{RawByteSize: 100}, "data:image/png;base64,AA"); err != nil {
		t.Fatal(err)
	}
	req, _ = form.Request()
	if req.ProfilePic != "data:image/png;base64,AA" {
		t.Errorf("ProfilePic = %q", req.ProfilePic)
	}

	if err := form.AttachImage(model.SelectedImage{RawByteSize: 4 * 1024 * 1024}, "data:image/png;base64,BB"); !IsValidation(err) {
		t.Errorf("AttachImage() error = %v, expected validation error", err)
	}
	if form.ImageDataURI != "data:image/png;base64,AA" {
		t.Error("rejected image should not replace the attached one")
	}
}

func TestLoginRequest(t *testing.T) {
	if _, err := LoginRequest("", "pw"); err == nil || err.Error() != MsgMissingCredential {
		t.Errorf("LoginRequest() error = %v", err)
	}
	if _, err := LoginRequest("a@b.c", "   "); err == nil {
		t.Error("blank password should be rejected")
	}
	req, err := LoginRequest(" a@b.c ", "pw")
	if err != nil || req.Email != "a@b.c" || req.Password != "pw" {
		t.Errorf("LoginRequest() = %+v, %v", req, err)
	}
}
