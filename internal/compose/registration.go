package compose

import (
	"strings"

	"github.com/ytget/scrolly/internal/model"
)

// RegistrationForm is the content of the sign-up screen
type RegistrationForm struct {
	Name     string
	Email    string
	Password string
	Image    *model.SelectedImage
	// ImageDataURI is sent inline as the profile picture
	ImageDataURI string
}

// AttachImage size-checks img before attaching it
func (f *RegistrationForm) AttachImage(img model.SelectedImage, dataURI string) error {
	if err := CheckImageSize(img.RawByteSize); err != nil {
		return err
	}
	f.Image = &img
	f.ImageDataURI = dataURI
	return nil
}

// Validate requires name, email and password
func (f *RegistrationForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Email) == "" || f.Password == "" {
		return &ValidationError{Message: MsgMissingFields}
	}
	return nil
}

// Request builds the registration body. The profile picture is empty when
// no image is attached.
func (f *RegistrationForm) Request() (model.RegisterRequest, error) {
	if err := f.Validate(); err != nil {
		return model.RegisterRequest{}, err
	}
	req := model.RegisterRequest{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	}
	if f.Image != nil {
		req.ProfilePic = f.ImageDataURI
	}
	return req, nil
}

// LoginRequest validates credentials and builds the login body
func LoginRequest(email, password string) (model.LoginRequest, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return model.LoginRequest{}, &ValidationError{Message: MsgMissingCredential}
	}
	return model.LoginRequest{Email: email, Password: password}, nil
}
