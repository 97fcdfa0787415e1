package model

// PayloadKind tags an EncodedRequest
type PayloadKind string

const (
	PayloadJSON      PayloadKind = "json"
	PayloadMultipart PayloadKind = "multipart"
)

// Content types for outgoing post bodies. The multipart value is nominal;
// the transport appends its own boundary parameter.
const (
	ContentTypeJSON      = "application/json"
	ContentTypeMultipart = "multipart/form-data"
)

// PostPayload is the JSON document sent to create a post
type PostPayload struct {
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl"`
	AuthorID string `json:"authorId"`
}

// ImagePart references a local image file to be streamed as a form part
type ImagePart struct {
	URI      string
	MimeType string
	FileName string
}

// MultipartForm holds the fields of a multipart post body
type MultipartForm struct {
	Text     string
	AuthorID string
	Image    ImagePart
}

// EncodedRequest is a post body ready for transport. Exactly one of JSON
// or Form is set, according to Kind.
type EncodedRequest struct {
	Kind PayloadKind
	JSON []byte
	Form *MultipartForm
}

// ContentType returns the nominal content type for the encoding
func (r EncodedRequest) ContentType() string {
	if r.Kind == PayloadMultipart {
		return ContentTypeMultipart
	}
	return ContentTypeJSON
}

// RegisterRequest is the body of an account registration
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	ProfilePic string `json:"profilePic"`
}

// LoginRequest is the body of a login call
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
