package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/ytget/scrolly/internal/model"
)

// CreatePost uploads an encoded post. JSON bodies are sent with an
// application/json content type; multipart bodies stream the image file
// and carry the boundary generated by the multipart writer.
func (c *Client) CreatePost(ctx context.Context, token string, req model.EncodedRequest) error {
	const path = "/api/posts/create"

	var err error
	switch req.Kind {
	case model.PayloadJSON:
		_, err = c.doRequest(ctx, http.MethodPost, path, token, model.ContentTypeJSON, bytes.NewReader(req.JSON))
	case model.PayloadMultipart:
		if req.Form == nil {
			return fmt.Errorf("api: multipart request without form")
		}
		err = c.postMultipart(ctx, path, token, req.Form)
	default:
		return fmt.Errorf("api: unknown payload kind %q", req.Kind)
	}
	if err != nil {
		return err
	}

	c.logger.Info("post created", "kind", req.Kind)
	return nil
}

func (c *Client) postMultipart(ctx context.Context, path, token string, form *model.MultipartForm) error {
	image, err := c.images.Open(form.Image.URI)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		defer image.Close()
		pw.CloseWithError(writeForm(writer, form, image))
	}()

	_, err = c.doRequest(ctx, http.MethodPost, path, token, writer.FormDataContentType(), pr)
	// Unblocks the writer goroutine if the transport stopped reading early.
	pr.Close()
	return err
}

func writeForm(writer *multipart.Writer, form *model.MultipartForm, image io.Reader) error {
	if err := writer.WriteField("text", form.Text); err != nil {
		return err
	}
	if err := writer.WriteField("authorId", form.AuthorID); err != nil {
		return err
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, form.Image.FileName))
	contentType := form.Image.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, image); err != nil {
		return fmt.Errorf("copy image: %w", err)
	}
	return writer.Close()
}

// Feed returns the posts of the main feed
func (c *Client) Feed(ctx context.Context, token string) ([]model.Post, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/posts/feed", token, "", nil)
	if err != nil {
		return nil, err
	}

	posts, shape, err := parseFeed(body)
	if err != nil {
		c.logger.Warn("feed response not recognised", "error", err)
		return nil, err
	}
	c.logger.Debug("feed loaded", "shape", shape, "posts", len(posts))
	return posts, nil
}

// LikePost toggles the caller's like on a post and returns the resulting
// list of liking user ids.
func (c *Client) LikePost(ctx context.Context, token string, postID model.ID) ([]model.ID, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/posts/"+url.PathEscape(postID.String())+"/like", token, "", nil)
	if err != nil {
		return nil, err
	}

	var response struct {
		Likes []model.ID `json:"likes"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &ParseError{What: "like", Err: err}
	}
	return response.Likes, nil
}

// CommentPost adds a comment to a post
func (c *Client) CommentPost(ctx context.Context, token string, postID model.ID, text string) (*model.Comment, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/api/posts/"+url.PathEscape(postID.String())+"/comment", token,
		map[string]string{"text": text})
	if err != nil {
		return nil, err
	}
	return parseComment(body)
}

// parseComment accepts {"comment": {...}} or a bare comment object
func parseComment(body []byte) (*model.Comment, error) {
	var wrapped struct {
		Comment *model.Comment `json:"comment"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, &ParseError{What: "comment", Err: err}
	}
	if wrapped.Comment != nil {
		return wrapped.Comment, nil
	}

	var bare model.Comment
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, &ParseError{What: "comment", Err: err}
	}
	if bare.Text == "" && bare.ID == "" {
		return nil, &ParseError{What: "comment"}
	}
	return &bare, nil
}
