package pocketbase

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Form builds a multipart/form-data body for record creation with file
// attachments. Methods chain; encoding errors are collected and surfaced when
// the form is sent.
type Form struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	err    error
}

// NewForm creates an empty multipart form.
func NewForm() *Form {
	form := &Form{}
	form.writer = multipart.NewWriter(&form.buf)

	return form
}

// Text adds a plain text field.
func (f *Form) Text(name, value string) *Form {
	if f.err != nil {
		return f
	}

	f.err = f.writer.WriteField(name, value)

	return f
}

// File adds a file field with content type application/octet-stream.
func (f *Form) File(name, filename string, content io.Reader) *Form {
	return f.FileWithType(name, filename, "application/octet-stream", content)
}

// FileWithType adds a file field with an explicit content type.
func (f *Form) FileWithType(name, filename, contentType string, content io.Reader) *Form {
	if f.err != nil {
		return f
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, escapeQuotes(name), escapeQuotes(filename)))
	header.Set("Content-Type", contentType)

	part, err := f.writer.CreatePart(header)
	if err != nil {
		f.err = err

		return f
	}

	if _, err := io.Copy(part, content); err != nil {
		f.err = err
	}

	return f
}

// encode finalizes the form and returns the body and its content type.
func (f *Form) encode() (io.Reader, string, error) {
	if f.err != nil {
		return nil, "", fmt.Errorf("encoding multipart form: %w", f.err)
	}

	if err := f.writer.Close(); err != nil {
		return nil, "", fmt.Errorf("encoding multipart form: %w", err)
	}

	return &f.buf, f.writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
