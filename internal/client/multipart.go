// AngelaMos | 2026
// multipart.go

package client

import (
	"fmt"
	"io"
	"mime/multipart"
)

type formField struct {
	name  string
	value string
}

type formFile struct {
	field    string
	filename string
	content  io.Reader
}

// Multipart is a request body streamed as multipart/form-data. The boundary
// is chosen by the encoder and carried in the Content-Type header.
type Multipart struct {
	fields []formField
	files  []formFile
}

func NewMultipart() *Multipart {
	return &Multipart{}
}

func (m *Multipart) Field(name, value string) *Multipart {
	m.fields = append(m.fields, formField{name: name, value: value})
	return m
}

func (m *Multipart) File(field, filename string, content io.Reader) *Multipart {
	m.files = append(m.files, formFile{field: field, filename: filename, content: content})
	return m
}

func (m *Multipart) encode() (io.Reader, string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(m.write(mw))
	}()

	return pr, mw.FormDataContentType(), nil
}

func (m *Multipart) write(mw *multipart.Writer) error {
	for _, f := range m.fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return fmt.Errorf("write field %s: %w", f.name, err)
		}
	}
	for _, f := range m.files {
		part, err := mw.CreateFormFile(f.field, f.filename)
		if err != nil {
			return fmt.Errorf("create form file %s: %w", f.field, err)
		}
		if _, err := io.Copy(part, f.content); err != nil {
			return fmt.Errorf("copy form file %s: %w", f.field, err)
		}
	}
	return mw.Close()
}
