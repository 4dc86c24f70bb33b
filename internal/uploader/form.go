package uploader

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"

	"uploadtest/internal/model"
)

const (
	// DocumentField is the multipart part carrying the attachment.
	DocumentField = "document"
	// DocumentFilename is the filename announced for the attachment, whatever the source file is called.
	DocumentFilename = "test_document.jpg"
	// DocumentContentType is announced for every attachment.
	DocumentContentType = "image/jpeg"
)

// WriteForm encodes the application fields, then the optional document, into w.
// It returns the multipart Content-Type including the boundary.
func WriteForm(w io.Writer, app model.Application, document io.Reader) (string, error) {
	mw := multipart.NewWriter(w)

	for _, f := range app.Fields {
		if err := mw.WriteField(f.Name, f.Value); err != nil {
			return "", fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}

	if document != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, DocumentField, DocumentFilename))
		h.Set("Content-Type", DocumentContentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			return "", fmt.Errorf("create document part: %w", err)
		}
		if _, err := io.Copy(part, document); err != nil {
			return "", fmt.Errorf("copy document: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}
	return mw.FormDataContentType(), nil
}
