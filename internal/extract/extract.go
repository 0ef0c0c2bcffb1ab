// Package extract decodes uploaded files into plain text for ingestion.
package extract

import (
	"bytes"
	"errors"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/chiheb08/vespa-vectorstore/internal/faults"
)

const pdfMagic = "%PDF-"

// IsPDF sniffs the upload: the filename extension or the file magic.
func IsPDF(filename string, data []byte) bool {
	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return true
	}
	return bytes.HasPrefix(data, []byte(pdfMagic))
}

// Text turns an upload into document text. PDFs are extracted per page and
// concatenated with blank-line separators; everything else is decoded as
// text, substituting invalid byte sequences rather than failing.
func Text(filename string, data []byte, pdfPassword string) (string, error) {
	if IsPDF(filename, data) {
		return pdfText(data, pdfPassword)
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

func pdfText(data []byte, password string) (string, error) {
	reader, err := openPDF(data, password)
	if err != nil {
		return "", err
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}

	return strings.Join(pages, "\n\n"), nil
}

func openPDF(data []byte, password string) (reader *pdf.Reader, err error) {
	// The parser panics on some corrupt inputs instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			reader = nil
			err = faults.Newf(faults.KindValidation, "unreadable PDF: %v", r)
		}
	}()

	// NewReaderEncrypted asks for the password until the callback returns
	// an empty string; handle the unencrypted case the same way by letting
	// the single attempt be the empty password.
	attempted := false
	pw := func() string {
		if attempted {
			return ""
		}
		attempted = true
		return password
	}

	reader, err = pdf.NewReaderEncrypted(bytes.NewReader(data), int64(len(data)), pw)
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			if password == "" {
				return nil, faults.New(faults.KindDecryptionFailure,
					"document is encrypted; supply pdf_password")
			}
			return nil, faults.New(faults.KindDecryptionFailure,
				"document could not be opened with the supplied pdf_password")
		}
		return nil, faults.Wrap(faults.KindValidation, "unreadable PDF", err)
	}

	return reader, nil
}
