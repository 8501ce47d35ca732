package chromepdf

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// aesKeyLength is the key size used for password protection.
const aesKeyLength = 256

var disableConfigDir sync.Once

// pdfConfig returns a fresh pdfcpu configuration. pdfcpu would otherwise
// create a config directory in the user's home on first use.
func pdfConfig() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	return model.NewDefaultConfiguration()
}

// Document is a PDF being assembled from one or more renders. It is owned by
// the caller and is not safe for concurrent use. Once encrypted it is sealed
// and rejects further pages.
type Document struct {
	data      []byte
	pages     int
	encrypted bool
}

// NewDocument starts a document from a complete PDF.
func NewDocument(pdf []byte) (*Document, error) {
	n, err := countPages(pdf)
	if err != nil {
		return nil, err
	}
	return &Document{data: bytes.Clone(pdf), pages: n}, nil
}

// Append adds every page of pdf after the document's current pages. On error
// the document is unchanged.
func (d *Document) Append(pdf []byte) error {
	if d.encrypted {
		return ErrDocumentSealed
	}
	n, err := countPages(pdf)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	sources := []io.ReadSeeker{bytes.NewReader(d.data), bytes.NewReader(pdf)}
	if err := api.MergeRaw(sources, &buf, false, pdfConfig()); err != nil {
		return fmt.Errorf("%w: %v", ErrMerge, err)
	}

	d.data = buf.Bytes()
	d.pages += n
	return nil
}

// Encrypt protects the document with AES-256, using password as both the
// user and the owner password. The document is sealed afterwards.
func (d *Document) Encrypt(password string) error {
	if d.encrypted {
		return ErrDocumentSealed
	}
	if password == "" {
		return fmt.Errorf("%w: empty password", ErrEncrypt)
	}

	var buf bytes.Buffer
	conf := model.NewAESConfiguration(password, password, aesKeyLength)
	if err := api.Encrypt(bytes.NewReader(d.data), &buf, conf); err != nil {
		return fmt.Errorf("%w: %v", ErrEncrypt, err)
	}

	d.data = buf.Bytes()
	d.encrypted = true
	return nil
}

// PageCount returns the number of pages assembled so far.
func (d *Document) PageCount() int {
	return d.pages
}

// Encrypted reports whether Encrypt has been applied.
func (d *Document) Encrypted() bool {
	return d.encrypted
}

// Bytes returns a copy of the serialized PDF.
func (d *Document) Bytes() []byte {
	return bytes.Clone(d.data)
}

// WriteTo writes the serialized PDF to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.data)
	return int64(n), err
}

// Assemble turns one render's output into a document.
//
// With an accumulator, the pages of pdf are appended to acc and acc is
// returned; password is ignored and serialization is left to the caller.
// Without one, a new document is built from pdf and encrypted when password
// is not empty.
//
// Errors wrap ErrAssemblyFailure and leave acc unchanged.
func Assemble(pdf []byte, acc *Document, password string) (*Document, error) {
	if acc != nil {
		if err := acc.Append(pdf); err != nil {
			return nil, err
		}
		return acc, nil
	}

	doc, err := NewDocument(pdf)
	if err != nil {
		return nil, err
	}
	if password != "" {
		if err := doc.Encrypt(password); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// countPages parses pdf and returns its page count.
func countPages(pdf []byte) (int, error) {
	if !bytes.HasPrefix(pdf, pdfMagic) {
		return 0, fmt.Errorf("%w: missing %s header", ErrInvalidPDF, pdfMagic)
	}
	n, err := api.PageCount(bytes.NewReader(pdf), pdfConfig())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: no pages", ErrInvalidPDF)
	}
	return n, nil
}
