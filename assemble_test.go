package chromepdf

// Notes:
// - Inputs come from internal/pdftest, so these tests need no browser.
// - "Openable" means pdfcpu can read the page count with no password set.

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/alnah/go-chromepdf/internal/pdftest"
)

// openPageCount reads data's page count with an optional user password.
func openPageCount(data []byte, password string) (int, error) {
	conf := pdfConfig()
	if password != "" {
		conf.UserPW = password
		conf.OwnerPW = password
	}
	return api.PageCount(bytes.NewReader(data), conf)
}

// ---------------------------------------------------------------------------
// TestAssemble - new documents
// ---------------------------------------------------------------------------

func TestAssemble_NoPassword(t *testing.T) {
	t.Parallel()

	doc, err := Assemble(pdftest.Pages(2, "plain"), nil, "")
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	if doc.Encrypted() {
		t.Error("document encrypted without a password")
	}
	if doc.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2", doc.PageCount())
	}

	n, err := openPageCount(doc.Bytes(), "")
	if err != nil {
		t.Fatalf("document not openable without password: %v", err)
	}
	if n != 2 {
		t.Errorf("opened page count = %d, want 2", n)
	}
}

func TestAssemble_Password(t *testing.T) {
	t.Parallel()

	doc, err := Assemble(pdftest.Pages(3, "secret"), nil, "s3cret")
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	if !doc.Encrypted() {
		t.Fatal("Encrypted() = false, want true")
	}

	data := doc.Bytes()
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("encrypted output lost the PDF header")
	}
	if !bytes.Contains(data, []byte("/Encrypt")) {
		t.Error("encrypted output has no /Encrypt dictionary")
	}

	if _, err := openPageCount(data, ""); err == nil {
		t.Error("encrypted document opened without a password")
	}
	if _, err := openPageCount(data, "wrong"); err == nil {
		t.Error("encrypted document opened with the wrong password")
	}

	n, err := openPageCount(data, "s3cret")
	if err != nil {
		t.Fatalf("encrypted document not openable with its password: %v", err)
	}
	if n != 3 {
		t.Errorf("opened page count = %d, want 3", n)
	}
}

func TestAssemble_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
	}{
		{name: "nil", input: nil},
		{name: "html error page", input: []byte("<html><body>502</body></html>")},
		{name: "header only", input: []byte("%PDF-1.7\n")},
		{name: "truncated", input: pdftest.Pages(1, "cut")[:60]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := Assemble(tt.input, nil, "")
			if !errors.Is(err, ErrInvalidPDF) || !errors.Is(err, ErrAssemblyFailure) {
				t.Errorf("Assemble() error = %v, want ErrInvalidPDF", err)
			}
			if doc != nil {
				t.Error("Assemble() returned a document alongside an error")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestAssemble - accumulator
// ---------------------------------------------------------------------------

func TestAssemble_AccumulatesPages(t *testing.T) {
	t.Parallel()

	acc, err := NewDocument(pdftest.Pages(1, "cover"))
	if err != nil {
		t.Fatalf("NewDocument() error: %v", err)
	}

	first, err := Assemble(pdftest.Pages(2, "first"), acc, "")
	if err != nil {
		t.Fatalf("first Assemble() error: %v", err)
	}
	second, err := Assemble(pdftest.Pages(3, "second"), acc, "ignored")
	if err != nil {
		t.Fatalf("second Assemble() error: %v", err)
	}

	if first != acc || second != acc {
		t.Error("Assemble() did not return the accumulator handle")
	}
	if acc.PageCount() != 6 {
		t.Errorf("PageCount() = %d, want 6", acc.PageCount())
	}
	if acc.Encrypted() {
		t.Error("accumulator encrypted by Assemble")
	}

	n, err := openPageCount(acc.Bytes(), "")
	if err != nil {
		t.Fatalf("merged document not openable: %v", err)
	}
	if n != 6 {
		t.Errorf("merged page count = %d, want 6", n)
	}
}

func TestAssemble_InvalidInputLeavesAccumulator(t *testing.T) {
	t.Parallel()

	acc, err := NewDocument(pdftest.Pages(2, "base"))
	if err != nil {
		t.Fatalf("NewDocument() error: %v", err)
	}
	before := acc.Bytes()

	if _, err := Assemble([]byte("not a pdf"), acc, ""); !errors.Is(err, ErrInvalidPDF) {
		t.Fatalf("Assemble() error = %v, want ErrInvalidPDF", err)
	}
	if acc.PageCount() != 2 {
		t.Errorf("PageCount() = %d after failed append, want 2", acc.PageCount())
	}
	if !bytes.Equal(acc.Bytes(), before) {
		t.Error("accumulator bytes changed after failed append")
	}
}

// ---------------------------------------------------------------------------
// TestDocument
// ---------------------------------------------------------------------------

func TestDocument_SealedAfterEncrypt(t *testing.T) {
	t.Parallel()

	doc, err := NewDocument(pdftest.Pages(1, "seal"))
	if err != nil {
		t.Fatalf("NewDocument() error: %v", err)
	}
	if err := doc.Encrypt("pw"); err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}

	if err := doc.Append(pdftest.Pages(1, "more")); !errors.Is(err, ErrDocumentSealed) {
		t.Errorf("Append() error = %v, want ErrDocumentSealed", err)
	}
	if err := doc.Encrypt("pw"); !errors.Is(err, ErrDocumentSealed) {
		t.Errorf("second Encrypt() error = %v, want ErrDocumentSealed", err)
	}
	if _, err := Assemble(pdftest.Pages(1, "more"), doc, ""); !errors.Is(err, ErrAssemblyFailure) {
		t.Errorf("Assemble() into sealed document error = %v, want ErrAssemblyFailure", err)
	}
}

func TestDocument_EncryptEmptyPassword(t *testing.T) {
	t.Parallel()

	doc, err := NewDocument(pdftest.Pages(1, "x"))
	if err != nil {
		t.Fatalf("NewDocument() error: %v", err)
	}
	if err := doc.Encrypt(""); !errors.Is(err, ErrEncrypt) {
		t.Errorf("Encrypt(\"\") error = %v, want ErrEncrypt", err)
	}
	if doc.Encrypted() {
		t.Error("document sealed by a failed Encrypt")
	}
}

func TestDocument_BytesIsACopy(t *testing.T) {
	t.Parallel()

	input := pdftest.Pages(1, "copy")
	doc, err := NewDocument(input)
	if err != nil {
		t.Fatalf("NewDocument() error: %v", err)
	}

	input[0] = 'X'
	out := doc.Bytes()
	out[1] = 'X'

	if !bytes.HasPrefix(doc.Bytes(), []byte("%PDF-")) {
		t.Error("document shares memory with caller slices")
	}
}

func TestDocument_WriteTo(t *testing.T) {
	t.Parallel()

	doc, err := NewDocument(pdftest.Pages(1, "w"))
	if err != nil {
		t.Fatalf("NewDocument() error: %v", err)
	}

	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error: %v", err)
	}
	if n != int64(buf.Len()) || !bytes.Equal(buf.Bytes(), doc.Bytes()) {
		t.Error("WriteTo() output differs from Bytes()")
	}
}
