// Package pdftest builds small, valid PDF files for tests that must not
// depend on a browser.
package pdftest

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Pages returns a PDF with n US Letter pages. The first page's content
// stream carries label, so documents built with different labels differ;
// the others are blank. n < 1 is treated as 1. It panics if pdfcpu cannot
// build the document.
func Pages(n int, label string) []byte {
	if n < 1 {
		n = 1
	}

	pdf, err := seed(label)
	if err != nil {
		panic(fmt.Sprintf("pdftest: seed document: %v", err))
	}

	for range n - 1 {
		var out bytes.Buffer
		if err := api.InsertPages(bytes.NewReader(pdf), &out, []string{"1"}, false, nil, nil); err != nil {
			panic(fmt.Sprintf("pdftest: inserting page: %v", err))
		}
		pdf = out.Bytes()
	}
	return pdf
}

// seed writes a one-page document whose content stream is a comment naming
// label.
func seed(label string) ([]byte, error) {
	xRefTable, err := pdfcpu.CreateXRefTableWithRootDict()
	if err != nil {
		return nil, err
	}
	rootDict, err := xRefTable.Catalog()
	if err != nil {
		return nil, err
	}

	page := model.Page{
		MediaBox: types.RectForFormat("Letter"),
		Fm:       model.FontMap{},
		Buf:      bytes.NewBufferString(fmt.Sprintf("%% %s\n", label)),
	}
	if err := pdfcpu.AddPageTreeWithSamplePage(xRefTable, rootDict, page); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := api.WriteContext(pdfcpu.CreateContext(xRefTable, nil), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
