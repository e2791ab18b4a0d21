package fetch

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFInspector validates document bytes and returns the page count.
// Injectable so pipeline tests can run without real PDF fixtures.
type PDFInspector func(data []byte) (pages int, err error)

// InspectPDF checks that the downloaded bytes are a structurally valid PDF
// before they are handed to the table-extraction engine. The endpoint
// answers 200 with an HTML error page for some zone/date pairs; catching
// that here keeps garbage out of the extractor.
func InspectPDF(data []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("pdf validation: %w", err)
	}
	return ctx.PageCount, nil
}
