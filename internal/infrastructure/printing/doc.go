// Package printing turns report trees into PDF documents.
//
// A ReportTemplate lays the tree out as an HTML document and a PDFRenderer
// prints that document. ChromedpRenderer drives a headless Chrome through the
// DevTools protocol, either launched locally or reached at a remote URL.
//
// Example usage:
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{NoSandbox: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer renderer.Close()
//
//	printer := NewReportPrinter(NewReportTemplate(), renderer, logger)
//	result, err := printer.Print(ctx, tree)
package printing
