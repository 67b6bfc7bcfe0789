// Package printing produces barcode labels for locations and items.
//
// ConsolePrinter writes one line per label to a writer. PDFLabelPrinter renders
// the label as HTML, prints it to PDF with headless Chrome and stores the PDF in
// object storage under <prefix><kind>/<barcode>.pdf.
package printing
