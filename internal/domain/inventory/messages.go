package inventory

import "fmt"

// Field-scoped messages returned to API clients
const (
	MsgDigitsOnly           = "Must be a string of digits"
	MsgNameRequired         = "A name is required"
	MsgNameUsed             = "Name already used -- pick another"
	MsgDescriptionRequired  = "A description is required"
	MsgDescriptionUsed      = "Description already used -- pick another"
	MsgNoItemID             = "No item ID"
	MsgNoItemIDReceived     = "No item ID received"
	MsgItemNotFound         = "Item not found"
	MsgNoInvoiceID          = "No invoice ID"
	MsgInvoiceNotFound      = "Invoice not found"
	MsgLocationNotFound     = "Location not found"
	MsgRecordExists         = "Record already exists"
	MsgRecordNotFound       = "Record not found"
	MsgNoFileUploaded       = "No file uploaded"
	MsgNoIdentifier         = "No identifier received"
	MsgInvalidIdentifier    = "Not a valid identifier"
	MsgSupplierRequired     = "A supplier is required"
	MsgSupplierNotFound     = "Supplier not found"
	MsgInvoiceRequired      = "An invoice is required"
	MsgItemRequired         = "An item is required"
	MsgReceiptRequired      = "A receipt is required"
	MsgBarcodeNotLocationID = "Not a location identifier"
	MsgBarcodeUsed          = "Identifier already exists"
	MsgZip5                 = "Must be 5 digits"
)

// MsgInvoiceNumberNotFound reports a missing invoice by number
func MsgInvoiceNumberNotFound(id any) string {
	return fmt.Sprintf("Invoice #%v not found", id)
}

// MsgPurchaseNotFound reports a missing purchase
func MsgPurchaseNotFound(id any) string {
	return fmt.Sprintf("Purchase #%v not found", id)
}

// MsgReceiptNotFound reports a missing receipt
func MsgReceiptNotFound(id any) string {
	return fmt.Sprintf("Receipt #%v not found", id)
}

// MsgItemSaleNotFound reports a missing item sale
func MsgItemSaleNotFound(id any) string {
	return fmt.Sprintf("ItemSale #%v not found", id)
}

// MsgItemBarcodeNotFound reports a missing item by the identifier given
func MsgItemBarcodeNotFound(id any) string {
	return fmt.Sprintf("Item %v not found", id)
}

// MsgInvalidStatus rejects an unknown receipt status
func MsgInvalidStatus(status string) string {
	return fmt.Sprintf("'%s' is not a valid status", status)
}
