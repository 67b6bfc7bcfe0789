package inventory

import (
	"time"

	"github.com/stockroom/backend/internal/domain/query"
)

// Picture is an uploaded photo, optionally attached to an item.
// Photo is the object storage key of the file.
type Picture struct {
	ID       int64
	Photo    string
	ItemID   *string
	Uploaded time.Time
}

// Attach links the picture to an item; nil detaches it
func (p *Picture) Attach(itemBarcode *string) {
	p.ItemID = itemBarcode
}

// PictureFields is the filter table of pictures
var PictureFields = query.Table[Picture]{
	{Name: "id", Kind: query.KindInteger, Get: func(p *Picture) any { return p.ID }},
	{Name: "photo", Kind: query.KindText, Get: func(p *Picture) any { return p.Photo }},
	{Name: "item", Kind: query.KindRelation, Get: func(p *Picture) any { return p.ItemID }},
	{Name: "uploaded", Kind: query.KindDate, Get: func(p *Picture) any { return p.Uploaded }},
}
