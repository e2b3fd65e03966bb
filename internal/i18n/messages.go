package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// Message keys are the English strings.
const (
	MsgArchiveTitle       = "The Archive"
	MsgArchiveDescription = "A curated selection of vintage timepieces, available and sold."
	MsgPriceOnRequest     = "Price on request"
	MsgAvailable          = "Available"
	MsgSold               = "Sold"
	MsgReserved           = "Reserved"
	MsgSoldOn             = "Sold on %s"
	MsgEmptyArchive       = "No watches in the archive yet."
)

var italian = map[string]string{
	MsgArchiveTitle:       "L'Archivio",
	MsgArchiveDescription: "Una selezione curata di orologi d'epoca, disponibili e venduti.",
	MsgPriceOnRequest:     "Prezzo su richiesta",
	MsgAvailable:          "Disponibile",
	MsgSold:               "Venduto",
	MsgReserved:           "Riservato",
	MsgSoldOn:             "Venduto il %s",
	MsgEmptyArchive:       "Nessun orologio in archivio.",

	"January":   "gennaio",
	"February":  "febbraio",
	"March":     "marzo",
	"April":     "aprile",
	"May":       "maggio",
	"June":      "giugno",
	"July":      "luglio",
	"August":    "agosto",
	"September": "settembre",
	"October":   "ottobre",
	"November":  "novembre",
	"December":  "dicembre",
}

var messages = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range italian {
		if err := b.SetString(language.Italian, key, msg); err != nil {
			panic(err)
		}
	}
	return b
}
