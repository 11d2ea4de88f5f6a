package storage

import "crowdfunding-etl/models"

// TableWriter is the interface any export backend must satisfy. Each method
// returns the location it wrote to.
type TableWriter interface {
	WriteCategories(rows []models.Category) (string, error)
	WriteSubcategories(rows []models.Subcategory) (string, error)
	WriteCampaigns(rows []models.Campaign) (string, error)
	WriteContacts(rows []models.Contact) (string, error)
}

// ScriptWriter persists generated SQL text.
type ScriptWriter interface {
	WriteScript(name, text string) (string, error)
}
