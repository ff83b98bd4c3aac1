package products

import "github.com/dmitrijs2005/storefront/internal/models"

// Demo categories.
const (
	CategoryRings     int64 = 1
	CategoryNecklaces int64 = 2
	CategoryEarrings  int64 = 3
	CategoryBracelets int64 = 4
)

// DemoCatalogue is the catalogue the development server starts with.
func DemoCatalogue() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Solitaire Ring", Description: "18k white gold ring with a 0.5ct diamond", Price: 1299, CategoryID: CategoryRings},
		{ID: 2, Name: "Twisted Band Ring", Description: "Sterling silver twisted band", Price: 89, CategoryID: CategoryRings},
		{ID: 3, Name: "Sapphire Halo Ring", Description: "Oval sapphire surrounded by diamonds", Price: 1850, CategoryID: CategoryRings},
		{ID: 4, Name: "Pearl Pendant", Description: "Freshwater pearl on a silver chain", Price: 149, CategoryID: CategoryNecklaces},
		{ID: 5, Name: "Gold Rope Chain", Description: "14k yellow gold rope chain, 50cm", Price: 620, CategoryID: CategoryNecklaces},
		{ID: 6, Name: "Emerald Drop Necklace", Description: "Pear cut emerald pendant", Price: 990, CategoryID: CategoryNecklaces},
		{ID: 7, Name: "Diamond Studs", Description: "Pair of 0.25ct diamond stud earrings", Price: 540, CategoryID: CategoryEarrings},
		{ID: 8, Name: "Silver Hoops", Description: "Polished sterling silver hoop earrings", Price: 59, CategoryID: CategoryEarrings},
		{ID: 9, Name: "Ruby Drop Earrings", Description: "Ruby drops set in rose gold", Price: 760, CategoryID: CategoryEarrings},
		{ID: 10, Name: "Tennis Bracelet", Description: "Line of round diamonds in white gold", Price: 2400, CategoryID: CategoryBracelets},
		{ID: 11, Name: "Charm Bracelet", Description: "Silver bracelet with three charms", Price: 120, CategoryID: CategoryBracelets},
		{ID: 12, Name: "Gold Bangle", Description: "Hammered 14k gold bangle", Price: 480, CategoryID: CategoryBracelets},
	}
}
