package m_reference

// Reference data tables: categories, providers and units of measure.
const (
	CategoriesTable = "categories"
	ProvidersTable  = "providers"
	UnitsTable      = "units"

	ColCategoryID = "category_id"
	ColProviderID = "provider_id"
	ColUnitID     = "unit_id"

	ColName         = "name"
	ColPhone        = "phone"
	ColEmail        = "email"
	ColAbbreviation = "abbreviation"
)

var (
	CategoryColumns = []string{ColCategoryID, ColName}
	ProviderColumns = []string{ColProviderID, ColName, ColPhone, ColEmail}
	UnitColumns     = []string{ColUnitID, ColName, ColAbbreviation}
)
