package schema

// TaxonomyTable represents the 'content.taxonomy' table.
//
// Unique key is (Kind, Key); Description is optional enrichment text joined
// into category/tag listings.
type TaxonomyTable struct {
	Table       string
	Kind        string
	Key         string
	Description string
}

// Taxonomy is the schema definition for content.taxonomy.
var Taxonomy = TaxonomyTable{
	Table:       "content.taxonomy",
	Kind:        "kind",
	Key:         "key",
	Description: "description",
}

func (t TaxonomyTable) Columns() []string {
	return []string{t.Kind, t.Key, t.Description}
}
