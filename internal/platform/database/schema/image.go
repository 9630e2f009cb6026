package schema

// ImageTable represents the 'content.image' table.
type ImageTable struct {
	Table     string
	ID        string
	Filename  string
	Data      string
	Thumbnail string
	Vector    string
	Metadata  string
	CreatedAt string
}

// Image is the schema definition for content.image.
var Image = ImageTable{
	Table:     "content.image",
	ID:        "id",
	Filename:  "filename",
	Data:      "data",
	Thumbnail: "thumbnail",
	Vector:    "vector",
	Metadata:  "metadata",
	CreatedAt: "created_at",
}

func (t ImageTable) Columns() []string {
	return []string{t.ID, t.Filename, t.Data, t.Thumbnail, t.Vector, t.Metadata, t.CreatedAt}
}
