package schema

// ArticleTable represents the 'content.article' table.
type ArticleTable struct {
	Table         string
	ID            string
	Title         string
	Summary       string
	Content       string
	Tags          string
	Category      string
	Author        string
	Date          string
	FeaturedImage string
	ReadTime      string
	VectorEN      string
	VectorZH      string
	SearchVector  string
	CreatedAt     string
	UpdatedAt     string
}

// Article is the schema definition for content.article.
var Article = ArticleTable{
	Table:         "content.article",
	ID:            "id",
	Title:         "title",
	Summary:       "summary",
	Content:       "content",
	Tags:          "tags",
	Category:      "category",
	Author:        "author",
	Date:          "article_date",
	FeaturedImage: "featured_image",
	ReadTime:      "read_time",
	VectorEN:      "vector_en",
	VectorZH:      "vector_zh",
	SearchVector:  "search_vector",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
}

func (t ArticleTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Summary, t.Content, t.Tags, t.Category, t.Author, t.Date,
		t.FeaturedImage, t.ReadTime, t.VectorEN, t.VectorZH, t.CreatedAt, t.UpdatedAt,
	}
}
