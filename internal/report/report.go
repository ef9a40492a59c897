package report

// TotalBooks is the aggregate count of copies in stock across the catalog.
type TotalBooks struct {
	BookCount int `json:"BookCount" bson:"book_count"`
}

// TopSeller is one row of the best-selling books report.
type TopSeller struct {
	Title      string `json:"Title" bson:"Title"`
	Author     string `json:"Author" bson:"Author"`
	CopiesSold int    `json:"CopiesSold" bson:"CopiesSold"`
}

// AuthorStock is one row of the top stocking authors report. Books is the
// sum of stock across all of the author's titles.
type AuthorStock struct {
	Author string `json:"Author" bson:"Author"`
	Books  int    `json:"Books" bson:"Books"`
}
