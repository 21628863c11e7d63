package upstream

// Track is a catalog course unit as returned by the REST API.
type Track struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	AuthorID      string `json:"authorId"`
	Thumbnail     string `json:"thumbnail"`
	Length        *int   `json:"length"`
	ModulesCount  *int   `json:"modulesCount"`
	Description   string `json:"description"`
	NumberOfViews *int   `json:"numberOfViews"`
}

// Author is the credited creator of tracks.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

// Module is a sub-unit of a track.
type Module struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Length   *int   `json:"length"`
	Content  string `json:"content"`
	VideoURL string `json:"videoUrl"`
}
