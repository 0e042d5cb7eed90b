package courses

type Course struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Domain      []string  `json:"domain"`
	Chapters    []Chapter `json:"chapters"`
	Rating      int       `json:"rating"`
}

type Chapter struct {
	Name   string `json:"name"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

type SortBy string

const (
	SortByName   SortBy = "name"
	SortByDate   SortBy = "date"
	SortByRating SortBy = "rating"
)

// DateLayout is how course dates are rendered to clients, always in UTC.
const DateLayout = "2006-01-02 15:04:05"
