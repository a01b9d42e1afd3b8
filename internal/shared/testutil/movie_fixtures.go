package testutil

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// MovieRow is one row of a movie metadata CSV fixture. Empty strings are
// written as empty cells.
type MovieRow struct {
	ID          string
	Title       string
	ReleaseDate string
	Runtime     string
	VoteAverage string
	VoteCount   string
	Revenue     string
	Budget      string
	Popularity  string
	Overview    string
	Tagline     string
	Genres      string
	Keywords    string
}

// CreditRow is one row of a credits CSV fixture.
type CreditRow struct {
	MovieID string
	Title   string
	Cast    string
	Crew    string
}

// CrewMember is one crew entry for CrewJSON.
type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// MovieHeader follows the column order of the public TMDB 5000 export.
var MovieHeader = []string{
	"budget", "genres", "id", "keywords", "overview", "popularity",
	"release_date", "revenue", "runtime", "tagline", "title",
	"vote_average", "vote_count",
}

// CreditHeader follows the column order of the public TMDB 5000 export.
var CreditHeader = []string{"movie_id", "title", "cast", "crew"}

// MoviesCSV renders movie rows as CSV text with a header.
func MoviesCSV(t *testing.T, rows ...MovieRow) string {
	t.Helper()
	records := make([][]string, 0, len(rows)+1)
	records = append(records, MovieHeader)
	for _, r := range rows {
		records = append(records, []string{
			r.Budget, r.Genres, r.ID, r.Keywords, r.Overview, r.Popularity,
			r.ReleaseDate, r.Revenue, r.Runtime, r.Tagline, r.Title,
			r.VoteAverage, r.VoteCount,
		})
	}
	return renderCSV(t, records)
}

// CreditsCSV renders credit rows as CSV text with a header.
func CreditsCSV(t *testing.T, rows ...CreditRow) string {
	t.Helper()
	records := make([][]string, 0, len(rows)+1)
	records = append(records, CreditHeader)
	for _, r := range rows {
		records = append(records, []string{r.MovieID, r.Title, r.Cast, r.Crew})
	}
	return renderCSV(t, records)
}

func renderCSV(t *testing.T, records [][]string) string {
	t.Helper()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("render CSV fixture: %v", err)
	}
	return buf.String()
}

// GenresJSON serializes names the way TMDB encodes genre and keyword lists.
func GenresJSON(t *testing.T, names ...string) string {
	t.Helper()
	entries := make([]map[string]any, len(names))
	for i, n := range names {
		entries[i] = map[string]any{"id": i + 1, "name": n}
	}
	return mustJSON(t, entries)
}

// CastJSON serializes cast members in billing order.
func CastJSON(t *testing.T, names ...string) string {
	t.Helper()
	entries := make([]map[string]any, len(names))
	for i, n := range names {
		entries[i] = map[string]any{"cast_id": i, "character": "", "name": n, "order": i}
	}
	return mustJSON(t, entries)
}

// CrewJSON serializes crew members.
func CrewJSON(t *testing.T, members ...CrewMember) string {
	t.Helper()
	return mustJSON(t, members)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return string(data)
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

// WriteDataset writes a movies and a credits CSV under dir using the TMDB
// file names and returns both paths.
func WriteDataset(t *testing.T, dir string, movies []MovieRow, credits []CreditRow) (string, string) {
	t.Helper()
	moviesPath := WriteFile(t, dir, "tmdb_5000_movies.csv", MoviesCSV(t, movies...))
	creditsPath := WriteFile(t, dir, "tmdb_5000_credits.csv", CreditsCSV(t, credits...))
	return moviesPath, creditsPath
}

// SampleDataset returns a small dataset spanning two decades with one
// credits row per movie.
func SampleDataset(t *testing.T) ([]MovieRow, []CreditRow) {
	t.Helper()
	movies := []MovieRow{
		{
			ID: "19995", Title: "Avatar", ReleaseDate: "2009-12-10", Runtime: "162",
			VoteAverage: "7.2", VoteCount: "11800", Revenue: "2787965087", Budget: "237000000",
			Popularity: "150.437577", Overview: "In the 22nd century...", Tagline: "Enter the World of Pandora.",
			Genres: GenresJSON(t, "Action", "Adventure", "Fantasy", "Science Fiction"),
			Keywords: GenresJSON(t, "culture clash", "future"),
		},
		{
			ID: "597", Title: "Titanic", ReleaseDate: "1997-11-18", Runtime: "194",
			VoteAverage: "7.5", VoteCount: "7562", Revenue: "1845034188", Budget: "200000000",
			Popularity: "100.025899", Overview: "84 years later...", Tagline: "Nothing on Earth could come between them.",
			Genres: GenresJSON(t, "Drama", "Romance", "Thriller"),
		},
		{
			ID: "680", Title: "Pulp Fiction", ReleaseDate: "1994-09-10", Runtime: "154",
			VoteAverage: "8.3", VoteCount: "8428", Revenue: "213928762", Budget: "8000000",
			Popularity: "121.463076", Genres: GenresJSON(t, "Thriller", "Crime"),
		},
	}
	credits := []CreditRow{
		{
			MovieID: "19995", Title: "Avatar",
			Cast: CastJSON(t, "Sam Worthington", "Zoe Saldana", "Sigourney Weaver", "Stephen Lang", "Michelle Rodriguez", "Giovanni Ribisi"),
			Crew: CrewJSON(t, CrewMember{Name: "Stephen E. Rivkin", Job: "Editor"}, CrewMember{Name: "James Cameron", Job: "Director"}),
		},
		{
			MovieID: "597", Title: "Titanic",
			Cast: CastJSON(t, "Kate Winslet", "Leonardo DiCaprio"),
			Crew: CrewJSON(t, CrewMember{Name: "James Cameron", Job: "Director"}),
		},
		{
			MovieID: "680", Title: "Pulp Fiction",
			Cast: CastJSON(t, "John Travolta", "Samuel L. Jackson"),
			Crew: CrewJSON(t, CrewMember{Name: "Quentin Tarantino", Job: "Director"}),
		},
	}
	return movies, credits
}
