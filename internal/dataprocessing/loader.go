package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"filminsight/internal/errors"
	"filminsight/pkg/contracts/domain"
)

// Column names of the movie metadata source.
const (
	ColID          = "id"
	ColTitle       = "title"
	ColReleaseDate = "release_date"
	ColRuntime     = "runtime"
	ColVoteAverage = "vote_average"
	ColVoteCount   = "vote_count"
	ColRevenue     = "revenue"
	ColBudget      = "budget"
	ColPopularity  = "popularity"
	ColOverview    = "overview"
	ColTagline     = "tagline"
	ColGenres      = "genres"
	ColKeywords    = "keywords"
)

// Column names of the credits source.
const (
	ColMovieID = "movie_id"
	ColCast    = "cast"
	ColCrew    = "crew"
)

var (
	requiredMovieColumns   = []string{ColID, ColTitle, ColReleaseDate}
	requiredCreditsColumns = []string{ColMovieID, ColCast, ColCrew}
)

// LoadMovies reads the movie metadata CSV at path.
func LoadMovies(path string) ([]domain.RawMovie, error) {
	f, err := openSource(path, "movies dataset")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	movies, err := ReadMovies(f)
	if err != nil {
		return nil, withPath(err, path)
	}
	return movies, nil
}

// LoadCredits reads the credits CSV at path.
func LoadCredits(path string) ([]domain.CreditsRecord, error) {
	f, err := openSource(path, "credits dataset")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	credits, err := ReadCredits(f)
	if err != nil {
		return nil, withPath(err, path)
	}
	return credits, nil
}

// ReadMovies decodes movie metadata rows from CSV. Every column is read as
// text; typing happens later in the normalizer.
func ReadMovies(r io.Reader) ([]domain.RawMovie, error) {
	frame, err := readFrame(r, requiredMovieColumns)
	if err != nil {
		return nil, err
	}

	movies := make([]domain.RawMovie, frame.rows)
	for i := range movies {
		movies[i] = domain.RawMovie{
			ID:          frame.cell(ColID, i),
			Title:       frame.cell(ColTitle, i),
			ReleaseDate: frame.cell(ColReleaseDate, i),
			Runtime:     frame.cell(ColRuntime, i),
			VoteAverage: frame.cell(ColVoteAverage, i),
			VoteCount:   frame.cell(ColVoteCount, i),
			Revenue:     frame.cell(ColRevenue, i),
			Budget:      frame.cell(ColBudget, i),
			Popularity:  frame.cell(ColPopularity, i),
			Overview:    frame.cell(ColOverview, i),
			Tagline:     frame.cell(ColTagline, i),
			Genres:      frame.cell(ColGenres, i),
			Keywords:    frame.cell(ColKeywords, i),
		}
	}
	return movies, nil
}

// ReadCredits decodes credits rows from CSV.
func ReadCredits(r io.Reader) ([]domain.CreditsRecord, error) {
	frame, err := readFrame(r, requiredCreditsColumns)
	if err != nil {
		return nil, err
	}

	credits := make([]domain.CreditsRecord, frame.rows)
	for i := range credits {
		credits[i] = domain.CreditsRecord{
			MovieID: frame.cell(ColMovieID, i),
			Title:   frame.cell(ColTitle, i),
			Cast:    frame.cell(ColCast, i),
			Crew:    frame.cell(ColCrew, i),
		}
	}
	return credits, nil
}

// textFrame is a string-typed data frame indexed by column name.
type textFrame struct {
	columns map[string]series.Series
	rows    int
}

func readFrame(r io.Reader, required []string) (*textFrame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewStorageError("failed to read CSV", err)
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		// gota refuses a header with no rows; that is an empty table
		header, ok := headerOnly(data)
		if !ok {
			return nil, errors.NewParsingError("failed to parse CSV", df.Err)
		}
		if err := checkColumns(header, required); err != nil {
			return nil, err
		}
		return &textFrame{columns: map[string]series.Series{}}, nil
	}

	names := df.Names()
	if err := checkColumns(names, required); err != nil {
		return nil, err
	}

	frame := &textFrame{
		columns: make(map[string]series.Series, len(names)),
		rows:    df.Nrow(),
	}
	for _, name := range names {
		frame.columns[name] = df.Col(name)
	}
	return frame, nil
}

// headerOnly returns the column names of CSV text holding a header and no
// data rows.
func headerOnly(data []byte) ([]string, bool) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil || len(records) != 1 {
		return nil, false
	}
	return records[0], true
}

func checkColumns(names, required []string) error {
	for _, col := range required {
		if !slices.Contains(names, col) {
			return errors.NewParsingError(fmt.Sprintf("missing required column %q", col), nil).
				WithContext("column", col)
		}
	}
	return nil
}

// cell returns the raw value at row i of col. Absent columns, NA markers and
// empty fields all read as missing.
func (f *textFrame) cell(col string, i int) domain.Cell {
	s, ok := f.columns[col]
	if !ok {
		return domain.MissingCell()
	}
	e := s.Elem(i)
	if e.IsNA() {
		return domain.MissingCell()
	}
	v := e.String()
	if v == "" {
		return domain.MissingCell()
	}
	return domain.NewCell(v)
}

func openSource(path, resource string) (*os.File, error) {
	f, err := os.Open(path)
	if err == nil {
		return f, nil
	}
	if os.IsNotExist(err) {
		return nil, errors.NewNotFoundError(resource).WithContext("path", path)
	}
	return nil, errors.NewStorageError("failed to open "+resource, err).WithContext("path", path)
}

func withPath(err error, path string) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr.WithContext("path", path)
	}
	return err
}
