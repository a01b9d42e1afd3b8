// Package shared holds code used across packages that belongs to no single
// layer. Today that is only the testutil subpackage.
//
// testutil provides:
//
//   - BufferedSlogHandler and NewTestLogger for asserting on log records
//   - CSV builders (MoviesCSV, CreditsCSV, GenresJSON, CastJSON, CrewJSON)
//     that produce TMDB shaped input files
//   - SampleDataset and WriteDataset for tests that need a dataset on disk
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    dir := t.TempDir()
//	    movies, credits := testutil.SampleDataset(t)
//	    testutil.WriteDataset(t, dir, movies, credits)
//	}
package shared
