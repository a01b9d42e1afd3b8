// Package exporter writes the cleaned movie table to disk.
//
// CSVWriter handles flat CSV output with optional UTF-8 BOM and a streaming
// mode for large tables. WorkbookWriter produces an .xlsx workbook with the
// cleaned table plus decade and genre aggregates on separate sheets.
//
// Relative file names resolve into the exports directory from config.Paths:
//
//	paths := cfg.ResolvePaths(baseDir)
//	csvPath, err := exporter.NewCSVWriter(paths).WriteMovies(ctx, config.CleanedMoviesFile, table, false)
//	xlsxPath, err := exporter.NewWorkbookWriter(paths, logger).Write(ctx, config.WorkbookFile, exporter.WorkbookData{
//	    Movies:  table,
//	    Decades: dataprocessing.AggregateByDecade(table),
//	    Genres:  dataprocessing.GenreCounts(table),
//	})
package exporter
