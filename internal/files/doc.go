// Package files locates the dataset files on disk.
//
// Discovery finds glob matches relative to a base path, newest
// first, and resolves the movies and credits sources from a
// config.DatasetConfig: explicit file paths win, otherwise the most recently
// modified match of each pattern in the data directory is used.
//
//	discovery := files.NewDiscovery(paths.BaseDir)
//	dataset, err := discovery.LocateDataset(cfg.Dataset)
//	if err != nil {
//	    return err // errors.ErrTypeNotFound when nothing matches
//	}
//	table, report, err := pipeline.LoadAndProcess(ctx, dataset.Movies.Path, dataset.Credits.Path)
package files
