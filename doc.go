// Package tinifycli compresses the images in a directory through the Tinify
// web API and writes the results next to the originals.
//
// The package holds the domain core shared by the command and its adapters:
// the image extension allow-list, output naming, the compression ratio, the
// error kinds that decide whether a run continues, and the Service that runs
// the sequential compression loop.
//
// # Key Components
//
//   - Service: walks the images of a FileStorage one at a time, sends each to a
//     Compressor and writes the result back through the same FileStorage
//   - Compressor: submits image bytes and returns compressed bytes (see the
//     tinify package for the HTTP implementation)
//   - FileStorage: lists, reads and writes files in the working directory (see
//     the filesystem package)
//   - Reporter: receives progress and per-file results (see the output package)
//
// # Example Usage
//
//	client := tinify.New(key)
//	storage := filesystem.NewStore(root)
//
//	service, err := tinifycli.NewService(client, storage, output.NewFormatter(os.Stderr, false))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	summary, err := service.Run(ctx)
//
// Errors are classified so that only reading a source image or uploading it is
// fatal to a run. A response without a result URL (ErrNoOutput) skips the file
// and a failed download (DownloadError) is reported and the run continues.
package tinifycli
