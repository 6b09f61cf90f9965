// Package tinify provides a client for the Tinify image compression API.
//
// An image is compressed in two requests: the raw bytes are POSTed to the
// shrink endpoint, which answers with JSON naming the URL of the compressed
// result, and that URL is then fetched with GET. Both requests carry the same
// fixed header set and HTTP Basic authentication with the user "api" and the
// API key as password.
//
// # Basic Usage
//
//	client := tinify.New(key)
//
//	compressed, err := client.Compress(ctx, data)
//	if errors.Is(err, tinifycli.ErrNoOutput) {
//		// the API returned nothing to download
//	}
//
// Use WithEndpoint and WithHTTPClient to point the client at a test server.
package tinify
