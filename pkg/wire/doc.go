// Package wire implements the HTTP/1.x wire codec: it parses a raw byte
// stream into a structured Request and serializes a Response back into
// bytes. The codec knows nothing about routing or file serving.
//
// The supported subset is deliberately small: one request per connection,
// Content-Length bodies only (no chunked transfer-encoding), CRLF line
// endings, and a blank line terminating the header block.
package wire
