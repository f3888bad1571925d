// Package gzio reads and writes gzip-compressed JSON and UTF-8 text
// files.
//
// JSON payloads use the compact serialization: no inter-token
// whitespace, HTML characters unescaped, and non-ASCII characters
// emitted as literal UTF-8 rather than escape sequences. Every
// operation is a single synchronous file transaction; file handles and
// compression streams are closed on all exit paths, and no state is
// shared between calls.
//
// Operational failures (missing files, permission denial, corrupt gzip
// streams, invalid UTF-8, malformed JSON) are returned as *Error with
// the offending path attached. Passing a value that cannot be
// serialized to WriteJSONGz is a caller bug and surfaces as the raw
// encoding/json error instead.
package gzio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
)

// WriteJSONGz serializes v as compact JSON, gzip-compresses it, and
// writes it to path, replacing any existing file.
//
// If v is not JSON-serializable the encoding/json error is returned
// unwrapped. Any compression or filesystem fault is returned as an
// *Error matching ErrJSONWrite.
func WriteJSONGz(path string, v any) error {
	payload, err := marshalCompact(v)
	if err != nil {
		// Caller bug, not an I/O failure: surface encoding/json's
		// own error rather than disguising it.
		return err
	}
	if err := writeGz(path, payload); err != nil {
		return newError(KindJSONWrite, fmt.Sprintf("writing %s: %v", path, err), path, err)
	}
	return nil
}

// ReadJSONGz reads the gzip-compressed JSON file at path and returns
// the parsed value tree: map[string]any, []any, string, float64, bool,
// or nil, nested per the document.
//
// Any fault during opening, decompression, UTF-8 decoding, or parsing
// is returned as an *Error matching ErrJSONRead.
func ReadJSONGz(path string) (any, error) {
	raw, err := readJSONPayload(path)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, newError(KindJSONRead, fmt.Sprintf("parsing %s: %v", path, err), path, err)
	}
	return v, nil
}

// ReadJSONGzInto reads the gzip-compressed JSON file at path and
// decodes it into v, which must be a non-nil pointer. The error
// contract is the same as ReadJSONGz.
func ReadJSONGzInto(path string, v any) error {
	raw, err := readJSONPayload(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return newError(KindJSONRead, fmt.Sprintf("parsing %s: %v", path, err), path, err)
	}
	return nil
}

// readJSONPayload reads and validates the decompressed bytes, wrapping
// faults as JSON read errors.
func readJSONPayload(path string) ([]byte, error) {
	raw, err := readGz(path)
	if err != nil {
		return nil, newError(KindJSONRead, readMessage(path, err), path, err)
	}
	if !utf8.Valid(raw) {
		return nil, newError(KindJSONRead, fmt.Sprintf("invalid UTF-8 in %s", path), path, nil)
	}
	return raw, nil
}

// WriteTextGz encodes content as UTF-8 and writes it gzip-compressed
// to path, replacing any existing file. No newline is appended.
//
// Any compression or filesystem fault is returned as an *Error
// matching ErrTextWrite.
func WriteTextGz(path string, content string) error {
	if err := writeGz(path, []byte(content)); err != nil {
		return newError(KindTextWrite, fmt.Sprintf("writing %s: %v", path, err), path, err)
	}
	return nil
}

// WriteTextLinesGz writes each element of lines in order, with no
// separator inserted between elements, gzip-compressed to path.
// Callers wanting line terminators include them in each element.
func WriteTextLinesGz(path string, lines []string) error {
	if err := writeGzLines(path, lines); err != nil {
		return newError(KindTextWrite, fmt.Sprintf("writing %s: %v", path, err), path, err)
	}
	return nil
}

// ReadTextGz reads the gzip-compressed UTF-8 text file at path and
// returns its full contents. No line splitting is performed.
//
// Any fault, including an invalid UTF-8 payload, is returned as an
// *Error matching ErrTextRead.
func ReadTextGz(path string) (string, error) {
	raw, err := readGz(path)
	if err != nil {
		return "", newError(KindTextRead, readMessage(path, err), path, err)
	}
	if !utf8.Valid(raw) {
		return "", newError(KindTextRead, fmt.Sprintf("invalid UTF-8 in %s", path), path, nil)
	}
	return string(raw), nil
}

// marshalCompact serializes v without inter-token whitespace and with
// HTML escaping disabled, so non-ASCII and HTML-significant characters
// come out as literal UTF-8.
func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encoder terminates the stream with a newline the compact form
	// does not include.
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// readMessage phrases the failure of readGz for the error message,
// keeping the underlying description.
func readMessage(path string, err error) string {
	if os.IsNotExist(err) {
		return fmt.Sprintf("file not found: %s", path)
	}
	return fmt.Sprintf("reading %s: %v", path, err)
}

// writeGz writes payload gzip-compressed to path, creating or
// truncating the file. The gzip stream and file handle are closed on
// every path; close errors are reported because the gzip trailer and
// buffered data land during Close.
func writeGz(path string, payload []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write(payload); err != nil {
		zw.Close()
		f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeGzLines streams each chunk into one gzip member at path.
func writeGzLines(path string, chunks []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(f)
	for _, chunk := range chunks {
		if _, err := io.WriteString(zw, chunk); err != nil {
			zw.Close()
			f.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// readGz opens path and returns its fully decompressed contents. The
// gzip checksum is verified as the stream drains, so a truncated or
// corrupt file fails here.
func readGz(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return io.ReadAll(zr)
}
