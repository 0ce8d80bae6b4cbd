// Package uploads builds bulk-upload fixtures for tests.
//
// Uploads are assembled row by row with a fluent builder and rendered as
// CSV bytes, XLSX bytes, or a file on disk:
//
//	data := uploads.NewBuilder(t).
//		WithFixture(uploads.FixtureSample).
//		WithMeasurement("copper", "smelting", 9.5, 48, 28).
//		CSV()
//
// The default header is the canonical upload header. Use WithHeader to
// build files with missing or extra columns.
package uploads
