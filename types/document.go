package types

// MaxUploadSize is the per-file upload limit: 10MB.
const MaxUploadSize = 10 << 20

// UploadedFile is one multipart file part, held in memory for the duration of
// a single chat request.
type UploadedFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// ExtractedDocument is the result of extracting text from one uploaded file.
// Exactly one of Text and Err is meaningful. A failed extraction is still
// rendered into the prompt as a notice, it never aborts the request.
type ExtractedDocument struct {
	SourceName string
	Text       string
	Err        error
}
