package entity

// MediaTypePDF is the media type embedded in rendered document blobs.
const MediaTypePDF = "application/pdf"

// RenderedDocument is the result of one render call. Ownership passes entirely
// to the caller; nothing is retained.
type RenderedDocument struct {
	RenderID  string `json:"render_id"`
	Document  string `json:"document"` // EncodedBlob, data:application/pdf;base64,...
	PageCount int    `json:"page_count"`
	SizeBytes int    `json:"size_bytes"`
}
