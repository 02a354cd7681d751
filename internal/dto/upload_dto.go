package dto

// UploadResponse is the attachment triple handed back to clients; the core
// never interprets it beyond embedding it on a task.
type UploadResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	FileType string `json:"file_type"`
}
