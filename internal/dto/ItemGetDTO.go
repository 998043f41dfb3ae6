package dto

import "time"

// ItemGetDTO is the wire shape of an item. FilePath carries the opaque
// blob reference for files; clients must treat it as a token, not a path.
type ItemGetDTO struct {
	ID           uint      `json:"id"`
	ParentID     *uint     `json:"parentId,omitempty"`
	Name         string    `json:"name"`
	Folder       bool      `json:"folder"`
	Creation     time.Time `json:"creation"`
	Modification time.Time `json:"modification"`
	FilePath     string    `json:"filePath,omitempty"`
	Size         int64     `json:"size,omitempty"`
	MimeType     string    `json:"mimeType,omitempty"`
	SHA256       string    `json:"sha256,omitempty"`
}

type ItemListDTO struct {
	Items []ItemGetDTO `json:"items"`
}

type UploadErrorDTO struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type UploadResultDTO struct {
	Successful []ItemGetDTO     `json:"successful"`
	Failed     []UploadErrorDTO `json:"failed"`
}
