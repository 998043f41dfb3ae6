package models

// Item is a node in the tree: a folder or a file. Files reference their
// bytes through BlobRef; folders never do. ParentID is nil for roots and
// must otherwise point at an existing folder item.
type Item struct {
	BaseModel
	ParentID *uint  `gorm:"index" json:"parent_id,omitempty"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Folder   bool   `gorm:"not null;index" json:"folder"`
	BlobRef  string `gorm:"type:varchar(64)" json:"blob_ref,omitempty"`
	Size     int64  `gorm:"default:0" json:"size"`
	MimeType string `gorm:"type:varchar(255)" json:"mime_type,omitempty"`
	SHA256   string `gorm:"type:char(64)" json:"sha256,omitempty"`
}
