package form

import (
	"path/filepath"
	"strings"
)

// FileCategory is a named group of file extensions an upload field may accept.
type FileCategory string

const (
	FileImage       FileCategory = "image"
	FileDocument    FileCategory = "document"
	FilePDF         FileCategory = "pdf"
	FileSpreadsheet FileCategory = "spreadsheet"
	FileArchive     FileCategory = "archive"
)

var AllFileCategories = []FileCategory{FileImage, FileDocument, FilePDF, FileSpreadsheet, FileArchive}

var fileCategoryExts = map[FileCategory][]string{
	FileImage:       {".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"},
	FileDocument:    {".doc", ".docx", ".txt", ".md", ".rtf", ".odt"},
	FilePDF:         {".pdf"},
	FileSpreadsheet: {".xls", ".xlsx", ".csv", ".ods"},
	FileArchive:     {".zip", ".tar", ".gz", ".rar", ".7z"},
}

func (c FileCategory) IsValid() bool {
	_, ok := fileCategoryExts[c]
	return ok
}

// Extensions returns the extensions (with leading dot) the category accepts.
func (c FileCategory) Extensions() []string {
	return fileCategoryExts[c]
}

// AcceptList flattens the categories into the extension list handed to a file picker.
func AcceptList(categories []FileCategory) []string {
	exts := make([]string, 0, len(categories))
	for _, cat := range categories {
		exts = append(exts, fileCategoryExts[cat]...)
	}
	return exts
}

// AllowedFile reports whether the file name's extension is acceptable for the
// given categories. An upload field with no configured categories accepts any file.
// This check runs locally, before any network call is made for the upload.
func AllowedFile(filename string, categories []FileCategory) bool {
	if len(categories) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return false
	}
	for _, cat := range categories {
		for _, allowed := range fileCategoryExts[cat] {
			if ext == allowed {
				return true
			}
		}
	}
	return false
}
