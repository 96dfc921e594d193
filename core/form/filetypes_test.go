package form

import (
	"reflect"
	"testing"
)

func TestAllowedFile(t *testing.T) {
	tests := []struct {
		name       string
		filename   string
		categories []FileCategory
		want       bool
	}{
		{"no categories accepts anything", "anything.xyz", nil, true},
		{"pdf allowed", "resume.pdf", []FileCategory{FilePDF}, true},
		{"extension check is case-insensitive", "RESUME.PDF", []FileCategory{FilePDF}, true},
		{"image rejected for pdf-only field", "photo.png", []FileCategory{FilePDF}, false},
		{"second category matches", "photo.png", []FileCategory{FilePDF, FileImage}, true},
		{"no extension rejected", "README", []FileCategory{FileDocument}, false},
		{"archive", "project.tar", []FileCategory{FileArchive}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllowedFile(tt.filename, tt.categories); got != tt.want {
				t.Errorf("AllowedFile(%q, %v) = %v; want %v", tt.filename, tt.categories, got, tt.want)
			}
		})
	}
}

func TestAcceptList(t *testing.T) {
	got := AcceptList([]FileCategory{FilePDF, FileSpreadsheet})
	want := []string{".pdf", ".xls", ".xlsx", ".csv", ".ods"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AcceptList = %v; want %v", got, want)
	}
}

func TestFileCategoryIsValid(t *testing.T) {
	for _, cat := range AllFileCategories {
		if !cat.IsValid() {
			t.Errorf("%s should be valid", cat)
		}
	}
	if FileCategory("video").IsValid() {
		t.Error("unknown category should be invalid")
	}
}
