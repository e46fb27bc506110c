package domain

import (
	"path"
	"path/filepath"
	"strings"
)

// FileCategory is the subfolder a copied attachment is placed in.
type FileCategory string

// Attachment categories.
const (
	CategoryImages    FileCategory = "images"
	CategoryDocuments FileCategory = "documents"
	CategoryOthers    FileCategory = "others"
)

var categoryByExt = map[string]FileCategory{
	".jpg":  CategoryImages,
	".jpeg": CategoryImages,
	".png":  CategoryImages,
	".gif":  CategoryImages,
	".svg":  CategoryImages,
	".webp": CategoryImages,
	".pdf":  CategoryDocuments,
	".doc":  CategoryDocuments,
	".docx": CategoryDocuments,
	".txt":  CategoryDocuments,
	".md":   CategoryDocuments,
	".ppt":  CategoryDocuments,
	".pptx": CategoryDocuments,
	".xls":  CategoryDocuments,
	".xlsx": CategoryDocuments,
}

// CategoryFor classifies a file name by its extension (case-insensitive).
func CategoryFor(name string) FileCategory {
	if c, ok := categoryByExt[strings.ToLower(filepath.Ext(name))]; ok {
		return c
	}
	return CategoryOthers
}

// RelativeFilePath returns the stored form "category/name" for a file.
// Stored paths always use forward slashes.
func RelativeFilePath(name string) string {
	base := filepath.Base(name)
	return path.Join(string(CategoryFor(base)), base)
}

// AddFilesResult reports the outcome of adding files to a session.
type AddFilesResult struct {
	// Added is the number of files copied and recorded.
	Added int

	// Duplicates is the number of files already present.
	Duplicates int

	// Failed lists source paths whose copy failed.
	Failed []string

	// Files is the session's file list after the update.
	Files []string
}
