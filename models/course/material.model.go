package course

import "gorm.io/gorm"

// Material categories
const (
	CategoryPhoto    = "photo"
	CategoryMaterial = "material"
	CategoryRecord   = "record"
)

// CourseMaterial references a file pushed to the external media host.
// FilePath holds the host URL, not a local path.
type CourseMaterial struct {
	gorm.Model
	CourseID     uint   `json:"course_id" gorm:"index;not null"`
	FileName     string `json:"file_name"`
	FilePath     string `json:"file_path"`
	FileType     string `json:"file_type"`
	FileCategory string `json:"file_category" gorm:"default:'material'"`
}
