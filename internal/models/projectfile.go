package models

import "time"

// ProjectFile indexes one CSP project-title document stored in the bucket.
// At most one record exists per academic year.
type ProjectFile struct {
	ID           string    `json:"id" firestore:"id"`
	AcademicYear string    `json:"academic_year" firestore:"academic_year"` // e.g. "2024-2025"
	FileName     string    `json:"file_name" firestore:"file_name"`
	FilePath     string    `json:"file_path" firestore:"file_path"` // Path inside the storage bucket
	UploadedBy   string    `json:"uploaded_by" firestore:"uploaded_by"`
	UploadedAt   time.Time `json:"uploaded_at" firestore:"uploaded_at"`
}
