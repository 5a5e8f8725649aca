package models

type CreateProjectRequest struct {
	ProjectName string `json:"project_name" validate:"required"`
	Description string `json:"description"`
}

type UploadResponse struct {
	ID           string `json:"id"`
	ResumeName   string `json:"resume_name"`
	OriginalName string `json:"original_name"`
	FileSize     int64  `json:"file_size"`
}

type AnalyzeRequest struct {
	ResumeIDs []string       `json:"resume_ids" validate:"required"`
	Mandatory []string       `json:"mandatory"`
	Optional  []string       `json:"optional"`
	Excluded  []string       `json:"excluded"`
	Options   AnalyzeOptions `json:"options"`
}

type AnalyzeOptions struct {
	Skills     bool `json:"skills"`
	Experience bool `json:"experience"`
	Education  bool `json:"education"`
	Projects   bool `json:"projects"`
}

type ShortlistAddRequest struct {
	ResumeIDs []string `json:"resume_ids" validate:"required"`
	Note      string   `json:"note"`
}

type ShortlistNoteRequest struct {
	Note string `json:"note"`
}

type RecommendRequest struct {
	Requirements string `json:"requirements" validate:"required"`
}
