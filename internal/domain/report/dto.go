package report

type ExportResponse struct {
	FilePath    string `json:"file_path"`
	RecordCount int    `json:"record_count"`
}
