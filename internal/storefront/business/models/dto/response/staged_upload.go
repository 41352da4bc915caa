package response

// StagedUploadTarget is the platform's answer to createStagedUpload: where the
// bytes go and the URL the attached media will later be served from.
type StagedUploadTarget struct {
	UploadURL   string            `json:"uploadUrl"`
	ResourceURL string            `json:"resourceUrl"`
	Parameters  map[string]string `json:"parameters"`
}

type AttachMediaResponse struct {
	Image Image `json:"image"`
}
