package request

import (
	"encoding/json"
)

type StagedUploadRequest struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
}

func (r *StagedUploadRequest) ToBytes() ([]byte, error) {
	return json.Marshal(r)
}

type AttachMediaRequest struct {
	SourceURL string `json:"sourceUrl"`
}

func (r *AttachMediaRequest) ToBytes() ([]byte, error) {
	return json.Marshal(r)
}

type ImageOrderRequest struct {
	ImageIDs []string `json:"imageIds"`
}

func (r *ImageOrderRequest) ToBytes() ([]byte, error) {
	return json.Marshal(r)
}

type VariantImageRequest struct {
	MediaID string `json:"mediaId"`
}

func (r *VariantImageRequest) ToBytes() ([]byte, error) {
	return json.Marshal(r)
}
