package request

import (
	"encoding/json"
)

type CollectionAddRequest struct {
	ProductID string `json:"productId"`
}

func (r *CollectionAddRequest) ToBytes() ([]byte, error) {
	return json.Marshal(r)
}
