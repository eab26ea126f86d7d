package dto

import "photo-frame/domain/model"

// MediaItemListRequest is the query of GET /v1/mediaItems
type MediaItemListRequest struct {
	PageSize  int    `url:"pageSize,omitempty"`
	PageToken string `url:"pageToken,omitempty"`
}

// MediaItemListResponse is the body of GET /v1/mediaItems
type MediaItemListResponse struct {
	MediaItems    []model.MediaItem `json:"mediaItems"`
	NextPageToken string            `json:"nextPageToken,omitempty"`
}

// MaxPageSize is the largest page the library API accepts
const MaxPageSize = 100
