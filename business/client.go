package business

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-tiktok-business/core"
	"github.com/goliatone/go-tiktok-business/engine"
)

const (
	PathAccount       = "/business/get/"
	PathVideoList     = "/business/video/list/"
	PathCommentList   = "/business/comment/list/"
	PathReplyCreate   = "/business/comment/reply/create/"
	PathVideoPublish  = "/business/video/publish/"
	PathPhotoPublish  = "/business/photo/publish/"
	PathPublishStatus = "/business/publish/status/"
)

type GetAccountRequest struct {
	BusinessID string        `url:"business_id"`
	Fields     AccountFields `url:"fields,omitempty"`
	StartDate  string        `url:"start_date,omitempty"`
	EndDate    string        `url:"end_date,omitempty"`
}

type VideoFilters struct {
	VideoIDs []string `json:"video_ids"`
}

func (f VideoFilters) EncodeValues(key string, values *url.Values) error {
	return encodeJSONValue(key, f, values)
}

type ListVideosRequest struct {
	BusinessID string        `url:"business_id"`
	Fields     VideoFields   `url:"fields,omitempty"`
	Cursor     *int64        `url:"cursor,omitempty"`
	MaxCount   *int          `url:"max_count,omitempty"`
	Filters    *VideoFilters `url:"filters,omitempty"`
}

type ListCommentsRequest struct {
	BusinessID     string           `url:"business_id"`
	VideoID        string           `url:"video_id"`
	CommentIDs     IDList           `url:"comment_ids,omitempty"`
	IncludeReplies *bool            `url:"include_replies,omitempty"`
	Status         CommentStatus    `url:"status,omitempty"`
	SortField      CommentSortField `url:"sort_field,omitempty"`
	SortOrder      SortOrder        `url:"sort_order,omitempty"`
	Cursor         *int64           `url:"cursor,omitempty"`
	MaxCount       *int             `url:"max_count,omitempty"`
}

type PublishStatusRequest struct {
	BusinessID string `url:"business_id"`
	PublishID  string `url:"publish_id"`
}

type CreateReplyRequest struct {
	BusinessID string `json:"business_id"`
	VideoID    string `json:"video_id"`
	CommentID  string `json:"comment_id"`
	Text       string `json:"text"`
}

type VideoPostInfo struct {
	Caption          string `json:"caption,omitempty"`
	IsBrandOrganic   bool   `json:"is_brand_organic"`
	IsBrandedContent bool   `json:"is_branded_content"`
	TTOInviteLink    string `json:"tto_invite_link,omitempty"`
	DisableComment   *bool  `json:"disable_comment,omitempty"`
	DisableDuet      *bool  `json:"disable_duet,omitempty"`
	DisableStitch    *bool  `json:"disable_stitch,omitempty"`
	ThumbnailOffset  string `json:"thumbnail_offset,omitempty"`
	IsAIGenerated    *bool  `json:"is_ai_generated,omitempty"`
	UploadToDraft    *bool  `json:"upload_to_draft,omitempty"`
	IsAdsOnly        *bool  `json:"is_ads_only,omitempty"`
}

type PublishVideoRequest struct {
	BusinessID         string        `json:"business_id"`
	VideoURL           string        `json:"video_url"`
	CustomThumbnailURL string        `json:"custom_thumbnail_url,omitempty"`
	PostInfo           VideoPostInfo `json:"post_info"`
}

type PhotoPostInfo struct {
	PrivacyLevel     PrivacyLevel `json:"privacy_level"`
	Title            string       `json:"title,omitempty"`
	Caption          string       `json:"caption,omitempty"`
	AutoAddMusic     *bool        `json:"auto_add_music,omitempty"`
	IsBrandOrganic   bool         `json:"is_brand_organic"`
	IsBrandedContent bool         `json:"is_branded_content"`
	IsDraft          *bool        `json:"is_draft,omitempty"`
	DisableComment   *bool        `json:"disable_comment,omitempty"`
}

type PublishPhotoRequest struct {
	BusinessID      string        `json:"business_id"`
	PhotoImages     []string      `json:"photo_images"`
	PhotoCoverIndex string        `json:"photo_cover_index,omitempty"`
	PostInfo        PhotoPostInfo `json:"post_info"`
}

// Client calls the business endpoints with a caller supplied access token.
type Client struct {
	executor *engine.Executor
}

func NewClient(executor *engine.Executor) *Client {
	return &Client{executor: executor}
}

func (c *Client) GetAccount(ctx context.Context, accessToken string, req GetAccountRequest, opts *core.CallOptions) (engine.Response[Account], error) {
	if len(req.Fields) == 0 {
		req.Fields = AllAccountFields()
	}
	return get[Account](ctx, c, PathAccount, accessToken, req.BusinessID, req, opts)
}

func (c *Client) ListVideos(ctx context.Context, accessToken string, req ListVideosRequest, opts *core.CallOptions) (engine.Response[VideoList], error) {
	if len(req.Fields) == 0 {
		req.Fields = AllVideoFields()
	}
	return get[VideoList](ctx, c, PathVideoList, accessToken, req.BusinessID, req, opts)
}

func (c *Client) ListComments(ctx context.Context, accessToken string, req ListCommentsRequest, opts *core.CallOptions) (engine.Response[CommentList], error) {
	if strings.TrimSpace(req.VideoID) == "" {
		return engine.Response[CommentList]{}, core.NewClientError(core.KindConfiguration, "video_id is required")
	}
	return get[CommentList](ctx, c, PathCommentList, accessToken, req.BusinessID, req, opts)
}

func (c *Client) PublishStatus(ctx context.Context, accessToken string, req PublishStatusRequest, opts *core.CallOptions) (engine.Response[PublishStatus], error) {
	if strings.TrimSpace(req.PublishID) == "" {
		return engine.Response[PublishStatus]{}, core.NewClientError(core.KindConfiguration, "publish_id is required")
	}
	return get[PublishStatus](ctx, c, PathPublishStatus, accessToken, req.BusinessID, req, opts)
}

func (c *Client) CreateReply(ctx context.Context, accessToken string, req CreateReplyRequest, opts *core.CallOptions) (engine.Response[CreatedReply], error) {
	if strings.TrimSpace(req.CommentID) == "" || strings.TrimSpace(req.Text) == "" {
		return engine.Response[CreatedReply]{}, core.NewClientError(core.KindConfiguration, "comment_id and text are required")
	}
	return post[CreatedReply](ctx, c, PathReplyCreate, accessToken, req.BusinessID, req, opts)
}

func (c *Client) PublishVideo(ctx context.Context, accessToken string, req PublishVideoRequest, opts *core.CallOptions) (engine.Response[PublishResult], error) {
	if strings.TrimSpace(req.VideoURL) == "" {
		return engine.Response[PublishResult]{}, core.NewClientError(core.KindConfiguration, "video_url is required")
	}
	return post[PublishResult](ctx, c, PathVideoPublish, accessToken, req.BusinessID, req, opts)
}

func (c *Client) PublishPhoto(ctx context.Context, accessToken string, req PublishPhotoRequest, opts *core.CallOptions) (engine.Response[PublishResult], error) {
	if len(req.PhotoImages) == 0 {
		return engine.Response[PublishResult]{}, core.NewClientError(core.KindConfiguration, "photo_images is required")
	}
	if req.PostInfo.PrivacyLevel == "" {
		req.PostInfo.PrivacyLevel = PrivacyPublicToEveryone
	}
	return post[PublishResult](ctx, c, PathPhotoPublish, accessToken, req.BusinessID, req, opts)
}

func get[T any](ctx context.Context, c *Client, path, accessToken, businessID string, req any, opts *core.CallOptions) (engine.Response[T], error) {
	if err := c.require(accessToken, businessID); err != nil {
		return engine.Response[T]{}, err
	}
	query, err := EncodeQuery(req)
	if err != nil {
		return engine.Response[T]{}, &core.ClientError{Kind: core.KindConfiguration, Message: "encode query", Cause: err}
	}
	factory := c.executor.Factory(engine.RequestSpec{
		Method:      http.MethodGet,
		Path:        path,
		Query:       query,
		AccessToken: accessToken,
	})
	return engine.Execute[T](ctx, c.executor, factory, opts)
}

func post[T any](ctx context.Context, c *Client, path, accessToken, businessID string, body any, opts *core.CallOptions) (engine.Response[T], error) {
	if err := c.require(accessToken, businessID); err != nil {
		return engine.Response[T]{}, err
	}
	factory := c.executor.Factory(engine.RequestSpec{
		Method:      http.MethodPost,
		Path:        path,
		Body:        body,
		AccessToken: accessToken,
	})
	return engine.Execute[T](ctx, c.executor, factory, opts)
}

func (c *Client) require(accessToken, businessID string) error {
	if c == nil || c.executor == nil {
		return core.NewClientError(core.KindConfiguration, "business client requires an executor")
	}
	if strings.TrimSpace(accessToken) == "" {
		return core.NewClientError(core.KindConfiguration, "access token is required")
	}
	if strings.TrimSpace(businessID) == "" {
		return core.NewClientError(core.KindConfiguration, "business_id is required")
	}
	return nil
}
