package business

import (
	"github.com/goliatone/go-tiktok-business/core"
)

type Account struct {
	IsBusinessAccount *bool             `json:"is_business_account,omitempty"`
	Username          string            `json:"username,omitempty"`
	DisplayName       string            `json:"display_name,omitempty"`
	ProfileImage      string            `json:"profile_image,omitempty"`
	FollowersCount    *int64            `json:"followers_count,omitempty"`
	AudienceCountries []AudienceCountry `json:"audience_countries,omitempty"`
	AudienceGenders   []AudienceGender  `json:"audience_genders,omitempty"`
	Metrics           []Metric          `json:"metrics,omitempty"`
	Extra             core.Extra        `json:"-"`
}

func (a *Account) UnmarshalJSON(data []byte) error {
	type plain Account
	return core.UnmarshalWithExtra(data, (*plain)(a), &a.Extra)
}

func (a Account) Recognized() bool {
	return len(a.Extra) == 0 &&
		core.AllRecognized(a.AudienceCountries) &&
		core.AllRecognized(a.AudienceGenders) &&
		core.AllRecognized(a.Metrics)
}

// Metric is one day of account insights.
type Metric struct {
	Date             string             `json:"date,omitempty"`
	FollowersCount   *int64             `json:"followers_count,omitempty"`
	ProfileViews     *int64             `json:"profile_views,omitempty"`
	VideoViews       *int64             `json:"video_views,omitempty"`
	Likes            *int64             `json:"likes,omitempty"`
	Comments         *int64             `json:"comments,omitempty"`
	Shares           *int64             `json:"shares,omitempty"`
	AudienceActivity []AudienceActivity `json:"audience_activity,omitempty"`
	Extra            core.Extra         `json:"-"`
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	type plain Metric
	return core.UnmarshalWithExtra(data, (*plain)(m), &m.Extra)
}

func (m Metric) Recognized() bool {
	return len(m.Extra) == 0 && core.AllRecognized(m.AudienceActivity)
}

type AudienceActivity struct {
	Hour  string     `json:"hour,omitempty"`
	Count *int64     `json:"count,omitempty"`
	Extra core.Extra `json:"-"`
}

func (a *AudienceActivity) UnmarshalJSON(data []byte) error {
	type plain AudienceActivity
	return core.UnmarshalWithExtra(data, (*plain)(a), &a.Extra)
}

func (a AudienceActivity) Recognized() bool {
	return len(a.Extra) == 0
}

// AudienceCountry carries an ISO 3166 alpha-2 country code.
type AudienceCountry struct {
	Country    string     `json:"country,omitempty"`
	Percentage string     `json:"percentage,omitempty"`
	Extra      core.Extra `json:"-"`
}

func (a *AudienceCountry) UnmarshalJSON(data []byte) error {
	type plain AudienceCountry
	return core.UnmarshalWithExtra(data, (*plain)(a), &a.Extra)
}

func (a AudienceCountry) Recognized() bool {
	return len(a.Extra) == 0
}

type AudienceGender struct {
	Gender     Gender     `json:"gender,omitempty"`
	Percentage *float64   `json:"percentage,omitempty"`
	Extra      core.Extra `json:"-"`
}

func (a *AudienceGender) UnmarshalJSON(data []byte) error {
	type plain AudienceGender
	return core.UnmarshalWithExtra(data, (*plain)(a), &a.Extra)
}

func (a AudienceGender) Recognized() bool {
	return len(a.Extra) == 0
}

type ImpressionSource struct {
	ImpressionSource ImpressionSourceKind `json:"impression_source,omitempty"`
	Percentage       *float64             `json:"percentage,omitempty"`
	Extra            core.Extra           `json:"-"`
}

func (s *ImpressionSource) UnmarshalJSON(data []byte) error {
	type plain ImpressionSource
	return core.UnmarshalWithExtra(data, (*plain)(s), &s.Extra)
}

func (s ImpressionSource) Recognized() bool {
	return len(s.Extra) == 0
}

type Video struct {
	ItemID               string             `json:"item_id,omitempty"`
	CreateTime           string             `json:"create_time,omitempty"`
	ThumbnailURL         string             `json:"thumbnail_url,omitempty"`
	ShareURL             string             `json:"share_url,omitempty"`
	EmbedURL             string             `json:"embed_url,omitempty"`
	Caption              string             `json:"caption,omitempty"`
	VideoViews           *int64             `json:"video_views,omitempty"`
	VideoDuration        string             `json:"video_duration,omitempty"`
	Likes                *int64             `json:"likes,omitempty"`
	Comments             *int64             `json:"comments,omitempty"`
	Shares               *int64             `json:"shares,omitempty"`
	Reach                *int64             `json:"reach,omitempty"`
	FullVideoWatchedRate string             `json:"full_video_watched_rate,omitempty"`
	TotalTimeWatched     string             `json:"total_time_watched,omitempty"`
	AverageTimeWatched   string             `json:"average_time_watched,omitempty"`
	ImpressionSources    []ImpressionSource `json:"impression_sources,omitempty"`
	AudienceCountries    []AudienceCountry  `json:"audience_countries,omitempty"`
	Extra                core.Extra         `json:"-"`
}

func (v *Video) UnmarshalJSON(data []byte) error {
	type plain Video
	return core.UnmarshalWithExtra(data, (*plain)(v), &v.Extra)
}

func (v Video) Recognized() bool {
	return len(v.Extra) == 0 &&
		core.AllRecognized(v.ImpressionSources) &&
		core.AllRecognized(v.AudienceCountries)
}

type VideoList struct {
	Videos  []Video    `json:"videos,omitempty"`
	Cursor  *int64     `json:"cursor,omitempty"`
	HasMore *bool      `json:"has_more,omitempty"`
	Extra   core.Extra `json:"-"`
}

func (l *VideoList) UnmarshalJSON(data []byte) error {
	type plain VideoList
	return core.UnmarshalWithExtra(data, (*plain)(l), &l.Extra)
}

func (l VideoList) Recognized() bool {
	return len(l.Extra) == 0 && core.AllRecognized(l.Videos)
}

// Reply is a comment posted under another comment.
type Reply struct {
	CommentID       string        `json:"comment_id,omitempty"`
	VideoID         string        `json:"video_id,omitempty"`
	UserID          string        `json:"user_id,omitempty"`
	CreateTime      string        `json:"create_time,omitempty"`
	Text            string        `json:"text,omitempty"`
	Likes           *int64        `json:"likes,omitempty"`
	Replies         *int64        `json:"replies,omitempty"`
	Owner           *bool         `json:"owner,omitempty"`
	Liked           *bool         `json:"liked,omitempty"`
	Pinned          *bool         `json:"pinned,omitempty"`
	Status          CommentStatus `json:"status,omitempty"`
	Username        string        `json:"username,omitempty"`
	ProfileImage    string        `json:"profile_image,omitempty"`
	ParentCommentID string        `json:"parent_comment_id,omitempty"`
	Extra           core.Extra    `json:"-"`
}

func (r *Reply) UnmarshalJSON(data []byte) error {
	type plain Reply
	return core.UnmarshalWithExtra(data, (*plain)(r), &r.Extra)
}

func (r Reply) Recognized() bool {
	return len(r.Extra) == 0
}

type Comment struct {
	CommentID        string        `json:"comment_id,omitempty"`
	VideoID          string        `json:"video_id,omitempty"`
	UserID           string        `json:"user_id,omitempty"`
	UniqueIdentifier string        `json:"unique_identifier,omitempty"`
	CreateTime       string        `json:"create_time,omitempty"`
	Text             string        `json:"text,omitempty"`
	Likes            *int64        `json:"likes,omitempty"`
	Replies          *int64        `json:"replies,omitempty"`
	Owner            *bool         `json:"owner,omitempty"`
	Liked            *bool         `json:"liked,omitempty"`
	Pinned           *bool         `json:"pinned,omitempty"`
	Status           CommentStatus `json:"status,omitempty"`
	Username         string        `json:"username,omitempty"`
	ProfileImage     string        `json:"profile_image,omitempty"`
	ParentCommentID  string        `json:"parent_comment_id,omitempty"`
	ReplyList        []Reply       `json:"reply_list,omitempty"`
	Extra            core.Extra    `json:"-"`
}

func (c *Comment) UnmarshalJSON(data []byte) error {
	type plain Comment
	return core.UnmarshalWithExtra(data, (*plain)(c), &c.Extra)
}

func (c Comment) Recognized() bool {
	return len(c.Extra) == 0 && core.AllRecognized(c.ReplyList)
}

type CommentList struct {
	Comments []Comment  `json:"comments,omitempty"`
	Cursor   *int64     `json:"cursor,omitempty"`
	HasMore  *bool      `json:"has_more,omitempty"`
	Extra    core.Extra `json:"-"`
}

func (l *CommentList) UnmarshalJSON(data []byte) error {
	type plain CommentList
	return core.UnmarshalWithExtra(data, (*plain)(l), &l.Extra)
}

func (l CommentList) Recognized() bool {
	return len(l.Extra) == 0 && core.AllRecognized(l.Comments)
}

type CreatedReply struct {
	CommentID       string     `json:"comment_id"`
	ParentCommentID string     `json:"parent_comment_id"`
	VideoID         string     `json:"video_id"`
	UserID          string     `json:"user_id"`
	CreateTime      string     `json:"create_time"`
	Text            string     `json:"text"`
	Extra           core.Extra `json:"-"`
}

func (r *CreatedReply) UnmarshalJSON(data []byte) error {
	type plain CreatedReply
	return core.UnmarshalWithExtra(data, (*plain)(r), &r.Extra)
}

func (r CreatedReply) Recognized() bool {
	return len(r.Extra) == 0
}

// PublishResult carries the share id used to poll PublishStatus.
type PublishResult struct {
	ShareID string     `json:"share_id"`
	Extra   core.Extra `json:"-"`
}

func (r *PublishResult) UnmarshalJSON(data []byte) error {
	type plain PublishResult
	return core.UnmarshalWithExtra(data, (*plain)(r), &r.Extra)
}

func (r PublishResult) Recognized() bool {
	return len(r.Extra) == 0
}

type PublishStatus struct {
	Status  string     `json:"status"`
	PostIDs []string   `json:"post_ids,omitempty"`
	Reason  string     `json:"reason,omitempty"`
	Extra   core.Extra `json:"-"`
}

func (s *PublishStatus) UnmarshalJSON(data []byte) error {
	type plain PublishStatus
	return core.UnmarshalWithExtra(data, (*plain)(s), &s.Extra)
}

func (s PublishStatus) Recognized() bool {
	return len(s.Extra) == 0
}
