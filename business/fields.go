package business

import (
	"net/url"
	"sort"
)

type AccountField string

const (
	AccountFieldIsBusinessAccount AccountField = "is_business_account"
	AccountFieldUsername          AccountField = "username"
	AccountFieldDisplayName       AccountField = "display_name"
	AccountFieldProfileImage      AccountField = "profile_image"
	AccountFieldFollowersCount    AccountField = "followers_count"
	AccountFieldAudienceCountries AccountField = "audience_countries"
	AccountFieldAudienceGenders   AccountField = "audience_genders"
	AccountFieldMetrics           AccountField = "metrics"
)

// AccountFields encodes as a JSON array, deduplicated and sorted.
type AccountFields []AccountField

func AllAccountFields() AccountFields {
	return AccountFields{
		AccountFieldIsBusinessAccount,
		AccountFieldUsername,
		AccountFieldDisplayName,
		AccountFieldProfileImage,
		AccountFieldFollowersCount,
		AccountFieldAudienceCountries,
		AccountFieldAudienceGenders,
	}
}

func (f AccountFields) EncodeValues(key string, values *url.Values) error {
	names := make([]string, 0, len(f))
	for _, field := range f {
		names = append(names, string(field))
	}
	return encodeJSONValue(key, normalizeNames(names), values)
}

type VideoField string

const (
	VideoFieldItemID               VideoField = "item_id"
	VideoFieldCreateTime           VideoField = "create_time"
	VideoFieldThumbnailURL         VideoField = "thumbnail_url"
	VideoFieldShareURL             VideoField = "share_url"
	VideoFieldEmbedURL             VideoField = "embed_url"
	VideoFieldCaption              VideoField = "caption"
	VideoFieldVideoViews           VideoField = "video_views"
	VideoFieldVideoDuration        VideoField = "video_duration"
	VideoFieldLikes                VideoField = "likes"
	VideoFieldComments             VideoField = "comments"
	VideoFieldShares               VideoField = "shares"
	VideoFieldReach                VideoField = "reach"
	VideoFieldFullVideoWatchedRate VideoField = "full_video_watched_rate"
	VideoFieldTotalTimeWatched     VideoField = "total_time_watched"
	VideoFieldAverageTimeWatched   VideoField = "average_time_watched"
	VideoFieldImpressionSources    VideoField = "impression_sources"
	VideoFieldAudienceCountries    VideoField = "audience_countries"
)

type VideoFields []VideoField

func AllVideoFields() VideoFields {
	return VideoFields{
		VideoFieldItemID,
		VideoFieldCreateTime,
		VideoFieldThumbnailURL,
		VideoFieldShareURL,
		VideoFieldEmbedURL,
		VideoFieldCaption,
		VideoFieldVideoViews,
		VideoFieldVideoDuration,
		VideoFieldLikes,
		VideoFieldComments,
		VideoFieldShares,
		VideoFieldReach,
		VideoFieldFullVideoWatchedRate,
		VideoFieldTotalTimeWatched,
		VideoFieldAverageTimeWatched,
		VideoFieldImpressionSources,
		VideoFieldAudienceCountries,
	}
}

func (f VideoFields) EncodeValues(key string, values *url.Values) error {
	names := make([]string, 0, len(f))
	for _, field := range f {
		names = append(names, string(field))
	}
	return encodeJSONValue(key, normalizeNames(names), values)
}

func normalizeNames(names []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

type CommentStatus string

const (
	CommentStatusAll    CommentStatus = "ALL"
	CommentStatusPublic CommentStatus = "PUBLIC"
	CommentStatusHidden CommentStatus = "HIDDEN"
)

type CommentSortField string

const (
	CommentSortLikes      CommentSortField = "likes"
	CommentSortReplies    CommentSortField = "replies"
	CommentSortCreateTime CommentSortField = "create_time"
)

type SortOrder string

const (
	SortOrderAsc   SortOrder = "asc"
	SortOrderDesc  SortOrder = "desc"
	SortOrderSmart SortOrder = "smart"
)

type PrivacyLevel string

const (
	PrivacyPublicToEveryone    PrivacyLevel = "PUBLIC_TO_EVERYONE"
	PrivacyMutualFollowFriends PrivacyLevel = "MUTUAL_FOLLOW_FRIENDS"
	PrivacyFollowerOfCreator   PrivacyLevel = "FOLLOWER_OF_CREATOR"
	PrivacySelfOnly            PrivacyLevel = "SELF_ONLY"
)

type Gender string

const (
	GenderFemale Gender = "Female"
	GenderMale   Gender = "Male"
	GenderOther  Gender = "Other"
)

type ImpressionSourceKind string

const (
	ImpressionForYou          ImpressionSourceKind = "For You"
	ImpressionFollow          ImpressionSourceKind = "Follow"
	ImpressionHashtag         ImpressionSourceKind = "Hashtag"
	ImpressionSound           ImpressionSourceKind = "Sound"
	ImpressionPersonalProfile ImpressionSourceKind = "Personal Profile"
	ImpressionOtherProfile    ImpressionSourceKind = "other_profile_vv"
	ImpressionSearch          ImpressionSourceKind = "Search"
)
