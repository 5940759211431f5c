package business

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-tiktok-business/core"
	"github.com/goliatone/go-tiktok-business/engine"
	"github.com/goliatone/go-tiktok-business/transport"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

type apiStub struct {
	mu       sync.Mutex
	requests []capturedRequest
	body     string
}

func (s *apiStub) last() capturedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[len(s.requests)-1]
}

func newTestClient(t *testing.T, body string) (*Client, *apiStub, func()) {
	t.Helper()
	stub := &apiStub{body: body}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		stub.mu.Lock()
		stub.requests = append(stub.requests, capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   raw,
		})
		stub.mu.Unlock()
		w.Header().Set("Date", time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC).Format(http.TimeFormat))
		w.Header().Set("X-Tt-Logid", "log-1")
		_, _ = w.Write([]byte(stub.body))
	}))
	cfg := core.DefaultConfig()
	cfg.BaseURL = server.URL
	executor := engine.New(transport.NewRESTAdapter(server.Client()), cfg)
	return NewClient(executor), stub, server.Close
}

func TestGetAccount_EncodesQueryAndDecodesAccount(t *testing.T) {
	client, stub, closeFn := newTestClient(t, `{"request_id":"r1","code":0,"message":"OK","data":{"username":"acme","followers_count":12,"audience_genders":[{"gender":"Female","percentage":0.6}],"metrics":[{"date":"2024-06-01","video_views":40,"audience_activity":[{"hour":"10","count":3}]}]}}`)
	defer closeFn()

	res, err := client.GetAccount(context.Background(), "act.1", GetAccountRequest{
		BusinessID: "b1",
		Fields:     AccountFields{AccountFieldUsername, AccountFieldFollowersCount, AccountFieldUsername},
		StartDate:  "2024-06-01",
	}, nil)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if res.Body.Data == nil || res.Body.Data.Username != "acme" || *res.Body.Data.FollowersCount != 12 {
		t.Fatalf("unexpected account %#v", res.Body.Data)
	}
	if !res.Body.Recognized() {
		t.Fatalf("expected account fully recognized")
	}
	if res.Header == nil || res.Header.TraceID != "log-1" {
		t.Fatalf("expected response header, got %#v", res.Header)
	}

	req := stub.last()
	if req.Method != http.MethodGet || req.Path != PathAccount {
		t.Fatalf("unexpected request %s %s", req.Method, req.Path)
	}
	if req.Query.Get("business_id") != "b1" || req.Query.Get("start_date") != "2024-06-01" {
		t.Fatalf("unexpected query %v", req.Query)
	}
	if req.Query.Get("fields") != `["followers_count","username"]` {
		t.Fatalf("unexpected fields %q", req.Query.Get("fields"))
	}
	if _, ok := req.Query["end_date"]; ok {
		t.Fatalf("empty end_date must be omitted")
	}
	if req.Header.Get("Access-Token") != "act.1" {
		t.Fatalf("expected Access-Token header, got %v", req.Header)
	}
}

func TestListVideos_DefaultsFieldsAndFlagsDrift(t *testing.T) {
	client, stub, closeFn := newTestClient(t, `{"request_id":"r1","code":0,"message":"OK","data":{"videos":[{"item_id":"v1","impression_sources":[{"impression_source":"For You","percentage":0.5,"rank":1}]}],"cursor":5,"has_more":true}}`)
	defer closeFn()

	maxCount := 10
	res, err := client.ListVideos(context.Background(), "act.1", ListVideosRequest{
		BusinessID: "b1",
		MaxCount:   &maxCount,
		Filters:    &VideoFilters{VideoIDs: []string{"v1"}},
	}, nil)
	if err != nil {
		t.Fatalf("list videos: %v", err)
	}
	if len(res.Body.Data.Videos) != 1 || !*res.Body.Data.HasMore {
		t.Fatalf("unexpected list %#v", res.Body.Data)
	}
	if res.Body.Recognized() {
		t.Fatalf("expected nested unknown field to flag drift")
	}

	req := stub.last()
	var fields []string
	if err := json.Unmarshal([]byte(req.Query.Get("fields")), &fields); err != nil || len(fields) != len(AllVideoFields()) {
		t.Fatalf("expected all video fields, got %q", req.Query.Get("fields"))
	}
	if req.Query.Get("max_count") != "10" || req.Query.Get("filters") != `{"video_ids":["v1"]}` {
		t.Fatalf("unexpected query %v", req.Query)
	}
	if _, ok := req.Query["cursor"]; ok {
		t.Fatalf("nil cursor must be omitted")
	}
}

func TestListComments_Query(t *testing.T) {
	client, stub, closeFn := newTestClient(t, `{"request_id":"r1","code":0,"message":"OK","data":{"comments":[{"comment_id":"c1","status":"PUBLIC","reply_list":[{"comment_id":"r1"}]}],"has_more":false}}`)
	defer closeFn()

	include := true
	res, err := client.ListComments(context.Background(), "act.1", ListCommentsRequest{
		BusinessID:     "b1",
		VideoID:        "v1",
		CommentIDs:     IDList{"c1", "c2"},
		IncludeReplies: &include,
		SortField:      CommentSortLikes,
		SortOrder:      SortOrderDesc,
	}, nil)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if res.Body.Data.Comments[0].ReplyList[0].CommentID != "r1" {
		t.Fatalf("unexpected comments %#v", res.Body.Data)
	}
	q := stub.last().Query
	if q.Get("video_id") != "v1" || q.Get("comment_ids") != `["c1","c2"]` || q.Get("include_replies") != "true" {
		t.Fatalf("unexpected query %v", q)
	}
	if q.Get("sort_field") != "likes" || q.Get("sort_order") != "desc" {
		t.Fatalf("unexpected sort %v", q)
	}
	if _, ok := q["status"]; ok {
		t.Fatalf("empty status must be omitted")
	}

	if _, err := client.ListComments(context.Background(), "act.1", ListCommentsRequest{BusinessID: "b1"}, nil); !core.IsKind(err, core.KindConfiguration) {
		t.Fatalf("expected configuration_error without video id, got %v", err)
	}
}

func TestPublishPhoto_PostsJSONBody(t *testing.T) {
	client, stub, closeFn := newTestClient(t, `{"request_id":"r1","code":0,"message":"OK","data":{"share_id":"s1"}}`)
	defer closeFn()

	res, err := client.PublishPhoto(context.Background(), "act.1", PublishPhotoRequest{
		BusinessID:  "b1",
		PhotoImages: []string{"https://cdn.example.com/1.jpg"},
		PostInfo:    PhotoPostInfo{Caption: "hi"},
	}, nil)
	if err != nil {
		t.Fatalf("publish photo: %v", err)
	}
	if res.Body.Data.ShareID != "s1" {
		t.Fatalf("unexpected result %#v", res.Body.Data)
	}

	req := stub.last()
	if req.Method != http.MethodPost || req.Path != PathPhotoPublish {
		t.Fatalf("unexpected request %s %s", req.Method, req.Path)
	}
	if req.Header.Get("Content-Type") != "application/json" {
		t.Fatalf("expected json content type")
	}
	var body map[string]any
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	info := body["post_info"].(map[string]any)
	if info["privacy_level"] != string(PrivacyPublicToEveryone) || info["is_brand_organic"] != false {
		t.Fatalf("unexpected post info %v", info)
	}
	if _, ok := info["title"]; ok {
		t.Fatalf("empty title must be omitted")
	}
}

func TestCreateReplyAndPublishStatus(t *testing.T) {
	client, stub, closeFn := newTestClient(t, `{"request_id":"r1","code":0,"message":"OK","data":{"status":"PUBLISH_COMPLETE","post_ids":["p1"]}}`)
	defer closeFn()

	status, err := client.PublishStatus(context.Background(), "act.1", PublishStatusRequest{BusinessID: "b1", PublishID: "pub1"}, nil)
	if err != nil {
		t.Fatalf("publish status: %v", err)
	}
	if status.Body.Data.Status != "PUBLISH_COMPLETE" || stub.last().Query.Get("publish_id") != "pub1" {
		t.Fatalf("unexpected status %#v", status.Body.Data)
	}

	stub.body = `{"request_id":"r2","code":0,"message":"OK","data":{"comment_id":"c9","parent_comment_id":"c1","video_id":"v1","user_id":"u1","create_time":"1","text":"thanks"}}`
	reply, err := client.CreateReply(context.Background(), "act.1", CreateReplyRequest{BusinessID: "b1", VideoID: "v1", CommentID: "c1", Text: "thanks"}, nil)
	if err != nil {
		t.Fatalf("create reply: %v", err)
	}
	if reply.Body.Data.CommentID != "c9" {
		t.Fatalf("unexpected reply %#v", reply.Body.Data)
	}
	if stub.last().Path != PathReplyCreate {
		t.Fatalf("unexpected path %s", stub.last().Path)
	}
}

func TestClient_RequiresTokenAndBusinessID(t *testing.T) {
	client, stub, closeFn := newTestClient(t, `{}`)
	defer closeFn()

	if _, err := client.GetAccount(context.Background(), "", GetAccountRequest{BusinessID: "b1"}, nil); !core.IsKind(err, core.KindConfiguration) {
		t.Fatalf("expected configuration_error without token, got %v", err)
	}
	if _, err := client.PublishVideo(context.Background(), "act.1", PublishVideoRequest{VideoURL: "https://x"}, nil); !core.IsKind(err, core.KindConfiguration) {
		t.Fatalf("expected configuration_error without business id, got %v", err)
	}
	if len(stub.requests) != 0 {
		t.Fatalf("expected no request sent")
	}
}

func TestEncodeQuery(t *testing.T) {
	cursor := int64(0)
	values, err := EncodeQuery(&ListVideosRequest{BusinessID: "b 1", Cursor: &cursor})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if values["business_id"] != "b 1" || values["cursor"] != "0" {
		t.Fatalf("unexpected values %v", values)
	}
	if _, ok := values["fields"]; ok {
		t.Fatalf("empty fields must be omitted")
	}
}
