package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"vidtube/internal/domain"
	"vidtube/pkg/logger"
)

// In-memory fakes behind the repository interfaces. They implement the same
// semantics the Postgres repositories promise (set toggles, cascades,
// pagination) so service behavior can be asserted without a database.

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

type fakeUserRepo struct {
	users map[string]*domain.User
	// history per user, most recent first
	history map[string][]string
	videos  *fakeVideoRepo
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[string]*domain.User),
		history: make(map[string][]string),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByUsernameOrEmail(_ context.Context, username, email string) (*domain.User, error) {
	for _, u := range f.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	if u, ok := f.users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeUserRepo) UpsertWatchHistory(_ context.Context, userID, videoID string) error {
	entries := f.history[userID]
	filtered := make([]string, 0, len(entries)+1)
	filtered = append(filtered, videoID)
	for _, id := range entries {
		if id != videoID {
			filtered = append(filtered, id)
		}
	}
	f.history[userID] = filtered
	return nil
}

func (f *fakeUserRepo) GetWatchHistory(_ context.Context, userID string) ([]*domain.Video, error) {
	var videos []*domain.Video
	for _, id := range f.history[userID] {
		if f.videos != nil {
			if v, ok := f.videos.videos[id]; ok {
				videos = append(videos, v)
			}
		}
	}
	return videos, nil
}

type fakeVideoRepo struct {
	videos   map[string]*domain.Video
	order    []string
	cascaded map[string]bool
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{
		videos:   make(map[string]*domain.Video),
		cascaded: make(map[string]bool),
	}
}

func (f *fakeVideoRepo) Create(_ context.Context, video *domain.Video) error {
	f.videos[video.ID] = video
	f.order = append(f.order, video.ID)
	return nil
}

func (f *fakeVideoRepo) GetByID(_ context.Context, id string) (*domain.Video, error) {
	return f.videos[id], nil
}

func (f *fakeVideoRepo) List(_ context.Context, filter domain.VideoFilter) ([]*domain.Video, int64, error) {
	var matched []*domain.Video
	for _, id := range f.order {
		v, ok := f.videos[id]
		if !ok || !v.IsPublished {
			continue
		}
		if filter.OwnerID != "" && v.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Query != "" {
			q := strings.ToLower(filter.Query)
			if !strings.Contains(strings.ToLower(v.Title), q) &&
				!strings.Contains(strings.ToLower(v.Description), q) {
				continue
			}
		}
		matched = append(matched, v)
	}

	total := int64(len(matched))
	skip := (filter.Page - 1) * filter.Limit
	if skip >= len(matched) {
		return nil, total, nil
	}
	end := skip + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (f *fakeVideoRepo) IncrementViews(_ context.Context, id string) error {
	if v, ok := f.videos[id]; ok {
		v.Views++
	}
	return nil
}

func (f *fakeVideoRepo) SetPublished(_ context.Context, id string, published bool) error {
	if v, ok := f.videos[id]; ok {
		v.IsPublished = published
	}
	return nil
}

func (f *fakeVideoRepo) DeleteCascade(_ context.Context, id string) error {
	delete(f.videos, id)
	f.cascaded[id] = true
	return nil
}

type fakeCommentRepo struct {
	comments map[string]*domain.Comment
	order    []string
	cascaded map[string]bool
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments: make(map[string]*domain.Comment),
		cascaded: make(map[string]bool),
	}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	f.comments[comment.ID] = comment
	f.order = append(f.order, comment.ID)
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id string) (*domain.Comment, error) {
	return f.comments[id], nil
}

func (f *fakeCommentRepo) byVideo(videoID string) []*domain.Comment {
	var out []*domain.Comment
	// newest first
	for i := len(f.order) - 1; i >= 0; i-- {
		if c, ok := f.comments[f.order[i]]; ok && c.VideoID == videoID {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeCommentRepo) ListByVideo(_ context.Context, videoID string, page, limit int) ([]*domain.Comment, error) {
	all := f.byVideo(videoID)
	skip := (page - 1) * limit
	if skip >= len(all) {
		return nil, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], nil
}

func (f *fakeCommentRepo) ListAllByVideo(_ context.Context, videoID string) ([]*domain.Comment, error) {
	return f.byVideo(videoID), nil
}

func (f *fakeCommentRepo) UpdateContent(_ context.Context, id, content string) (*domain.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, nil
	}
	c.Content = content
	return c, nil
}

func (f *fakeCommentRepo) DeleteCascade(_ context.Context, id string) error {
	delete(f.comments, id)
	f.cascaded[id] = true
	return nil
}

type fakeLikeRepo struct {
	videoLikes   map[string]map[string]bool // videoID -> userID set
	commentLikes map[string]map[string]bool // commentID -> userID set
	videos       *fakeVideoRepo
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{
		videoLikes:   make(map[string]map[string]bool),
		commentLikes: make(map[string]map[string]bool),
	}
}

func toggle(likes map[string]map[string]bool, targetID, userID string) bool {
	set, ok := likes[targetID]
	if !ok {
		set = make(map[string]bool)
		likes[targetID] = set
	}
	if set[userID] {
		delete(set, userID)
		return false
	}
	set[userID] = true
	return true
}

func (f *fakeLikeRepo) ToggleVideoLike(_ context.Context, userID, videoID string) (bool, error) {
	return toggle(f.videoLikes, videoID, userID), nil
}

func (f *fakeLikeRepo) ToggleCommentLike(_ context.Context, userID, commentID string) (bool, error) {
	return toggle(f.commentLikes, commentID, userID), nil
}

func (f *fakeLikeRepo) CountByVideo(_ context.Context, videoID string) (int64, error) {
	return int64(len(f.videoLikes[videoID])), nil
}

func (f *fakeLikeRepo) CountByComments(_ context.Context, commentIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, id := range commentIDs {
		if n := len(f.commentLikes[id]); n > 0 {
			counts[id] = int64(n)
		}
	}
	return counts, nil
}

func (f *fakeLikeRepo) LikedCommentIDs(_ context.Context, userID string, commentIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool)
	for _, id := range commentIDs {
		if f.commentLikes[id][userID] {
			liked[id] = true
		}
	}
	return liked, nil
}

func (f *fakeLikeRepo) ListLikedVideos(_ context.Context, userID string) ([]*domain.Video, error) {
	var ids []string
	for videoID, users := range f.videoLikes {
		if users[userID] {
			ids = append(ids, videoID)
		}
	}
	sort.Strings(ids)

	var videos []*domain.Video
	for _, id := range ids {
		if f.videos != nil {
			if v, ok := f.videos.videos[id]; ok {
				videos = append(videos, v)
			}
		}
	}
	return videos, nil
}

type fakeSubscriptionRepo struct {
	subs map[string]map[string]bool // subscriberID -> channelID set
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[string]map[string]bool)}
}

func (f *fakeSubscriptionRepo) Toggle(_ context.Context, subscriberID, channelID string) (bool, error) {
	return toggle(f.subs, subscriberID, channelID), nil
}

func (f *fakeSubscriptionRepo) CountSubscribers(_ context.Context, channelID string) (int64, error) {
	var n int64
	for _, channels := range f.subs {
		if channels[channelID] {
			n++
		}
	}
	return n, nil
}

func (f *fakeSubscriptionRepo) CountSubscribedTo(_ context.Context, subscriberID string) (int64, error) {
	return int64(len(f.subs[subscriberID])), nil
}

func (f *fakeSubscriptionRepo) IsSubscribed(_ context.Context, subscriberID, channelID string) (bool, error) {
	return f.subs[subscriberID][channelID], nil
}

func (f *fakeSubscriptionRepo) ListSubscribedChannels(_ context.Context, subscriberID string) ([]*domain.Subscription, error) {
	var out []*domain.Subscription
	var channels []string
	for channelID := range f.subs[subscriberID] {
		channels = append(channels, channelID)
	}
	sort.Strings(channels)
	for _, channelID := range channels {
		out = append(out, &domain.Subscription{SubscriberID: subscriberID, ChannelID: channelID})
	}
	return out, nil
}

func (f *fakeSubscriptionRepo) ListSubscribers(_ context.Context, channelID string) ([]*domain.Subscription, error) {
	var out []*domain.Subscription
	var subscribers []string
	for subscriberID, channels := range f.subs {
		if channels[channelID] {
			subscribers = append(subscribers, subscriberID)
		}
	}
	sort.Strings(subscribers)
	for _, subscriberID := range subscribers {
		out = append(out, &domain.Subscription{SubscriberID: subscriberID, ChannelID: channelID})
	}
	return out, nil
}

type fakePlaylistRepo struct {
	playlists map[string]*domain.Playlist
	order     []string
	members   map[string][]string // playlistID -> videoIDs in added order
	videos    *fakeVideoRepo
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{
		playlists: make(map[string]*domain.Playlist),
		members:   make(map[string][]string),
	}
}

func (f *fakePlaylistRepo) Create(_ context.Context, playlist *domain.Playlist) error {
	f.playlists[playlist.ID] = playlist
	f.order = append(f.order, playlist.ID)
	return nil
}

func (f *fakePlaylistRepo) populate(p *domain.Playlist) *domain.Playlist {
	out := *p
	out.Videos = nil
	for _, videoID := range f.members[p.ID] {
		if f.videos != nil {
			if v, ok := f.videos.videos[videoID]; ok {
				out.Videos = append(out.Videos, v)
			}
		}
	}
	return &out
}

func (f *fakePlaylistRepo) GetByID(_ context.Context, id string) (*domain.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok {
		return nil, nil
	}
	return f.populate(p), nil
}

func (f *fakePlaylistRepo) Update(_ context.Context, id, name, description string) (*domain.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok {
		return nil, nil
	}
	p.Name = name
	p.Description = description
	return f.populate(p), nil
}

func (f *fakePlaylistRepo) Delete(_ context.Context, id string) error {
	delete(f.playlists, id)
	delete(f.members, id)
	return nil
}

func (f *fakePlaylistRepo) AddVideo(_ context.Context, playlistID, videoID string) error {
	for _, id := range f.members[playlistID] {
		if id == videoID {
			return nil
		}
	}
	f.members[playlistID] = append(f.members[playlistID], videoID)
	return nil
}

func (f *fakePlaylistRepo) RemoveVideo(_ context.Context, playlistID, videoID string) error {
	members := f.members[playlistID]
	for i, id := range members {
		if id == videoID {
			f.members[playlistID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakePlaylistRepo) ListByUser(_ context.Context, userID string) ([]*domain.Playlist, error) {
	var out []*domain.Playlist
	for _, id := range f.order {
		if p, ok := f.playlists[id]; ok && p.OwnerID == userID {
			out = append(out, f.populate(p))
		}
	}
	return out, nil
}

type fakeSessionStore struct {
	digests map[string]string
	ttls    map[string]time.Duration
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		digests: make(map[string]string),
		ttls:    make(map[string]time.Duration),
	}
}

func (f *fakeSessionStore) SetRefreshToken(_ context.Context, userID, digest string, ttl time.Duration) error {
	f.digests[userID] = digest
	f.ttls[userID] = ttl
	return nil
}

func (f *fakeSessionStore) GetRefreshToken(_ context.Context, userID string) (string, error) {
	digest, ok := f.digests[userID]
	if !ok {
		return "", fmt.Errorf("session not found")
	}
	return digest, nil
}

func (f *fakeSessionStore) DeleteRefreshToken(_ context.Context, userID string) error {
	delete(f.digests, userID)
	return nil
}

type fakeMediaStorage struct {
	uploads    []string
	deleted    []string
	failUpload bool
}

func (f *fakeMediaStorage) Upload(_ context.Context, folder, filename string, _ io.Reader, _ int64, _ string) (string, string, error) {
	if f.failUpload {
		return "", "", fmt.Errorf("upload failed")
	}
	key := folder + "/" + filename
	f.uploads = append(f.uploads, key)
	return "https://media.test/" + key, key, nil
}

func (f *fakeMediaStorage) Delete(_ context.Context, key string) error {
	if key != "" {
		f.deleted = append(f.deleted, key)
	}
	return nil
}
