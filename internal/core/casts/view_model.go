package casts

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// MediaKind discriminates MediaEmbed
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// defaultAspectRatio is used for videos that report no dimensions
const defaultAspectRatio = 16.0 / 9.0

// CastView is the flat, display-ready form of a Cast
type CastView struct {
	PublishedAt time.Time    `json:"publishedAt"`
	Channel     *ChannelView `json:"channel,omitempty"`
	Author      AuthorView   `json:"author"`
	Hash        string       `json:"hash"`
	Text        string       `json:"text"`
	CastURL     string       `json:"castUrl"`
	Timestamp   string       `json:"timestamp"`
	Media       []MediaEmbed `json:"media"`
	Replies     Count        `json:"replies"`
	Recasts     Count        `json:"recasts"`
	Likes       Count        `json:"likes"`
	Watches     Count        `json:"watches"`
}

// AuthorView is the author block of the card
type AuthorView struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	ProfileURL  string `json:"profileUrl"`
	FID         int64  `json:"fid"`
}

// ChannelView is the channel badge. Either field may be empty.
type ChannelView struct {
	Name    string `json:"name,omitempty"`
	IconURL string `json:"iconUrl,omitempty"`
}

// MediaEmbed is an image or a video, discriminated by Kind.
// Video-only fields are zero for images.
type MediaEmbed struct {
	Kind         MediaKind `json:"kind"`
	URL          string    `json:"url"`
	SourceURL    string    `json:"sourceUrl,omitempty"`
	Alt          string    `json:"alt,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	Duration     float64   `json:"duration,omitempty"`
	AspectRatio  float64   `json:"aspectRatio,omitempty"`
	Width        int       `json:"width,omitempty"`
	Height       int       `json:"height,omitempty"`
}

// AspectRatioCSS returns a plain number for the CSS aspect-ratio property
func (m MediaEmbed) AspectRatioCSS() string {
	ratio := m.AspectRatio
	if ratio <= 0 {
		ratio = defaultAspectRatio
	}
	return strconv.FormatFloat(ratio, 'f', 4, 64)
}

// DurationLabel renders the video duration, or "" when unknown
func (m MediaEmbed) DurationLabel() string {
	return formatDuration(m.Duration)
}

// LinkURL is where clicking the media leads: the source page if known, else the media itself
func (m MediaEmbed) LinkURL() string {
	if m.SourceURL != "" {
		return m.SourceURL
	}
	return m.URL
}

// Images returns the image embeds in provider order
func (v *CastView) Images() []MediaEmbed {
	return v.mediaOfKind(MediaImage)
}

// Videos returns the video embeds in provider order
func (v *CastView) Videos() []MediaEmbed {
	return v.mediaOfKind(MediaVideo)
}

func (v *CastView) mediaOfKind(kind MediaKind) []MediaEmbed {
	var out []MediaEmbed
	for _, m := range v.Media {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

// Count is an engagement count the provider may leave out.
// Unknown counts render as an empty label and encode as JSON null.
type Count struct {
	Value int
	Known bool
}

// KnownCount returns a Count holding n
func KnownCount(n int) Count {
	return Count{Value: n, Known: true}
}

func countFrom(c *Counter) Count {
	if c == nil {
		return Count{}
	}
	return KnownCount(c.Count)
}

// String renders the count with thousands separators, or "" when unknown
func (c Count) String() string {
	if !c.Known {
		return ""
	}
	return FormatCount(c.Value)
}

func (c Count) MarshalJSON() ([]byte, error) {
	if !c.Known {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(c.Value)), nil
}

func (c *Count) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Count{}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = KnownCount(n)
	return nil
}

// ViewOptions controls link construction and timestamp rendering
type ViewOptions struct {
	Location   *time.Location
	WebBaseURL string
}

// ViewOptions derives projection options from the config
func (c Config) ViewOptions() ViewOptions {
	return ViewOptions{
		WebBaseURL: c.WebBaseURL,
		Location:   c.Location(),
	}
}

// ProfileURL is the provider profile page for an author id
func ProfileURL(webBaseURL string, fid int64) string {
	return strings.TrimSuffix(webBaseURL, "/") + "/~/profiles/" + strconv.FormatInt(fid, 10)
}

// CastURL is the canonical provider page for a cast
func CastURL(webBaseURL, username, hash string) string {
	return strings.TrimSuffix(webBaseURL, "/") + "/" + url.PathEscape(username) + "/" + url.PathEscape(hash)
}

// Project flattens a resolved cast into its view model.
// It never fails: every optional provider field has a defined fallback.
func Project(c *Cast, opts ViewOptions) *CastView {
	if c == nil {
		return nil
	}

	published := time.UnixMilli(c.Timestamp)

	view := &CastView{
		Hash: c.Hash,
		Text: c.Text,
		Author: AuthorView{
			FID:         c.Author.FID,
			Username:    c.Author.Username,
			DisplayName: c.Author.DisplayName,
			ProfileURL:  ProfileURL(opts.WebBaseURL, c.Author.FID),
		},
		CastURL:     CastURL(opts.WebBaseURL, c.Author.Username, c.Hash),
		PublishedAt: published.UTC(),
		Timestamp:   FormatTimestamp(published, opts.Location),
		Replies:     countFrom(c.Replies),
		Likes:       countFrom(c.Reactions),
		Watches:     countFrom(c.Watches),
		Recasts:     recastCount(c),
		Media:       projectMedia(c.Embeds),
		Channel:     projectChannel(c.Tags),
	}

	if view.Author.DisplayName == "" {
		view.Author.DisplayName = c.Author.Username
	}
	if c.Author.Pfp != nil {
		view.Author.AvatarURL = c.Author.Pfp.URL
	}

	return view
}

// recastCount prefers a non-zero combinedRecastCount over recasts.count.
// A present zero combined count still counts as known when recasts is missing.
func recastCount(c *Cast) Count {
	if c.CombinedRecastCount != nil && *c.CombinedRecastCount != 0 {
		return KnownCount(*c.CombinedRecastCount)
	}
	if c.Recasts != nil {
		return KnownCount(c.Recasts.Count)
	}
	if c.CombinedRecastCount != nil {
		return KnownCount(0)
	}
	return Count{}
}

// projectMedia lists images then videos, each in provider order
func projectMedia(embeds *Embeds) []MediaEmbed {
	if embeds == nil {
		return nil
	}

	media := make([]MediaEmbed, 0, len(embeds.Images)+len(embeds.Videos))
	for _, img := range embeds.Images {
		media = append(media, MediaEmbed{
			Kind:      MediaImage,
			URL:       img.URL,
			SourceURL: img.SourceURL,
			Alt:       img.Alt,
		})
	}
	for _, vid := range embeds.Videos {
		m := MediaEmbed{
			Kind:         MediaVideo,
			URL:          vid.URL,
			SourceURL:    vid.SourceURL,
			ThumbnailURL: vid.ThumbnailURL,
			Duration:     vid.Duration,
			Width:        vid.Width,
			Height:       vid.Height,
		}
		if vid.Height > 0 {
			m.AspectRatio = float64(vid.Width) / float64(vid.Height)
		}
		media = append(media, m)
	}

	return media
}

// projectChannel takes the first tag; a tag with neither name nor icon yields no badge
func projectChannel(tags []Tag) *ChannelView {
	if len(tags) == 0 {
		return nil
	}
	tag := tags[0]
	if tag.Name == "" && tag.ImageURL == "" {
		return nil
	}
	return &ChannelView{
		Name:    tag.Name,
		IconURL: tag.ImageURL,
	}
}
