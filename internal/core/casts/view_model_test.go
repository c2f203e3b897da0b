package casts

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func intPtr(n int) *int { return &n }

var testViewOptions = ViewOptions{
	WebBaseURL: "https://warpcast.com",
	Location:   time.UTC,
}

func baseCast() *Cast {
	return &Cast{
		Hash:      "0x1a2b3c4d5e",
		Text:      "gm",
		Timestamp: time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC).UnixMilli(),
		Author: Author{
			FID:         3,
			Username:    "dwr",
			DisplayName: "Dan Romero",
			Pfp:         &ProfilePicture{URL: "https://i.imgur.com/dwr.png"},
		},
	}
}

func TestProject_Links(t *testing.T) {
	view := Project(baseCast(), testViewOptions)

	if view.Author.ProfileURL != "https://warpcast.com/~/profiles/3" {
		t.Errorf("ProfileURL = %q", view.Author.ProfileURL)
	}
	if view.CastURL != "https://warpcast.com/dwr/0x1a2b3c4d5e" {
		t.Errorf("CastURL = %q", view.CastURL)
	}
	if view.Author.AvatarURL != "https://i.imgur.com/dwr.png" {
		t.Errorf("AvatarURL = %q", view.Author.AvatarURL)
	}
}

func TestProject_Timestamp(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		loc  *time.Location
		want string
	}{
		{
			name: "afternoon",
			at:   time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC),
			loc:  time.UTC,
			want: "Mar 5, 2024, 2:07 PM",
		},
		{
			name: "just after midnight",
			at:   time.Date(2023, 12, 31, 0, 5, 0, 0, time.UTC),
			loc:  time.UTC,
			want: "Dec 31, 2023, 12:05 AM",
		},
		{
			name: "rendered in display zone",
			at:   time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC),
			loc:  time.FixedZone("UTC-5", -5*60*60),
			want: "Mar 5, 2024, 9:07 AM",
		},
		{
			name: "nil zone falls back to UTC",
			at:   time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC),
			loc:  nil,
			want: "Mar 5, 2024, 2:07 PM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cast := baseCast()
			cast.Timestamp = tt.at.UnixMilli()

			view := Project(cast, ViewOptions{WebBaseURL: "https://warpcast.com", Location: tt.loc})
			if view.Timestamp != tt.want {
				t.Errorf("Timestamp = %q, want %q", view.Timestamp, tt.want)
			}
			if !view.PublishedAt.Equal(tt.at) {
				t.Errorf("PublishedAt = %v, want %v", view.PublishedAt, tt.at)
			}
		})
	}
}

func TestProject_RecastCount(t *testing.T) {
	tests := []struct {
		name     string
		combined *int
		recasts  *Counter
		want     Count
	}{
		{
			name:     "zero combined falls back to recasts",
			combined: intPtr(0),
			recasts:  &Counter{Count: 7},
			want:     KnownCount(7),
		},
		{
			name:     "non-zero combined wins",
			combined: intPtr(12),
			recasts:  &Counter{Count: 7},
			want:     KnownCount(12),
		},
		{
			name:     "combined without recasts",
			combined: intPtr(12),
			want:     KnownCount(12),
		},
		{
			name:    "recasts only",
			recasts: &Counter{Count: 3},
			want:    KnownCount(3),
		},
		{
			name:     "zero combined and no recasts",
			combined: intPtr(0),
			want:     KnownCount(0),
		},
		{
			name: "both absent",
			want: Count{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cast := baseCast()
			cast.CombinedRecastCount = tt.combined
			cast.Recasts = tt.recasts

			view := Project(cast, testViewOptions)
			if view.Recasts != tt.want {
				t.Errorf("Recasts = %+v, want %+v", view.Recasts, tt.want)
			}
		})
	}
}

func TestProject_OptionalCountsStayUnknown(t *testing.T) {
	cast := baseCast()
	cast.Reactions = &Counter{Count: 0}

	view := Project(cast, testViewOptions)

	if view.Replies.Known {
		t.Error("missing replies should be unknown")
	}
	if view.Watches.Known {
		t.Error("missing watches should be unknown")
	}
	if !view.Likes.Known || view.Likes.Value != 0 {
		t.Errorf("present zero reactions should be a known zero, got %+v", view.Likes)
	}
	if view.Replies.String() != "" {
		t.Errorf("unknown count should render empty, got %q", view.Replies.String())
	}
	if view.Likes.String() != "0" {
		t.Errorf("known zero should render \"0\", got %q", view.Likes.String())
	}
}

func TestProject_MediaOrderPreserved(t *testing.T) {
	cast := baseCast()
	cast.Embeds = &Embeds{
		Images: []ImageEmbed{
			{URL: "https://img/1.png", SourceURL: "https://src/1", Alt: "one"},
			{URL: "https://img/2.png"},
			{URL: "https://img/3.png", Alt: "three"},
		},
		Videos: []VideoEmbed{
			{URL: "https://vid/1.m3u8", Width: 1920, Height: 1080, ThumbnailURL: "https://vid/1.jpg", Duration: 65},
			{URL: "https://vid/2.m3u8", Width: 1080, Height: 1920},
		},
	}

	view := Project(cast, testViewOptions)

	images := view.Images()
	if len(images) != 3 {
		t.Fatalf("expected 3 images, got %d", len(images))
	}
	for i, want := range cast.Embeds.Images {
		if images[i].URL != want.URL || images[i].Alt != want.Alt || images[i].SourceURL != want.SourceURL {
			t.Errorf("image %d = %+v, want %+v", i, images[i], want)
		}
		if images[i].Kind != MediaImage {
			t.Errorf("image %d kind = %q", i, images[i].Kind)
		}
	}

	videos := view.Videos()
	if len(videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(videos))
	}
	for i, want := range cast.Embeds.Videos {
		if videos[i].URL != want.URL {
			t.Errorf("video %d URL = %q, want %q", i, videos[i].URL, want.URL)
		}
	}

	if len(view.Media) != 5 || view.Media[0].Kind != MediaImage || view.Media[3].Kind != MediaVideo {
		t.Errorf("expected images before videos, got %+v", view.Media)
	}
}

func TestProject_VideoAspectRatio(t *testing.T) {
	cast := baseCast()
	cast.Embeds = &Embeds{Videos: []VideoEmbed{
		{URL: "https://vid/wide.m3u8", Width: 1920, Height: 1080},
		{URL: "https://vid/unknown.m3u8"},
	}}

	videos := Project(cast, testViewOptions).Videos()

	want := 1920.0 / 1080.0
	if math.Abs(videos[0].AspectRatio-want) > 1e-12 {
		t.Errorf("AspectRatio = %v, want %v", videos[0].AspectRatio, want)
	}
	if videos[0].AspectRatioCSS() != "1.7778" {
		t.Errorf("AspectRatioCSS = %q", videos[0].AspectRatioCSS())
	}
	if videos[1].AspectRatio != 0 {
		t.Errorf("video without dimensions should have no ratio, got %v", videos[1].AspectRatio)
	}
	if videos[1].AspectRatioCSS() != "1.7778" {
		t.Errorf("fallback AspectRatioCSS = %q", videos[1].AspectRatioCSS())
	}
}

func TestProject_Channel(t *testing.T) {
	tests := []struct {
		name string
		tags []Tag
		want *ChannelView
	}{
		{
			name: "no tags",
			tags: []Tag{},
			want: nil,
		},
		{
			name: "first tag wins",
			tags: []Tag{{Name: "Farcaster", ImageURL: "https://fc.png"}, {Name: "Other"}},
			want: &ChannelView{Name: "Farcaster", IconURL: "https://fc.png"},
		},
		{
			name: "name without icon",
			tags: []Tag{{Name: "memes"}},
			want: &ChannelView{Name: "memes"},
		},
		{
			name: "empty tag",
			tags: []Tag{{Type: "channel"}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cast := baseCast()
			cast.Tags = tt.tags

			got := Project(cast, testViewOptions).Channel
			if tt.want == nil {
				if got != nil {
					t.Errorf("expected no channel, got %+v", got)
				}
				return
			}
			if got == nil || *got != *tt.want {
				t.Errorf("Channel = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProject_MissingOptionalAuthorFields(t *testing.T) {
	cast := baseCast()
	cast.Author.Pfp = nil
	cast.Author.DisplayName = ""

	view := Project(cast, testViewOptions)
	if view.Author.AvatarURL != "" {
		t.Errorf("AvatarURL = %q, want empty", view.Author.AvatarURL)
	}
	if view.Author.DisplayName != "dwr" {
		t.Errorf("DisplayName should fall back to username, got %q", view.Author.DisplayName)
	}
	if view.Media != nil {
		t.Errorf("expected no media, got %+v", view.Media)
	}
}

func TestProject_Nil(t *testing.T) {
	if Project(nil, testViewOptions) != nil {
		t.Error("expected nil view for nil cast")
	}
}

func TestFormatCount(t *testing.T) {
	tests := map[int]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		12345:   "12,345",
		1234567: "1,234,567",
	}
	for n, want := range tests {
		if got := FormatCount(n); got != want {
			t.Errorf("FormatCount(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestMediaEmbed_DurationLabel(t *testing.T) {
	tests := map[float64]string{
		0:      "",
		5:      "0:05",
		65.2:   "1:05",
		3725.0: "1:02:05",
	}
	for secs, want := range tests {
		if got := (MediaEmbed{Duration: secs}).DurationLabel(); got != want {
			t.Errorf("DurationLabel(%v) = %q, want %q", secs, got, want)
		}
	}
}

func TestCount_JSON(t *testing.T) {
	view := CastView{Replies: KnownCount(1234), Likes: Count{}}

	data, err := json.Marshal(struct {
		Replies Count `json:"replies"`
		Likes   Count `json:"likes"`
	}{view.Replies, view.Likes})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"replies":1234,"likes":null}` {
		t.Errorf("got %s", data)
	}

	var decoded struct {
		Replies Count `json:"replies"`
		Likes   Count `json:"likes"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Replies != KnownCount(1234) || decoded.Likes.Known {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestMediaEmbed_LinkURL(t *testing.T) {
	if got := (MediaEmbed{URL: "https://a", SourceURL: "https://b"}).LinkURL(); got != "https://b" {
		t.Errorf("LinkURL = %q", got)
	}
	if got := (MediaEmbed{URL: "https://a"}).LinkURL(); got != "https://a" {
		t.Errorf("LinkURL = %q", got)
	}
}
