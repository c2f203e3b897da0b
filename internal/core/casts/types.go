package casts

import "encoding/json"

// CastTypeRootEmbed marks the contentless wrapper the provider puts in front of
// a cast published into a channel. It is never rendered.
const CastTypeRootEmbed = "root-embed"

// threadLimit is how many casts are requested from the thread listing
const threadLimit = 5

// Identifier names a single cast by its author's username and a hash prefix
type Identifier struct {
	Username   string `json:"username"`
	HashPrefix string `json:"hashPrefix"`
}

// ThreadQuery is the request sent to the provider's thread listing
type ThreadQuery struct {
	CastHashPrefix string
	Username       string
	Limit          int
}

// threadResponse is the envelope returned by the thread listing endpoint
type threadResponse struct {
	Result struct {
		Casts []json.RawMessage `json:"casts"`
	} `json:"result"`
}

// Cast is a cast exactly as the provider returns it.
// Counters and embeds the provider may omit are pointers so absence stays
// distinguishable from zero.
type Cast struct {
	Author              Author   `json:"author"`
	Replies             *Counter `json:"replies,omitempty"`
	Reactions           *Counter `json:"reactions,omitempty"`
	Recasts             *Counter `json:"recasts,omitempty"`
	Watches             *Counter `json:"watches,omitempty"`
	CombinedRecastCount *int     `json:"combinedRecastCount,omitempty"`
	Embeds              *Embeds  `json:"embeds,omitempty"`
	Hash                string   `json:"hash"`
	ThreadHash          string   `json:"threadHash,omitempty"`
	ParentHash          string   `json:"parentHash,omitempty"`
	CastType            string   `json:"castType,omitempty"`
	Text                string   `json:"text"`
	Tags                []Tag    `json:"tags,omitempty"`
	// Timestamp is milliseconds since the Unix epoch
	Timestamp int64 `json:"timestamp"`

	// shapeErr is set by the fetcher when this entry does not match the cast
	// schema. It only matters if the entry is the one selected for rendering.
	shapeErr error
}

// IsRootEmbed reports whether the cast is a channel wrapper entry
func (c *Cast) IsRootEmbed() bool {
	return c.CastType == CastTypeRootEmbed
}

// Author is the cast author's public profile
type Author struct {
	Pfp         *ProfilePicture `json:"pfp,omitempty"`
	Username    string          `json:"username"`
	DisplayName string          `json:"displayName,omitempty"`
	FID         int64           `json:"fid"`
}

// ProfilePicture is the author's avatar
type ProfilePicture struct {
	URL      string `json:"url"`
	Verified bool   `json:"verified,omitempty"`
}

// Counter wraps a single engagement count
type Counter struct {
	Count int `json:"count"`
}

// Tag is cast metadata; the first tag identifies the channel
type Tag struct {
	Type     string `json:"type,omitempty"`
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Embeds holds the media attached to a cast
type Embeds struct {
	Images []ImageEmbed `json:"images,omitempty"`
	Videos []VideoEmbed `json:"videos,omitempty"`
}

// ImageEmbed is an attached image
type ImageEmbed struct {
	Type      string `json:"type,omitempty"`
	URL       string `json:"url"`
	SourceURL string `json:"sourceUrl,omitempty"`
	Alt       string `json:"alt,omitempty"`
}

// VideoEmbed is an attached video. Width and Height are in pixels, Duration in seconds.
type VideoEmbed struct {
	Type         string  `json:"type,omitempty"`
	URL          string  `json:"url"`
	SourceURL    string  `json:"sourceUrl,omitempty"`
	ThumbnailURL string  `json:"thumbnailUrl,omitempty"`
	Duration     float64 `json:"duration,omitempty"`
	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
}
