package models

import "time"

// StreamState describes the lifecycle of the stream itself, not its chat.
type StreamState string

// Possible livestream states as persisted by the CMS
const (
	StreamEnabled  StreamState = "enabled"
	StreamDisabled StreamState = "disabled"
	StreamTesting  StreamState = "testing"
	StreamFinished StreamState = "finished"
)

// LiveStream holds the flattened structure for a livestream as served to the
// admin panel. The uuid is the externally shareable/routable key.
type LiveStream struct {
	ID               int                    `json:"id"`
	UUID             string                 `json:"uuid"`
	State            StreamState            `json:"state"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	ScheduledStartAt *time.Time             `json:"scheduledStartAt,omitempty"`
	StartedAt        *time.Time             `json:"startedAt,omitempty"`
	EndedAt          *time.Time             `json:"endedAt,omitempty"`
	Chat             ChatRef                `json:"chat"`
	Broadcasters     []Broadcaster          `json:"broadcasters"`
	Banner           *Media                 `json:"banner,omitempty"`
	StreamProducts   []StreamProduct        `json:"streamProducts"`
	Coupons          []Coupon               `json:"coupons"`
	MetaData         map[string]interface{} `json:"metaData,omitempty"`
}

// ChatRef is the reference a livestream carries to its single chat room. The
// room id is immutable for the session's lifetime.
type ChatRef struct {
	ID     int  `json:"id"`
	Active bool `json:"active"`
}

// Broadcaster is a presenter attached to a livestream
type Broadcaster struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Media is an uploaded asset reference (banner, avatar)
type Media struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// StreamProduct is a product pinned to a livestream
type StreamProduct struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Highlighted bool    `json:"highlighted"`
}

// Coupon is a discount code promoted during a livestream
type Coupon struct {
	ID       int     `json:"id"`
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}
