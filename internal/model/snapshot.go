package model

import "time"

type News struct {
	Title     string `bson:"title" json:"title"`
	Paragraph string `bson:"paragraph" json:"paragraph"`
}

type Fact struct {
	Description string `bson:"description" json:"description"`
	Value       string `bson:"value" json:"value"`
}

type Hemisphere struct {
	Title    string `bson:"title" json:"title"`
	ImageURL string `bson:"image_url" json:"image_url"`
}

// Snapshot is one complete scrape. It is only ever stored or replaced as a
// whole.
type Snapshot struct {
	LatestNews      News         `bson:"latest_news" json:"latest_news"`
	FeatureImageURL string       `bson:"feature_image_url" json:"feature_image_url"`
	Facts           []Fact       `bson:"facts" json:"facts"`
	Weather         string       `bson:"weather_summary" json:"weather_summary"`
	Hemispheres     []Hemisphere `bson:"hemisphere_images" json:"hemisphere_images"`
}

// StoredSnapshot is a Snapshot as read back from a store.
type StoredSnapshot struct {
	Snapshot  `bson:",inline"`
	UpdatedAt time.Time `bson:"updated" json:"updated"`
}
