package models

// FollowedSeries is one entry of a user's follow list as stored on disk.
type FollowedSeries struct {
	Name     string `json:"name"`
	VolumeID int    `json:"volume_id"`
}

// FollowDocument is the on-disk shape of the follow store: user id to followed series.
type FollowDocument map[string][]FollowedSeries
