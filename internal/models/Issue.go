package models

import "time"

const StoreDateLayout = "2006-01-02"

type Issue struct {
	Title       string
	IssueNumber string
	StoreDate   string
	VolumeName  string
	VolumeID    int
	DetailURL   string
	ImageURL    string
}

// ReleaseDay parses StoreDate in loc. Issues without a store date report ok=false.
func (i Issue) ReleaseDay(loc *time.Location) (time.Time, bool) {
	if i.StoreDate == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(StoreDateLayout, i.StoreDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

func (i Issue) DisplayTitle() string {
	if i.IssueNumber != "" && i.Title == i.VolumeName {
		return i.Title + " #" + i.IssueNumber
	}
	return i.Title
}
