package models

import "fmt"

type VolumeSearchResult struct {
	VolumeID  int
	Name      string
	StartYear string
	Publisher string
	EndYear   string
}

func (v VolumeSearchResult) Series() FollowedSeries {
	return FollowedSeries{Name: v.Name, VolumeID: v.VolumeID}
}

// Label renders the volume the way it is listed in a selection page.
func (v VolumeSearchResult) Label() string {
	years := v.StartYear
	if years == "" {
		years = "?"
	}
	if v.EndYear != "" && v.EndYear != v.StartYear {
		years += "–" + v.EndYear
	}
	label := fmt.Sprintf("%s (%s)", v.Name, years)
	if v.Publisher != "" {
		label += " - " + v.Publisher
	}
	return label
}
