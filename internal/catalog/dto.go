package catalog

import (
	"bytes"
	"comicbot/internal/models"
	json "github.com/goccy/go-json"
)

// envelope is the wrapper every ComicVine list endpoint returns. status_code 1 means OK.
type envelope[T any] struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Results    []T    `json:"results"`
}

// flexString accepts a JSON string, number or null; ComicVine is not consistent about years.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type namedRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type volumeDTO struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	StartYear flexString `json:"start_year"`
	EndYear   flexString `json:"end_year"`
	Publisher *namedRef  `json:"publisher"`
}

func (v volumeDTO) toModel() models.VolumeSearchResult {
	res := models.VolumeSearchResult{
		VolumeID:  v.ID,
		Name:      v.Name,
		StartYear: string(v.StartYear),
		EndYear:   string(v.EndYear),
	}
	if v.Publisher != nil {
		res.Publisher = v.Publisher.Name
	}
	return res
}

type imageDTO struct {
	OriginalURL string `json:"original_url"`
}

type issueDTO struct {
	Name          *string    `json:"name"`
	IssueNumber   flexString `json:"issue_number"`
	StoreDate     *string    `json:"store_date"`
	Volume        *namedRef  `json:"volume"`
	SiteDetailURL string     `json:"site_detail_url"`
	Image         *imageDTO  `json:"image"`
}

func (i issueDTO) toModel() models.Issue {
	issue := models.Issue{
		IssueNumber: string(i.IssueNumber),
		DetailURL:   i.SiteDetailURL,
		VolumeName:  "Unknown Series",
	}
	if i.Volume != nil {
		issue.VolumeID = i.Volume.ID
		if i.Volume.Name != "" {
			issue.VolumeName = i.Volume.Name
		}
	}
	if i.StoreDate != nil {
		issue.StoreDate = *i.StoreDate
	}
	if i.Image != nil {
		issue.ImageURL = i.Image.OriginalURL
	}

	switch {
	case i.Name != nil && *i.Name != "":
		issue.Title = *i.Name
	case i.Volume != nil && i.Volume.Name != "":
		issue.Title = i.Volume.Name
	default:
		issue.Title = "Unnamed"
	}
	return issue
}
