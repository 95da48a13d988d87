package domain

import "time"

type Source string

const (
	SourceWebsite     Source = "website"
	SourceFacebookAds Source = "facebook_ads"
	SourceGoogleAds   Source = "google_ads"
	SourceReferral    Source = "referral"
	SourceEvents      Source = "events"
	SourceOther       Source = "other"
)

type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusLost      Status = "lost"
	StatusWon       Status = "won"
)

var Sources = []Source{SourceWebsite, SourceFacebookAds, SourceGoogleAds, SourceReferral, SourceEvents, SourceOther}

var Statuses = []Status{StatusNew, StatusContacted, StatusQualified, StatusLost, StatusWon}

func (s Source) Valid() bool {
	for _, v := range Sources {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Lead is a record as returned by the Leads API. ID is assigned upstream.
type Lead struct {
	ID             string     `json:"_id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Company        string     `json:"company,omitempty"`
	City           string     `json:"city,omitempty"`
	State          string     `json:"state,omitempty"`
	Source         Source     `json:"source"`
	Status         Status     `json:"status"`
	Score          string     `json:"score,omitempty"`
	LeadValue      string     `json:"lead_value,omitempty"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
	IsQualified    bool       `json:"is_qualified"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

func (l Lead) FullName() string {
	switch {
	case l.FirstName == "":
		return l.LastName
	case l.LastName == "":
		return l.FirstName
	}
	return l.FirstName + " " + l.LastName
}

// Location joins city and state, skipping empty parts.
func (l Lead) Location() string {
	switch {
	case l.City != "" && l.State != "":
		return l.City + ", " + l.State
	case l.City != "":
		return l.City
	}
	return l.State
}

// LeadPage is one page of the paginated listing.
type LeadPage struct {
	Leads      []Lead `json:"data"`
	Page       int    `json:"page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"totalPages"`
}
