package domain

import "time"

// LeadInput is the create payload. The Leads API expects camelCase keys.
type LeadInput struct {
	FirstName      string     `json:"firstName" validate:"required"`
	LastName       string     `json:"lastName" validate:"required"`
	Email          string     `json:"email" validate:"required,email"`
	Phone          string     `json:"phone" validate:"required,leadphone"`
	Company        string     `json:"company,omitempty" validate:"max=255"`
	City           string     `json:"city,omitempty" validate:"max=100"`
	State          string     `json:"state,omitempty" validate:"max=100"`
	Source         Source     `json:"source" validate:"required,leadsource"`
	Status         Status     `json:"status" validate:"required,leadstatus"`
	Score          string     `json:"score,omitempty" validate:"omitempty,numeric"`
	LeadValue      string     `json:"leadValue,omitempty" validate:"omitempty,numeric"`
	LastActivityAt *time.Time `json:"lastActivityAt,omitempty"`
	IsQualified    bool       `json:"isQualified"`
}

// SignUpInput is the registration form.
type SignUpInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
