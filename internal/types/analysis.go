// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"time"
)

// SeniorityLevel represents a career-stage label derived from a resume
type SeniorityLevel string

// Seniority levels ordered from least to most experienced
const (
	SeniorityEntry     SeniorityLevel = "Entry"
	SeniorityJunior    SeniorityLevel = "Junior"
	SeniorityMid       SeniorityLevel = "Mid"
	SenioritySenior    SeniorityLevel = "Senior"
	SeniorityLead      SeniorityLevel = "Lead"
	SeniorityPrincipal SeniorityLevel = "Principal"
)

// Valid reports whether the level is one of the six known labels
func (s SeniorityLevel) Valid() bool {
	switch s {
	case SeniorityEntry, SeniorityJunior, SeniorityMid, SenioritySenior, SeniorityLead, SeniorityPrincipal:
		return true
	}
	return false
}

// ParseSeniority matches a free-text model answer against the known labels.
// Matching is case-insensitive and tolerates surrounding whitespace, quotes
// and a trailing period, but nothing looser: anything else falls back to
// the deterministic threshold table upstream.
func ParseSeniority(s string) (SeniorityLevel, bool) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'`")
	s = strings.TrimSuffix(s, ".")
	for _, c := range []SeniorityLevel{
		SeniorityEntry, SeniorityJunior, SeniorityMid,
		SenioritySenior, SeniorityLead, SeniorityPrincipal,
	} {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// ProficiencyLevel represents skill proficiency
type ProficiencyLevel string

// Proficiency levels for skills and skill-gap targets
const (
	ProficiencyBeginner     ProficiencyLevel = "Beginner"
	ProficiencyIntermediate ProficiencyLevel = "Intermediate"
	ProficiencyAdvanced     ProficiencyLevel = "Advanced"
)

// Valid reports whether the level is a known proficiency value
func (p ProficiencyLevel) Valid() bool {
	switch p {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced:
		return true
	}
	return false
}

// Priority represents relative importance of a gap or roadmap step
type Priority string

// Priority values
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Valid reports whether the priority is a known value
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// PersonalInfo represents contact and identity details extracted from a resume
type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Skill represents one named skill with an optional category and proficiency
type Skill struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Level    ProficiencyLevel `json:"level"`
	Years    float64          `json:"years_of_experience,omitempty"`
}

// SkillSet groups skills into five disjoint semantic containers
type SkillSet struct {
	Technical  []Skill `json:"technical"`
	Soft       []Skill `json:"soft"`
	Languages  []Skill `json:"languages"`
	Frameworks []Skill `json:"frameworks"`
	Tools      []Skill `json:"tools"`
}

// Empty reports whether all five containers are empty
func (s SkillSet) Empty() bool {
	return len(s.Technical) == 0 && len(s.Soft) == 0 && len(s.Languages) == 0 &&
		len(s.Frameworks) == 0 && len(s.Tools) == 0
}

// Count returns the total number of skills across all containers
func (s SkillSet) Count() int {
	return len(s.Technical) + len(s.Soft) + len(s.Languages) + len(s.Frameworks) + len(s.Tools)
}

// ExperienceEntry represents one employment record.
// Dates are year ("2020") or year-month ("2020-01") strings; an empty
// EndDate means the position is current.
type ExperienceEntry struct {
	ID               string   `json:"id"`
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date,omitempty"`
	Description      string   `json:"description,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Technologies     []string `json:"technologies,omitempty"`
	Achievements     []string `json:"achievements,omitempty"`
}

// EducationEntry represents one education record
type EducationEntry struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// ProjectEntry represents one project record
type ProjectEntry struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
	Highlights   []string `json:"highlights,omitempty"`
}

// ResumeAnalysis is the complete typed output of a resume analysis.
// TotalExperienceYears is always recomputed deterministically from the
// experience date ranges, never taken from model output.
type ResumeAnalysis struct {
	ID                   string            `json:"id"`
	SourceFile           string            `json:"source_file,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
	PersonalInfo         PersonalInfo      `json:"personal_info"`
	Experience           []ExperienceEntry `json:"experience"`
	Education            []EducationEntry  `json:"education"`
	Skills               SkillSet          `json:"skills"`
	Projects             []ProjectEntry    `json:"projects"`
	Seniority            SeniorityLevel    `json:"seniority_level"`
	Summary              string            `json:"summary,omitempty"`
	TotalExperienceYears float64           `json:"total_experience_years"`
}
