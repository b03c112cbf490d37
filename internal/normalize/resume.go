package normalize

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Personal normalizes the decoded personal-info payload. There are no
// required fields: an unusable payload yields the zero value.
func Personal(v any) types.PersonalInfo {
	m := asMap(v)
	if m == nil {
		return types.PersonalInfo{}
	}
	return types.PersonalInfo{
		Name:     stringField(m, "name", "full_name"),
		Email:    stringField(m, "email"),
		Phone:    stringField(m, "phone", "phone_number"),
		Location: stringField(m, "location", "city"),
		LinkedIn: stringField(m, "linkedin", "linkedin_url"),
		GitHub:   stringField(m, "github", "github_url"),
		Website:  stringField(m, "website", "portfolio"),
	}
}

// Experience normalizes the decoded experience payload. Entries lacking
// both company and position are dropped. An end date of "present" or
// "current" is cleared: absence means the position is ongoing.
func Experience(v any) []types.ExperienceEntry {
	items := listField(v, "experience", "experiences", "work_experience", "entries")
	out := make([]types.ExperienceEntry, 0, len(items))
	for _, item := range items {
		m := asMap(item)
		if m == nil {
			continue
		}
		company := stringField(m, "company", "employer", "organization")
		position := stringField(m, "position", "title", "role", "job_title")
		if company == "" && position == "" {
			continue
		}

		out = append(out, types.ExperienceEntry{
			ID:               ensureID(stringField(m, "id")),
			Company:          company,
			Position:         position,
			StartDate:        stringField(m, "start_date", "start"),
			EndDate:          clearCurrent(stringField(m, "end_date", "end")),
			Description:      stringField(m, "description", "summary"),
			Responsibilities: stringList(m["responsibilities"]),
			Technologies:     stringList(m["technologies"]),
			Achievements:     stringList(m["achievements"]),
		})
	}
	return out
}

func clearCurrent(end string) string {
	switch strings.ToLower(end) {
	case "present", "current", "now", "ongoing":
		return ""
	}
	return end
}

// Education normalizes the decoded education payload. Entries lacking an
// institution are dropped.
func Education(v any) []types.EducationEntry {
	items := listField(v, "education", "entries")
	out := make([]types.EducationEntry, 0, len(items))
	for _, item := range items {
		m := asMap(item)
		if m == nil {
			continue
		}
		institution := stringField(m, "institution", "school", "university")
		if institution == "" {
			continue
		}

		out = append(out, types.EducationEntry{
			ID:          ensureID(stringField(m, "id")),
			Institution: institution,
			Degree:      stringField(m, "degree"),
			Field:       stringField(m, "field", "field_of_study", "major"),
			StartDate:   stringField(m, "start_date", "start"),
			EndDate:     clearCurrent(stringField(m, "end_date", "end", "graduation_date")),
			GPA:         stringField(m, "gpa"),
		})
	}
	return out
}

// Projects normalizes the decoded projects payload. Entries lacking a
// name are dropped.
func Projects(v any) []types.ProjectEntry {
	items := listField(v, "projects", "entries")
	out := make([]types.ProjectEntry, 0, len(items))
	for _, item := range items {
		m := asMap(item)
		if m == nil {
			continue
		}
		name := stringField(m, "name", "title")
		if name == "" {
			continue
		}

		out = append(out, types.ProjectEntry{
			ID:           ensureID(stringField(m, "id")),
			Name:         name,
			Description:  stringField(m, "description", "summary"),
			Technologies: stringList(m["technologies"]),
			URL:          stringField(m, "url", "link"),
			Highlights:   stringList(m["highlights"]),
		})
	}
	return out
}
