package types

// Section names a part of a CanonicalDocument.
type Section string

// Document sections
const (
	SectionName       Section = "name"
	SectionContact    Section = "contact"
	SectionSummary    Section = "summary"
	SectionSkills     Section = "skills"
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionAdditional Section = "additional"
)

// Sections returns every section in document order.
func Sections() []Section {
	return []Section{
		SectionName, SectionContact,
		SectionSummary, SectionSkills, SectionExperience, SectionEducation, SectionAdditional,
	}
}

// BodySections returns the sections that appear under headings, in render order.
func BodySections() []Section {
	return []Section{SectionSummary, SectionSkills, SectionExperience, SectionEducation, SectionAdditional}
}

// CanonicalDocument is the normalized form of a generated resume.
// Every section is always present, empty when nothing was attributed to it.
type CanonicalDocument struct {
	Name       string `json:"name"`
	Contact    string `json:"contact"`
	Summary    string `json:"summary"`
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
	Education  string `json:"education"`
	Additional string `json:"additional"`
}

// Get returns the text of a section.
func (d *CanonicalDocument) Get(s Section) string {
	if p := d.field(s); p != nil {
		return *p
	}
	return ""
}

// Set replaces the text of a section. Unknown sections are ignored.
func (d *CanonicalDocument) Set(s Section, text string) {
	if p := d.field(s); p != nil {
		*p = text
	}
}

// Append adds text to a section, separated by a newline when the section already has content.
func (d *CanonicalDocument) Append(s Section, text string) {
	p := d.field(s)
	if p == nil || text == "" {
		return
	}
	if *p == "" {
		*p = text
		return
	}
	*p += "\n" + text
}

// IsEmpty reports whether every section is empty.
func (d *CanonicalDocument) IsEmpty() bool {
	for _, s := range Sections() {
		if d.Get(s) != "" {
			return false
		}
	}
	return true
}

func (d *CanonicalDocument) field(s Section) *string {
	switch s {
	case SectionName:
		return &d.Name
	case SectionContact:
		return &d.Contact
	case SectionSummary:
		return &d.Summary
	case SectionSkills:
		return &d.Skills
	case SectionExperience:
		return &d.Experience
	case SectionEducation:
		return &d.Education
	case SectionAdditional:
		return &d.Additional
	}
	return nil
}
