package mailer

import "strings"

// CompanyToken is substituted with the capitalized company identifier in
// subject and closing templates.
const CompanyToken = "{company_cap}"

// Stock outreach copy used when a template field is left empty.
const (
	defaultSubject = "Data Scientist → impact at {company_cap}"
	defaultIntro   = "I'm FirstName LastName, a student at ..."
	defaultClosing = "I'm open to Data-Science / Machine-Learning roles and would love to explore " +
		"how my background could contribute to {company_cap}.\n\n" +
		"Best regards,\nYour name"
)

// Templates is the subject/intro/closing set applied to every recipient in a
// batch.
type Templates struct {
	Subject string `yaml:"subject"`
	Intro   string `yaml:"intro"`
	Closing string `yaml:"closing"`
}

// WithDefaults fills empty fields with the stock copy.
func (t Templates) WithDefaults() Templates {
	if strings.TrimSpace(t.Subject) == "" {
		t.Subject = defaultSubject
	}
	if strings.TrimSpace(t.Intro) == "" {
		t.Intro = defaultIntro
	}
	if strings.TrimSpace(t.Closing) == "" {
		t.Closing = defaultClosing
	}
	return t
}

// capitalizeCompany renders a lower-cased company identifier for display:
// first letter upper, remainder lower.
func capitalizeCompany(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func substituteCompany(text, company string) string {
	return strings.ReplaceAll(text, CompanyToken, capitalizeCompany(company))
}
