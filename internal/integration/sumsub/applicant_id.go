package sumsub

import "regexp"

// The 409 description usually looks like:
//
//	Applicant with external user id 'user-49' already exists: 695b2a5fd78655e152921a6c
//
// There is no structured field for the existing applicant id, so this is
// best-effort text scraping pinned to the observed format. The provider may
// change the wording without notice.
var (
	alreadyExistsRe = regexp.MustCompile(`already exists:\s*([a-zA-Z0-9]+)\s*$`)
	alnumTokenRe    = regexp.MustCompile(`[a-zA-Z0-9]+`)
)

// ExtractApplicantID recovers the existing applicant id from a 409 error
// description. Fallback rule: the last alphanumeric token in the text.
// Returns "" when nothing can be extracted.
func ExtractApplicantID(description string) string {
	if description == "" {
		return ""
	}
	if m := alreadyExistsRe.FindStringSubmatch(description); m != nil {
		return m[1]
	}
	tokens := alnumTokenRe.FindAllString(description, -1)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}
