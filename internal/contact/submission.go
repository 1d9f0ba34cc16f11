package contact

// Form field names.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldCompany  = "company"
	FieldPosition = "position"
	FieldCity     = "city"
	FieldService  = "service"
	FieldUrgency  = "urgency"
	FieldMessage  = "message"
	FieldFiles    = "files"

	// HoneypotField is hidden from people; bots fill it in.
	HoneypotField = "website"
)

// MaxFiles caps the attachment references kept from a submission.
const MaxFiles = 5

// Urgency levels accepted in the urgency field. Sanitize maps the Portuguese
// labels the form posts onto these.
var Urgencies = []string{"low", "normal", "high", "critical"}

// Submission is one sanitized contact form post.
type Submission struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Company  string   `json:"company"`
	Position string   `json:"position"`
	City     string   `json:"city"`
	Service  string   `json:"service"`
	Urgency  string   `json:"urgency"`
	Message  string   `json:"message"`
	Files    []string `json:"files"`
}

// Map returns the submission in the raw form Sanitize accepts.
func (s Submission) Map() map[string]any {
	files := make([]any, len(s.Files))
	for i, f := range s.Files {
		files[i] = f
	}
	return map[string]any{
		FieldName:     s.Name,
		FieldEmail:    s.Email,
		FieldPhone:    s.Phone,
		FieldCompany:  s.Company,
		FieldPosition: s.Position,
		FieldCity:     s.City,
		FieldService:  s.Service,
		FieldUrgency:  s.Urgency,
		FieldMessage:  s.Message,
		FieldFiles:    files,
	}
}
