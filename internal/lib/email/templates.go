package email

// Template names an embedded email template under templates/.
type Template string

const (
	// TemplateWelcome greets a newly activated account user.
	TemplateWelcome Template = "welcome"

	// TemplateInvoice notifies a contact that an invoice was issued.
	TemplateInvoice Template = "invoice"
)
