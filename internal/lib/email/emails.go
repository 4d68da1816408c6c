package email

// SendWelcomeEmail greets a newly activated account user.
func (c *Client) SendWelcomeEmail(to, firstName string) error {
	data := map[string]string{
		"UserFirstName": firstName,
	}

	return c.SendEmail(
		to,
		"Welcome to Streamline!",
		TemplateWelcome,
		data,
	)
}

// SendInvoiceEmail notifies a contact that an invoice was issued.
// total is the preformatted amount string, dueAt may be empty.
func (c *Client) SendInvoiceEmail(to, contactName, invoiceNumber, total, dueAt string) error {
	data := map[string]string{
		"ContactName":   contactName,
		"InvoiceNumber": invoiceNumber,
		"Total":         total,
		"DueAt":         dueAt,
	}

	return c.SendEmail(
		to,
		"Invoice "+invoiceNumber+" from Streamline",
		TemplateInvoice,
		data,
	)
}
