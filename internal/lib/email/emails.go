package email

// SendWelcomeEmail greets a newly registered user.
func (c *Client) SendWelcomeEmail(to, name string) error {
	return c.SendEmail(to, "Welcome to LightBnB!", TemplateWelcome, map[string]string{
		"UserName": name,
	})
}
