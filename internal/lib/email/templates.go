package email

type Template string

const (
	// TemplateWelcome is templates/welcome.html.
	TemplateWelcome Template = "welcome"
)
