package email

// PreviewData is sample data for every template, keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserName": "Jane",
	},
}
