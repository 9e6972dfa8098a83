package email

// PreviewData holds sample data for every template, keyed by template
// name then by template variable.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"MemberName":     "Ronnie",
		"MembershipType": "gold",
	},
}
