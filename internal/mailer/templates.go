package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names.
const (
	TemplateContact = "contact_notification"
	TemplateTest    = "test_email"
)

const layoutStyle = `body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #1e293b; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .content { margin: 20px 0; }
        .label { font-weight: bold; }
        .footer { margin-top: 30px; font-size: 12px; color: #64748b; text-align: center; }`

var emailTemplates = map[string]string{ //nolint:gochecknoglobals
	TemplateContact: `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New contact from {{.Contact.Name}}</title>
    <style>
        ` + layoutStyle + `
    </style>
</head>
<body>
    <div class="header">
        <h2>New contact submission</h2>
    </div>
    <div class="content">
        <p><span class="label">Name:</span> {{.Contact.Name}}</p>
        <p><span class="label">Email:</span> {{.Contact.Email}}</p>
        {{with .Contact.Company}}<p><span class="label">Company:</span> {{.}}</p>{{end}}
        {{with .Contact.Phone}}<p><span class="label">Phone:</span> {{.}}</p>{{end}}
        {{with .Contact.Industry}}<p><span class="label">Industry:</span> {{.}}</p>{{end}}
        {{with .Contact.BusinessSize}}<p><span class="label">Business size:</span> {{.}}</p>{{end}}
        {{with .Contact.PainPoints}}<p><span class="label">Pain points:</span></p>
        <ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
        {{with .Contact.TimeSpent}}<p><span class="label">Hours per week on manual work:</span> {{.}}</p>{{end}}
        {{with .Contact.Message}}<p><span class="label">Message:</span></p><p>{{.}}</p>{{end}}
    </div>
    <div class="footer">
        <p>Sent by {{.SiteName}}.</p>
    </div>
</body>
</html>`,

	TemplateTest: `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Test email</title>
    <style>
        ` + layoutStyle + `
    </style>
</head>
<body>
    <div class="header">
        <h2>Email settings work</h2>
    </div>
    <div class="content">
        <p>This test message was sent by {{.SiteName}} using {{.Host}}.</p>
    </div>
    <div class="footer">
        <p>You can ignore this email.</p>
    </div>
</body>
</html>`,
}

var parsed = map[string]*template.Template{} //nolint:gochecknoglobals

func init() { //nolint:gochecknoinits
	for name, content := range emailTemplates {
		parsed[name] = template.Must(template.New(name).Parse(content))
	}
}

// Render executes the named email template.
func Render(name string, data any) (string, error) {
	tmpl, ok := parsed[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("error executing template: %w", err)
	}

	return body.String(), nil
}
