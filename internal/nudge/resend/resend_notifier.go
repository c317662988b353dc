package resend

import (
	"bytes"
	"html/template"

	"github.com/resend/resend-go/v2"
)

type ResendNotifier struct {
	ApiKey string
	Email  string
	From   string
}

const htmlTemplate = `
<p>Your {{.Streak}}-day streak ends in {{.Hours}} hours.</p>
<p>Log a habit before midnight to keep it going.</p>
`

var emailTmpl = template.Must(template.New("email").Parse(htmlTemplate))

func renderEmail(streak, hoursLeft int) (string, error) {
	data := struct {
		Streak int
		Hours  int
	}{
		Streak: streak,
		Hours:  hoursLeft,
	}
	var buf bytes.Buffer
	if err := emailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ResendNotifier) SendNudge(streak, hoursLeft int) error {
	html, err := renderEmail(streak, hoursLeft)
	if err != nil {
		return err
	}

	client := resend.NewClient(r.ApiKey)
	params := &resend.SendEmailRequest{
		From:    r.From,
		To:      []string{r.Email},
		Subject: "Your streak is about to expire",
		Html:    html,
	}

	_, err = client.Emails.Send(params)
	return err
}
