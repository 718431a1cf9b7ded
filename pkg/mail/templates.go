package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

// TemplateData is everything a reservation email can mention.
type TemplateData struct {
	RecipientName string
	UserName      string
	UserEmail     string
	UserContact   string
	VehicleName   string
	PickUp        string
	DropOff       string
	PickDate      string
	DropDate      string
	Unit          int
	TotalPrice    int64
	Status        string
	ActionURL     string
}

const baseLayout = `<html><body style="font-family:sans-serif">
<h2>Dampit Trans Solo</h2>
<p>Halo {{.RecipientName}},</p>
%s
<p>Terima kasih,<br>Dampit Trans Solo</p>
</body></html>`

var reservationDetail = `<table>
<tr><td>Vehicle</td><td>{{.VehicleName}} ({{.Unit}} unit)</td></tr>
<tr><td>Pick up</td><td>{{.PickUp}}, {{.PickDate}}</td></tr>
<tr><td>Drop off</td><td>{{.DropOff}}, {{.DropDate}}</td></tr>
<tr><td>Total price</td><td>Rp {{.TotalPrice}}</td></tr>
</table>`

var templates = map[string]*template.Template{
	"new-reservation": template.Must(template.New("new-reservation").Parse(fmt.Sprintf(baseLayout,
		`<p>A new reservation has come in from {{.UserName}} ({{.UserEmail}}, {{.UserContact}}).</p>`+reservationDetail))),
	"approved": template.Must(template.New("approved").Parse(fmt.Sprintf(baseLayout,
		`<p>Your reservation has been <b>APPROVED</b>. Our driver will be ready at the pick up point.</p>`+reservationDetail))),
	"rejected": template.Must(template.New("rejected").Parse(fmt.Sprintf(baseLayout,
		`<p>We are sorry, your reservation has been <b>REJECTED</b>. Please contact us for details.</p>`+reservationDetail))),
	"finished": template.Must(template.New("finished").Parse(fmt.Sprintf(baseLayout,
		`<p>Your reservation is <b>FINISHED</b>. The final price including any overtime is Rp {{.TotalPrice}}.</p>`+reservationDetail))),
	"cancelled": template.Must(template.New("cancelled").Parse(fmt.Sprintf(baseLayout,
		`<p>Reservation by {{.UserName}} ({{.UserEmail}}) has been <b>CANCELLED</b> by the customer.</p>`+reservationDetail))),
	"verify-email": template.Must(template.New("verify-email").Parse(fmt.Sprintf(baseLayout,
		`<p>Please verify your email address by opening the link below.</p><p><a href="{{.ActionURL}}">Verify my email</a></p>`))),
	"password-reset": template.Must(template.New("password-reset").Parse(fmt.Sprintf(baseLayout,
		`<p>A password reset was requested for your account. Open the link below to set a new password. If this wasn't you, ignore this email.</p><p><a href="{{.ActionURL}}">Reset my password</a></p>`))),
}

// Render picks the template for an event and renders it. The event must
// be known; a blank email is never sent.
func Render(event string, data TemplateData) (string, error) {
	tmpl, ok := templates[event]
	if !ok {
		return "", fmt.Errorf("unknown email template: %s", event)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email template %s: %w", event, err)
	}

	return buf.String(), nil
}
