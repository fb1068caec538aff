package summarize

import "text/template"

// The narrative summary follows the executive-summary wording used in filed
// ADT-1 reviews; the prompt templates are rendered but never sent to any
// model from this tool.

var summaryTmpl = template.Must(template.New("summary").Parse(
	`{{.CompanyName}} (CIN: {{.CompanyCIN}}) has appointed {{.AuditorFirmName}} ` +
		`(PAN: {{.AuditorPAN}}) as auditors to fill a {{.AppointmentNature}}. ` +
		`The appointment covers an audit period from {{.AuditPeriodStart}} to {{.AuditPeriodEnd}}, ` +
		`spanning {{.FinancialYears}} financial year(s). This {{.Joint}}appointment was formalized ` +
		`under {{.GoverningSection}} of the Companies Act, 2013, with the form filed on ` +
		`{{.FilingDate}} (Certificate Serial: {{.CertificateSerial}}).
`))

var promptsTmpl = template.Must(template.New("prompts").Parse(
	`EXECUTIVE SUMMARY PROMPT
------------------------
Based on the collected data, generate a concise executive summary:

Company: {{.CompanyName}} (CIN: {{.CompanyCIN}})
Auditor: {{.AuditorFirmName}} (PAN: {{.AuditorPAN}})
Appointment Type: {{.AppointmentType}}
Audit Period: {{.AuditPeriodStart}} to {{.AuditPeriodEnd}}
Financial Years: {{.FinancialYears}}

Key Points:
{{range .KeyPoints}}- {{.}}
{{end}}
COMPLIANCE SUMMARY PROMPT
-------------------------
Generate a compliance-focused summary for this filing:

Form Filing Date: {{.FilingDate}}
Certificate Serial: {{.CertificateSerial}}
Legal Framework: Filed under the Companies Act, 2013
Applicable Section: {{.GoverningSection}}
Attachments: {{.AttachmentCount}} file(s)

BUSINESS SUMMARY PROMPT
-----------------------
Create a business-oriented summary of this auditor appointment:

Company: {{.CompanyName}}
Business Type: {{.CompanyType}}
Location: {{.CompanyState}}

Auditor Firm: {{.AuditorFirmName}}
Joint Appointment: {{.JointAppointment}}

Timeline: {{.AuditPeriodStart}} to {{.AuditPeriodEnd}}
AGM Date: {{.AGMDate}}
`))

// view is the flattened, null-free template input. Every field carries
// either an extracted value or the fallback phrase, so rendering is total.
type view struct {
	CompanyName       string
	CompanyCIN        string
	CompanyType       string
	CompanyState      string
	AuditorFirmName   string
	AuditorPAN        string
	AppointmentType   string
	AppointmentNature string
	AuditPeriodStart  string
	AuditPeriodEnd    string
	FinancialYears    string
	GoverningSection  string
	AGMDate           string
	FilingDate        string
	CertificateSerial string
	Joint             string
	JointAppointment  string
	AttachmentCount   int
	KeyPoints         []string
}
