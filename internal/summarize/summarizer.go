// Package summarize renders extracted ADT-1 records into a narrative
// summary and LLM prompt texts. Rendering is a stateless pure function per
// record: nulls fall back to a fixed phrase and output never contains
// unresolved placeholders.
package summarize

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/niloysannyal/form-summary/internal/form"
)

// Fallback stands in for any field the extractor could not locate.
const Fallback = "Not specified"

// RenderedSummary holds the text artifacts derived from one record.
type RenderedSummary struct {
	Summary string
	Prompts string
}

// TemplateInputError reports a record that does not supply the fixed key
// set. It should not occur for records written by the extractor; when it
// does, summarization of that one record is skipped.
type TemplateInputError struct {
	Key string
	Err error
}

func (e *TemplateInputError) Error() string {
	return fmt.Sprintf("record %s: %v", e.Key, e.Err)
}

func (e *TemplateInputError) Unwrap() error {
	return e.Err
}

// Summarizer renders records into text artifacts.
type Summarizer struct {
	logger zerolog.Logger
}

// New creates a summarizer.
func New(logger zerolog.Logger) *Summarizer {
	return &Summarizer{logger: logger}
}

// RenderBytes validates a serialized record's key set, then renders it.
func (s *Summarizer) RenderBytes(key string, data []byte) (*RenderedSummary, error) {
	if err := ValidateRecord(data); err != nil {
		return nil, &TemplateInputError{Key: key, Err: err}
	}
	rec, err := form.Unmarshal(data)
	if err != nil {
		return nil, &TemplateInputError{Key: key, Err: err}
	}
	return s.Render(rec)
}

// Render produces the narrative summary and prompt texts for one record.
func (s *Summarizer) Render(rec *form.Record) (*RenderedSummary, error) {
	v := newView(rec)

	var summary, prompts strings.Builder
	if err := summaryTmpl.Execute(&summary, v); err != nil {
		return nil, fmt.Errorf("failed to render summary: %w", err)
	}
	if err := promptsTmpl.Execute(&prompts, v); err != nil {
		return nil, fmt.Errorf("failed to render prompts: %w", err)
	}

	return &RenderedSummary{
		Summary: summary.String(),
		Prompts: prompts.String(),
	}, nil
}

func newView(rec *form.Record) view {
	appointmentType := orFallback(rec.AppointmentType)
	nature := appointmentType
	if rec.AppointmentType != nil {
		nature = strings.ToLower(*rec.AppointmentType)
	}

	joint := ""
	jointAppointment := "No"
	if rec.JointAuditors {
		joint = "joint "
		jointAppointment = "Yes"
	}

	return view{
		CompanyName:       orFallback(rec.CompanyName),
		CompanyCIN:        orFallback(rec.CompanyCIN),
		CompanyType:       orFallback(rec.CompanyType),
		CompanyState:      orFallback(rec.CompanyState),
		AuditorFirmName:   orFallback(rec.AuditorFirmName),
		AuditorPAN:        orFallback(rec.AuditorPAN),
		AppointmentType:   appointmentType,
		AppointmentNature: nature,
		AuditPeriodStart:  orFallback(rec.AuditPeriodStart),
		AuditPeriodEnd:    orFallback(rec.AuditPeriodEnd),
		FinancialYears:    financialYears(rec),
		GoverningSection:  orFallback(rec.GoverningSection),
		AGMDate:           orFallback(rec.AGMDate),
		FilingDate:        orFallback(rec.FilingDate),
		CertificateSerial: orFallback(rec.CertificateSerial),
		Joint:             joint,
		JointAppointment:  jointAppointment,
		AttachmentCount:   len(rec.Attachments),
		KeyPoints:         keyPoints(rec),
	}
}

// financialYears prefers the filed value and otherwise derives the count
// from the audit period: the ceiling of the span in years, minimum one, so
// a period touching any part of a financial year counts it.
func financialYears(rec *form.Record) string {
	if rec.FinancialYears != nil && *rec.FinancialYears != "" {
		return *rec.FinancialYears
	}
	if rec.AuditPeriodStart == nil || rec.AuditPeriodEnd == nil {
		return Fallback
	}
	start, okStart := form.ParseDate(*rec.AuditPeriodStart)
	end, okEnd := form.ParseDate(*rec.AuditPeriodEnd)
	if !okStart || !okEnd || end.Before(start) {
		return Fallback
	}

	years := end.Year() - start.Year()
	if start.AddDate(years, 0, 0).Before(end) {
		years++
	}
	if years < 1 {
		years = 1
	}
	return fmt.Sprintf("%d", years)
}

// keyPoints builds the narrative bullet list for the executive prompt from
// whichever fields were actually extracted.
func keyPoints(rec *form.Record) []string {
	var points []string

	if rec.CompanyName != nil {
		points = append(points, fmt.Sprintf("The company %s has appointed an auditor", *rec.CompanyName))
	}
	if rec.AppointmentType != nil {
		points = append(points, fmt.Sprintf("This is a %s", strings.ToLower(*rec.AppointmentType)))
	}
	if rec.AuditorFirmName != nil {
		points = append(points, fmt.Sprintf("The appointed auditor is %s", *rec.AuditorFirmName))
	}
	if rec.JointAuditors {
		points = append(points, "Joint auditors have been appointed")
	}
	if rec.AuditPeriodStart != nil && rec.AuditPeriodEnd != nil {
		points = append(points, fmt.Sprintf("Audit period is from %s to %s",
			*rec.AuditPeriodStart, *rec.AuditPeriodEnd))
	}
	if fy := financialYears(rec); fy != Fallback {
		points = append(points, fmt.Sprintf("Appointment covers %s financial year(s)", fy))
	}
	if rec.AGMDate != nil {
		points = append(points, fmt.Sprintf("Annual General Meeting was conducted on %s", *rec.AGMDate))
	}
	if rec.FilingDate != nil {
		points = append(points, fmt.Sprintf("Form was filed on %s", *rec.FilingDate))
	}

	if len(points) == 0 {
		points = append(points, "No details could be extracted from the filing")
	}
	return points
}

func orFallback(s *string) string {
	if s == nil || *s == "" {
		return Fallback
	}
	return *s
}
