// Package extract turns one ADT-1 PDF into a fixed-shape form.Record. Form
// field values come from the document's AcroForm dictionary; page text fills
// the gaps through label patterns. The first occurrence of a value in
// document order is authoritative.
package extract

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/niloysannyal/form-summary/internal/form"
)

// arraySuffix matches the array notation some AcroForm generators append to
// field names, e.g. "CIN_C[0]".
var arraySuffix = regexp.MustCompile(`\[\d+\]$`)

// Extractor produces a Record per document from the static field specs.
type Extractor struct {
	specs  form.Specs
	forms  *FormReader
	text   *TextReader
	logger zerolog.Logger
}

// New creates an extractor for the given field specification set.
func New(specs form.Specs, maxFileSize int64, logger zerolog.Logger) *Extractor {
	return &Extractor{
		specs:  specs,
		forms:  NewFormReader(logger),
		text:   NewTextReader(maxFileSize),
		logger: logger,
	}
}

// ExtractFile reads one PDF and assembles its Record. Decoding failures are
// returned as *DecodeError so batch callers can skip the document. A page
// text failure alone is tolerated: form fields still produce a usable
// record, only the text-scan fallbacks go unfilled.
func (e *Extractor) ExtractFile(path string) (*form.Record, error) {
	// Validate once up front so the extension and size cap gate both
	// readers, not just the text path.
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if err := e.text.ValidateFile(path, fileInfo); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	formFields, err := e.forms.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	rawText, err := e.text.ReadFile(path)
	if err != nil {
		if len(formFields) == 0 {
			return nil, &DecodeError{Path: path, Err: err}
		}
		e.logger.Warn().Err(err).Str("file", path).Msg("text extraction failed, using form fields only")
		rawText = ""
	}

	fields := e.mapFormFields(formFields)
	e.scanText(rawText, fields)

	return e.buildRecord(path, fields), nil
}

// mapFormFields cleans raw AcroForm fields and maps them onto record keys.
// Primary specs win over Alt specs, and within a spec the first non-empty
// occurrence in document order is kept.
func (e *Extractor) mapFormFields(formFields []FormField) map[string]string {
	bySpec := make(map[string]form.FormFieldSpec, len(e.specs.FormFields))
	for _, spec := range e.specs.FormFields {
		bySpec[spec.Raw] = spec
	}

	fields := make(map[string]string)
	alts := make(map[string]string)

	for _, f := range formFields {
		name := arraySuffix.ReplaceAllString(f.Name, "")
		if e.skipField(name) {
			continue
		}
		value := collapseWhitespace(f.Value)
		if value == "" {
			continue
		}
		spec, ok := bySpec[name]
		if !ok {
			continue
		}
		if spec.Alt {
			if _, seen := alts[spec.Key]; !seen {
				alts[spec.Key] = value
			}
			continue
		}
		if _, seen := fields[spec.Key]; !seen {
			fields[spec.Key] = value
		}
	}

	for key, value := range alts {
		if fields[key] == "" {
			fields[key] = value
		}
	}

	return fields
}

// skipField reports whether a raw field name is system or signature
// plumbing rather than filing data.
func (e *Extractor) skipField(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range e.specs.SkipMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// scanText applies the text-label specs to the raw page text, filling only
// keys the form fields left empty. Spec table order is the priority order
// for keys with multiple patterns.
func (e *Extractor) scanText(rawText string, fields map[string]string) {
	if rawText == "" {
		return
	}
	for _, spec := range e.specs.TextFields {
		if fields[spec.Key] != "" {
			continue
		}
		if spec.Group > 0 {
			m := spec.Pattern.FindStringSubmatch(rawText)
			if m == nil {
				continue
			}
			if value := collapseWhitespace(m[spec.Group]); value != "" {
				fields[spec.Key] = value
			}
			continue
		}
		if spec.Pattern.MatchString(rawText) {
			fields[spec.Key] = spec.Value
		}
	}
}

// buildRecord assembles the fixed-shape Record from consolidated fields.
func (e *Extractor) buildRecord(path string, fields map[string]string) *form.Record {
	return &form.Record{
		SourceFile: filepath.Base(path),

		CompanyName:    opt(fields, "company_name"),
		CompanyCIN:     opt(fields, "company_cin"),
		CompanyType:    opt(fields, "company_type"),
		CompanyEmail:   opt(fields, "company_email"),
		CompanyAddress: buildAddress(fields, "company"),
		CompanyState:   opt(fields, "company_state"),
		CompanyPincode: opt(fields, "company_pincode"),

		AuditorFirmName:         opt(fields, "auditor_firm_name"),
		AuditorPAN:              opt(fields, "auditor_pan"),
		AuditorMembershipNumber: opt(fields, "auditor_membership_number"),
		AuditorEmail:            opt(fields, "auditor_email"),
		AuditorAddress:          buildAddress(fields, "auditor"),
		AuditorQualification:    opt(fields, "auditor_qualification"),
		JointAuditors:           fields["joint_auditors"] != "",

		AppointmentType:  opt(fields, "appointment_type"),
		AppointmentDate:  optDate(fields, "appointment_date"),
		AuditPeriodStart: optDate(fields, "audit_period_start"),
		AuditPeriodEnd:   optDate(fields, "audit_period_end"),
		FinancialYears:   opt(fields, "financial_years"),
		GoverningSection: opt(fields, "governing_section"),
		AGMDate:          optDate(fields, "agm_date"),
		ResolutionNumber: opt(fields, "resolution_number"),
		DirectorDIN:      opt(fields, "director_din"),

		FilingDate:        optDate(fields, "filing_date"),
		ReceiptDate:       optDate(fields, "receipt_date"),
		CertificateSerial: opt(fields, "certificate_serial"),
		Attachments:       splitAttachments(fields["attachments"]),
	}
}

// opt returns the field value or nil when absent.
func opt(fields map[string]string, key string) *string {
	v, ok := fields[key]
	if !ok || v == "" {
		return nil
	}
	return &v
}

// optDate is opt with the value normalized to DD-MMM-YYYY when parseable.
func optDate(fields map[string]string, key string) *string {
	v := opt(fields, key)
	if v == nil {
		return nil
	}
	normalized := form.NormalizeDate(*v)
	return &normalized
}

// buildAddress joins the address components extracted for a prefix
// ("company" or "auditor") into one line.
func buildAddress(fields map[string]string, prefix string) *string {
	var parts []string
	for _, suffix := range []string{
		"_address_line1", "_address_line2", "_address_line3",
		"_city", "_state", "_pincode", "_country",
	} {
		if v := fields[prefix+suffix]; v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, ", ")
	return &joined
}

// splitAttachments parses the comma-separated attachment list.
func splitAttachments(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
