// Package form defines the fixed-shape extraction record for ADT-1 filings
// and the static field specifications used to locate values in a document.
package form

import (
	"encoding/json"
	"reflect"
)

// Record is the structured extraction result for one ADT-1 document. The
// shape is fixed: every key is present in the serialized form, with null
// standing in for "not found". Nothing is ever silently dropped.
type Record struct {
	SourceFile string `json:"source_file"`

	// Company identity
	CompanyName    *string `json:"company_name"`
	CompanyCIN     *string `json:"company_cin"`
	CompanyType    *string `json:"company_type"`
	CompanyEmail   *string `json:"company_email"`
	CompanyAddress *string `json:"company_address"`
	CompanyState   *string `json:"company_state"`
	CompanyPincode *string `json:"company_pincode"`

	// Auditor identity
	AuditorFirmName         *string `json:"auditor_firm_name"`
	AuditorPAN              *string `json:"auditor_pan"`
	AuditorMembershipNumber *string `json:"auditor_membership_number"`
	AuditorEmail            *string `json:"auditor_email"`
	AuditorAddress          *string `json:"auditor_address"`
	AuditorQualification    *string `json:"auditor_qualification"`
	JointAuditors           bool    `json:"joint_auditors"`

	// Appointment
	AppointmentType  *string `json:"appointment_type"`
	AppointmentDate  *string `json:"appointment_date"`
	AuditPeriodStart *string `json:"audit_period_start"`
	AuditPeriodEnd   *string `json:"audit_period_end"`
	FinancialYears   *string `json:"financial_years"`
	GoverningSection *string `json:"governing_section"`
	AGMDate          *string `json:"agm_date"`
	ResolutionNumber *string `json:"resolution_number"`
	DirectorDIN      *string `json:"director_din"`

	// Filing metadata
	FilingDate        *string  `json:"filing_date"`
	ReceiptDate       *string  `json:"receipt_date"`
	CertificateSerial *string  `json:"certificate_serial"`
	Attachments       []string `json:"attachments"`
}

// Keys returns the JSON key set of a Record in declaration order.
func Keys() []string {
	t := reflect.TypeOf(Record{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		keys = append(keys, t.Field(i).Tag.Get("json"))
	}
	return keys
}

// Marshal serializes the record as indented UTF-8 JSON with a trailing
// newline. Field order follows the struct declaration, so re-running the
// extractor on an unchanged document yields byte-identical output.
func (r *Record) Marshal() ([]byte, error) {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// Unmarshal parses a serialized record.
func Unmarshal(data []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
