package form

import "regexp"

// FormFieldSpec maps a raw AcroForm field name (array suffix stripped) to a
// record field key. Alt entries only fill a key the primary left empty.
type FormFieldSpec struct {
	Raw string
	Key string
	Alt bool
}

// TextSpec locates one field's value in raw page text. When Group is zero a
// match records the literal Value; otherwise the numbered capture group is
// recorded. The first match in document text order is authoritative.
type TextSpec struct {
	Key     string
	Pattern *regexp.Regexp
	Value   string
	Group   int
}

// Specs is the full static field specification set for the ADT-1 layout. It
// is constructed once and passed explicitly into the extractor; nothing in
// this package mutates it after construction.
type Specs struct {
	FormFields []FormFieldSpec
	TextFields []TextSpec

	// Raw field names containing any of these markers are system or
	// signature plumbing and never carry filing data.
	SkipMarkers []string
}

// DefaultSpecs returns the field specification set for the ADT-1 form layout.
func DefaultSpecs() Specs {
	return Specs{
		FormFields: []FormFieldSpec{
			// Company fields
			{Raw: "CIN_C", Key: "company_cin"},
			{Raw: "CompanyName_C", Key: "company_name"},
			{Raw: "EmailId_C", Key: "company_email"},
			{Raw: "permaddress1a_C", Key: "company_address_line1"},
			{Raw: "permaddress2a_C", Key: "company_address_line2"},
			{Raw: "permaddress2b_C", Key: "company_address_line2", Alt: true},
			{Raw: "permaddress3a_C", Key: "company_address_line3"},
			{Raw: "cityname_C", Key: "company_city"},
			{Raw: "City_C", Key: "company_city", Alt: true},
			{Raw: "pincode_C", Key: "company_pincode"},
			{Raw: "Pin_C", Key: "company_pincode", Alt: true},
			{Raw: "statename_C", Key: "company_state"},
			{Raw: "State_P", Key: "company_state", Alt: true},
			{Raw: "countryname_C", Key: "company_country"},
			{Raw: "Country_C", Key: "company_country", Alt: true},

			// Auditor fields
			{Raw: "PAN_C", Key: "auditor_pan"},
			{Raw: "NameAuditorFirm_C", Key: "auditor_firm_name"},
			{Raw: "MemberShNum", Key: "auditor_membership_number"},
			{Raw: "auditoraddress1a_C", Key: "auditor_address_line1"},
			{Raw: "auditoraddress2a_C", Key: "auditor_address_line2"},
			{Raw: "auditoraddress3a_C", Key: "auditor_address_line3"},
			{Raw: "auditorcityname_C", Key: "auditor_city"},
			{Raw: "auditorpincode_C", Key: "auditor_pincode"},
			{Raw: "auditorstatename_C", Key: "auditor_state"},
			{Raw: "auditorcountryname_C", Key: "auditor_country"},
			{Raw: "auditoremailid_C", Key: "auditor_email"},
			{Raw: "email", Key: "auditor_email", Alt: true},

			// Appointment fields
			{Raw: "appointmentdate_C", Key: "appointment_date"},
			{Raw: "agmdate_C", Key: "agm_date"},
			{Raw: "DateAnnualGenMeet_D", Key: "agm_date", Alt: true},
			{Raw: "DateOfAccAuditedFrom_D", Key: "audit_period_start"},
			{Raw: "periodfrom_C", Key: "audit_period_start", Alt: true},
			{Raw: "DateOfAccAuditedTo_D", Key: "audit_period_end"},
			{Raw: "periodto_C", Key: "audit_period_end", Alt: true},
			{Raw: "nofinyears_C", Key: "financial_years"},
			{Raw: "NumOfFinanYearApp", Key: "financial_years", Alt: true},
			{Raw: "CurrDate", Key: "filing_date"},
			{Raw: "current_date", Key: "filing_date", Alt: true},
			{Raw: "DateReceipt_D", Key: "receipt_date"},

			// Filing metadata
			{Raw: "DINOfDir_C", Key: "director_din"},
			{Raw: "ResoNum", Key: "resolution_number"},
			{Raw: "serialNumber", Key: "certificate_serial"},
			{Raw: "Attachment_C", Key: "attachments"},
		},
		TextFields: []TextSpec{
			{Key: "company_cin", Pattern: regexp.MustCompile(`(?i)CIN\s*:?\s*([ULF]\d{5}[A-Z]{2}\d{4}[A-Z]{3}\d{6})`), Group: 1},
			{Key: "auditor_pan", Pattern: regexp.MustCompile(`(?i)PAN\s*:?\s*([A-Z]{5}\d{4}[A-Z])`), Group: 1},
			{Key: "appointment_type", Pattern: regexp.MustCompile(`(?i)first\s+appointment`), Value: "First Appointment"},
			{Key: "appointment_type", Pattern: regexp.MustCompile(`(?i)re-?appointment`), Value: "Reappointment"},
			{Key: "appointment_type", Pattern: regexp.MustCompile(`(?i)casual\s+vacancy`), Value: "Casual Vacancy"},
			{Key: "company_type", Pattern: regexp.MustCompile(`(?i)private\s+limited`), Value: "Private Limited Company"},
			{Key: "company_type", Pattern: regexp.MustCompile(`(?i)public\s+limited`), Value: "Public Limited Company"},
			{Key: "company_type", Pattern: regexp.MustCompile(`(?i)one\s+person\s+company`), Value: "One Person Company"},
			{Key: "governing_section", Pattern: regexp.MustCompile(`(?i)section\s+139`), Value: "Section 139 - Appointment of Auditors"},
			{Key: "governing_section", Pattern: regexp.MustCompile(`(?i)section\s+140`), Value: "Section 140 - Removal of Auditors"},
			{Key: "agm_date", Pattern: regexp.MustCompile(`(?i)annual\s+general\s+meeting.*?(\d{1,2}[/-]\d{1,2}[/-]\d{4})`), Group: 1},
			{Key: "auditor_qualification", Pattern: regexp.MustCompile(`(?i)chartered\s+accountant`), Value: "Chartered Accountant"},
			{Key: "joint_auditors", Pattern: regexp.MustCompile(`(?i)joint\s+auditor`), Value: "yes"},
		},
		SkipMarkers: []string{"hidden", "sid", "call_id", "form_id", "version", "reader", "sign"},
	}
}
