package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niloysannyal/form-summary/internal/form"
)

func newTestExtractor() *Extractor {
	return New(form.DefaultSpecs(), 100*1024*1024, zerolog.Nop())
}

// writeFormPDF writes a minimal single-page PDF whose AcroForm carries the
// given field dictionaries, numbered from object 4.
func writeFormPDF(t *testing.T, path string, fieldDicts ...string) {
	t.Helper()

	refs := make([]string, len(fieldDicts))
	for i := range fieldDicts {
		refs[i] = fmt.Sprintf("%d 0 R", 4+i)
	}
	objs := []string{
		fmt.Sprintf("<< /Type /Catalog /Pages 2 0 R /AcroForm << /Fields [%s] >> >>", strings.Join(refs, " ")),
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	}
	objs = append(objs, fieldDicts...)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestMapFormFields(t *testing.T) {
	tests := []struct {
		name   string
		fields []FormField
		want   map[string]string
	}{
		{
			name: "maps_known_fields",
			fields: []FormField{
				{Name: "CIN_C", Type: FieldTypeText, Value: "U12345WB2020PTC012345"},
				{Name: "CompanyName_C", Type: FieldTypeText, Value: "ACME INFRA PRIVATE LIMITED"},
			},
			want: map[string]string{
				"company_cin":  "U12345WB2020PTC012345",
				"company_name": "ACME INFRA PRIVATE LIMITED",
			},
		},
		{
			name: "strips_array_suffix",
			fields: []FormField{
				{Name: "CIN_C[0]", Type: FieldTypeText, Value: "U12345WB2020PTC012345"},
			},
			want: map[string]string{"company_cin": "U12345WB2020PTC012345"},
		},
		{
			name: "first_occurrence_wins",
			fields: []FormField{
				{Name: "CIN_C", Type: FieldTypeText, Value: "U11111WB2020PTC011111"},
				{Name: "CIN_C", Type: FieldTypeText, Value: "U22222WB2020PTC022222"},
			},
			want: map[string]string{"company_cin": "U11111WB2020PTC011111"},
		},
		{
			name: "alt_fills_only_missing_primary",
			fields: []FormField{
				{Name: "periodfrom_C", Type: FieldTypeText, Value: "01/04/2021"},
				{Name: "DateOfAccAuditedTo_D", Type: FieldTypeText, Value: "31/03/2022"},
				{Name: "periodto_C", Type: FieldTypeText, Value: "30/06/2022"},
			},
			want: map[string]string{
				"audit_period_start": "01/04/2021",
				"audit_period_end":   "31/03/2022",
			},
		},
		{
			name: "skips_system_fields",
			fields: []FormField{
				{Name: "DSCSign_hidden", Type: FieldTypeText, Value: "x"},
				{Name: "form_id", Type: FieldTypeText, Value: "ADT1"},
				{Name: "CompanyName_C", Type: FieldTypeText, Value: "ACME"},
			},
			want: map[string]string{"company_name": "ACME"},
		},
		{
			name: "drops_empty_and_unmapped_values",
			fields: []FormField{
				{Name: "CIN_C", Type: FieldTypeText, Value: "   "},
				{Name: "SomeUnknownField", Type: FieldTypeText, Value: "x"},
			},
			want: map[string]string{},
		},
		{
			name: "collapses_whitespace",
			fields: []FormField{
				{Name: "CompanyName_C", Type: FieldTypeText, Value: "ACME  INFRA\nPRIVATE LIMITED"},
			},
			want: map[string]string{"company_name": "ACME INFRA PRIVATE LIMITED"},
		},
	}

	ex := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ex.mapFormFields(tt.fields))
		})
	}
}

func TestScanText(t *testing.T) {
	ex := newTestExtractor()

	t.Run("labels_fill_missing_fields", func(t *testing.T) {
		fields := map[string]string{}
		ex.scanText("CIN: U12345WB2020PTC012345 and PAN: ABCDE1234F", fields)

		assert.Equal(t, "U12345WB2020PTC012345", fields["company_cin"])
		assert.Equal(t, "ABCDE1234F", fields["auditor_pan"])
		_, ok := fields["audit_period_start"]
		assert.False(t, ok)
	})

	t.Run("form_field_value_is_authoritative", func(t *testing.T) {
		fields := map[string]string{"company_cin": "U99999WB2020PTC099999"}
		ex.scanText("CIN: U12345WB2020PTC012345", fields)
		assert.Equal(t, "U99999WB2020PTC099999", fields["company_cin"])
	})

	t.Run("first_occurrence_wins", func(t *testing.T) {
		fields := map[string]string{}
		ex.scanText("CIN: U11111WB2020PTC011111 then later CIN: U22222WB2020PTC022222", fields)
		assert.Equal(t, "U11111WB2020PTC011111", fields["company_cin"])
	})

	t.Run("contextual_fields", func(t *testing.T) {
		fields := map[string]string{}
		ex.scanText("appointment of M/s S K GUPTA & CO, Chartered Accountants, as joint auditor "+
			"to fill a casual vacancy under section 139 of the Companies Act", fields)

		assert.Equal(t, "Casual Vacancy", fields["appointment_type"])
		assert.Equal(t, "Section 139 - Appointment of Auditors", fields["governing_section"])
		assert.Equal(t, "Chartered Accountant", fields["auditor_qualification"])
		assert.Equal(t, "yes", fields["joint_auditors"])
	})

	t.Run("agm_date_capture", func(t *testing.T) {
		fields := map[string]string{}
		ex.scanText("resolution passed at the Annual General Meeting held on 30/09/2021", fields)
		assert.Equal(t, "30/09/2021", fields["agm_date"])
	})
}

func TestBuildRecord(t *testing.T) {
	ex := newTestExtractor()

	rec := ex.buildRecord("/tmp/uploads/907_ADT-1.pdf", map[string]string{
		"company_name":          "ACME INFRA PRIVATE LIMITED",
		"company_cin":           "U12345WB2020PTC012345",
		"company_address_line1": "12 PARK STREET",
		"company_city":          "KOLKATA",
		"company_state":         "West Bengal",
		"company_pincode":       "700016",
		"auditor_firm_name":     "S K GUPTA & CO",
		"auditor_pan":           "ABCDE1234F",
		"appointment_type":      "First Appointment",
		"audit_period_start":    "01/04/2020",
		"audit_period_end":      "31/03/2025",
		"financial_years":       "5",
		"filing_date":           "15/09/2020 10:32:00",
		"certificate_serial":    "123456",
		"attachments":           "consent letter, board resolution, ",
		"joint_auditors":        "yes",
	})

	assert.Equal(t, "907_ADT-1.pdf", rec.SourceFile)
	require.NotNil(t, rec.CompanyName)
	assert.Equal(t, "ACME INFRA PRIVATE LIMITED", *rec.CompanyName)
	require.NotNil(t, rec.CompanyAddress)
	assert.Equal(t, "12 PARK STREET, KOLKATA, West Bengal, 700016", *rec.CompanyAddress)
	require.NotNil(t, rec.AuditPeriodStart)
	assert.Equal(t, "01-Apr-2020", *rec.AuditPeriodStart)
	require.NotNil(t, rec.AuditPeriodEnd)
	assert.Equal(t, "31-Mar-2025", *rec.AuditPeriodEnd)
	require.NotNil(t, rec.FilingDate)
	assert.Equal(t, "15-Sep-2020", *rec.FilingDate)
	assert.True(t, rec.JointAuditors)
	assert.Equal(t, []string{"consent letter", "board resolution"}, rec.Attachments)

	// Absent fields stay null.
	assert.Nil(t, rec.AGMDate)
	assert.Nil(t, rec.GoverningSection)
	assert.Nil(t, rec.AuditorAddress)
}

func TestExtractFileDecodeFailures(t *testing.T) {
	ex := newTestExtractor()

	t.Run("missing_file", func(t *testing.T) {
		_, err := ex.ExtractFile(filepath.Join(t.TempDir(), "nope.pdf"))
		require.Error(t, err)
		assert.True(t, IsDecodeError(err))
	})

	t.Run("garbage_content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "garbage.pdf")
		require.NoError(t, os.WriteFile(path, []byte("this is not a PDF"), 0o644))

		_, err := ex.ExtractFile(path)
		require.Error(t, err)
		assert.True(t, IsDecodeError(err))
	})

	t.Run("wrong_extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

		_, err := ex.ExtractFile(path)
		require.Error(t, err)
		assert.True(t, IsDecodeError(err))
	})
}

func TestExtractFileFromFormPDF(t *testing.T) {
	ex := newTestExtractor()
	path := filepath.Join(t.TempDir(), "adt1.pdf")
	writeFormPDF(t, path,
		"<< /FT /Tx /T (CIN_C) /V (U12345WB2020PTC012345) >>",
		"<< /FT /Tx /T (CompanyName_C) /V (ACME INFRA PRIVATE LIMITED) >>",
	)

	rec, err := ex.ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, "adt1.pdf", rec.SourceFile)
	require.NotNil(t, rec.CompanyCIN)
	assert.Equal(t, "U12345WB2020PTC012345", *rec.CompanyCIN)
	require.NotNil(t, rec.CompanyName)
	assert.Equal(t, "ACME INFRA PRIVATE LIMITED", *rec.CompanyName)
}

func TestFormReaderRadioValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radio.pdf")
	// Ff bit 16 set marks the button group as radio.
	writeFormPDF(t, path, "<< /FT /Btn /Ff 32768 /T (NatureOfAppointment) /V /NewAppointment >>")

	fields, err := NewFormReader(zerolog.Nop()).ReadFile(path)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, FieldTypeRadio, fields[0].Type)
	assert.Equal(t, "NewAppointment", fields[0].Value)
}

func TestExtractFileEnforcesSizeCap(t *testing.T) {
	ex := New(form.DefaultSpecs(), 64, zerolog.Nop())

	path := filepath.Join(t.TempDir(), "big.pdf")
	writeFormPDF(t, path, "<< /FT /Tx /T (CIN_C) /V (U12345WB2020PTC012345) >>")

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(64))

	_, err = ex.ExtractFile(path)
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
	assert.Contains(t, err.Error(), "file too large")
}

func TestTextReaderValidateFile(t *testing.T) {
	tr := NewTextReader(16)

	dir := t.TempDir()
	big := filepath.Join(dir, "big.pdf")
	require.NoError(t, os.WriteFile(big, []byte("well over sixteen bytes of content"), 0o644))

	info, err := os.Stat(big)
	require.NoError(t, err)
	assert.Error(t, tr.ValidateFile(big, info))

	small := filepath.Join(dir, "small.pdf")
	require.NoError(t, os.WriteFile(small, []byte("tiny"), 0o644))
	info, err = os.Stat(small)
	require.NoError(t, err)
	assert.NoError(t, tr.ValidateFile(small, info))
}
