package form

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestKeysMatchSerializedForm(t *testing.T) {
	rec := &Record{SourceFile: "sample.pdf"}
	data, err := rec.Marshal()
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))

	keys := Keys()
	assert.Len(t, doc, len(keys), "serialized record must carry exactly the fixed key set")
	for _, key := range keys {
		assert.Contains(t, doc, key)
	}
}

func TestEmptyRecordSerializesNulls(t *testing.T) {
	rec := &Record{SourceFile: "sample.pdf"}
	data, err := rec.Marshal()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Nil(t, doc["company_cin"])
	assert.Nil(t, doc["audit_period_start"])
	assert.Nil(t, doc["attachments"])
	assert.Equal(t, false, doc["joint_auditors"])
}

func TestRecordRoundTrip(t *testing.T) {
	rec := &Record{
		SourceFile:        "adt1.pdf",
		CompanyName:       strPtr("ACME INFRA PRIVATE LIMITED"),
		CompanyCIN:        strPtr("U12345WB2020PTC012345"),
		AuditorFirmName:   strPtr("S K GUPTA & CO"),
		AuditorPAN:        strPtr("ABCDE1234F"),
		AppointmentType:   strPtr("First Appointment"),
		AuditPeriodStart:  strPtr("01-Apr-2020"),
		AuditPeriodEnd:    strPtr("31-Mar-2025"),
		FinancialYears:    strPtr("5"),
		GoverningSection:  strPtr("Section 139 - Appointment of Auditors"),
		FilingDate:        strPtr("15-Sep-2020"),
		CertificateSerial: strPtr("123456"),
		JointAuditors:     true,
		Attachments:       []string{"consent letter", "board resolution"},
	}

	data, err := rec.Marshal()
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestRoundTripPreservesNulls(t *testing.T) {
	rec := &Record{
		SourceFile:  "partial.pdf",
		CompanyCIN:  strPtr("U12345WB2020PTC012345"),
		AuditorPAN:  strPtr("ABCDE1234F"),
		Attachments: nil,
	}

	data, err := rec.Marshal()
	require.NoError(t, err)
	got, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, rec, got)
	assert.Nil(t, got.AuditPeriodStart)
	assert.Nil(t, got.FinancialYears)
}

func TestMarshalIsDeterministic(t *testing.T) {
	rec := &Record{
		SourceFile:  "adt1.pdf",
		CompanyName: strPtr("ACME INFRA PRIVATE LIMITED"),
	}

	first, err := rec.Marshal()
	require.NoError(t, err)
	second, err := rec.Marshal()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
