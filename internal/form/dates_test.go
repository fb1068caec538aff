package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "slash_format", input: "01/04/2020", want: "01-Apr-2020", ok: true},
		{name: "dash_format", input: "01-04-2020", want: "01-Apr-2020", ok: true},
		{name: "month_name", input: "01-Apr-2020", want: "01-Apr-2020", ok: true},
		{name: "iso_format", input: "2020-04-01", want: "01-Apr-2020", ok: true},
		{name: "dotted_format", input: "01.04.2020", want: "01-Apr-2020", ok: true},
		{name: "single_digit", input: "1/4/2020", want: "01-Apr-2020", ok: true},
		{name: "timestamp_first_token", input: "15/09/2020 10:32:00", want: "15-Sep-2020", ok: true},
		{name: "surrounding_whitespace", input: "  31/03/2025  ", want: "31-Mar-2025", ok: true},
		{name: "empty", input: "", ok: false},
		{name: "not_a_date", input: "not applicable", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.Format(DateLayout))
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "normalizes_parseable", input: "01/04/2020", want: "01-Apr-2020"},
		{name: "already_canonical", input: "31-Mar-2025", want: "31-Mar-2025"},
		{name: "unparseable_left_as_found", input: "FY 2020-21", want: "FY 2020-21"},
		{name: "trims_whitespace", input: "  FY 2020-21 ", want: "FY 2020-21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.input))
		})
	}
}
