package extract

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/rs/zerolog"
)

// FieldType classifies an AcroForm field.
type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypeCheckbox  FieldType = "checkbox"
	FieldTypeRadio     FieldType = "radio"
	FieldTypeSelect    FieldType = "select"
	FieldTypeButton    FieldType = "button"
	FieldTypeSignature FieldType = "signature"
	FieldTypeUnknown   FieldType = "unknown"
)

// FormField is one interactive form field with its filled-in value. Fields
// are returned in AcroForm declaration order, which for ADT-1 filings is
// document order.
type FormField struct {
	Name  string
	Type  FieldType
	Value string
}

// FormReader extracts AcroForm field values from a PDF using pdfcpu.
type FormReader struct {
	logger zerolog.Logger
}

// NewFormReader creates a form reader.
func NewFormReader(logger zerolog.Logger) *FormReader {
	return &FormReader{logger: logger}
}

// ReadFile extracts all named AcroForm fields from a PDF file. A PDF
// without an AcroForm dictionary yields an empty slice, not an error.
func (fr *FormReader) ReadFile(path string) ([]FormField, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF file: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	return fr.readFields(ctx)
}

func (fr *FormReader) readFields(ctx *model.Context) ([]FormField, error) {
	fields := make([]FormField, 0)

	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		fr.logger.Debug().Msg("no AcroForm dictionary in document")
		return fields, nil
	}

	acroFormDict, err := ctx.DereferenceDict(acroFormObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference AcroForm: %w", err)
	}
	if acroFormDict == nil {
		return fields, nil
	}

	fieldsObj, found := acroFormDict.Find("Fields")
	if !found {
		fr.logger.Debug().Msg("no Fields array in AcroForm")
		return fields, nil
	}

	fieldsArray, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference Fields array: %w", err)
	}

	for i, fieldRef := range fieldsArray {
		field, err := fr.readField(ctx, fieldRef, i)
		if err != nil {
			fr.logger.Debug().Err(err).Int("index", i).Msg("skipping malformed field")
			continue
		}
		if field != nil {
			fields = append(fields, *field)
		}
	}

	return fields, nil
}

func (fr *FormReader) readField(ctx *model.Context, fieldObj types.Object, index int) (*FormField, error) {
	fieldDict, err := ctx.DereferenceDict(fieldObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference field: %w", err)
	}
	if fieldDict == nil {
		return nil, nil
	}

	field := &FormField{}

	if nameObj, found := fieldDict.Find("T"); found {
		if name, err := ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil); err == nil {
			field.Name = name
		}
	}
	if field.Name == "" {
		field.Name = fmt.Sprintf("field_%d", index)
	}

	field.Type = fr.fieldType(ctx, fieldDict)

	if valueObj, found := fieldDict.Find("V"); found {
		field.Value = fr.fieldValue(ctx, valueObj, field.Type)
	}

	return field, nil
}

// fieldType determines the field type from the FT entry, walking up to the
// parent when the type is inherited.
func (fr *FormReader) fieldType(ctx *model.Context, fieldDict types.Dict) FieldType {
	ftObj, found := fieldDict.Find("FT")
	if !found {
		if parentObj, found := fieldDict.Find("Parent"); found {
			if parentDict, err := ctx.DereferenceDict(parentObj); err == nil && parentDict != nil {
				return fr.fieldType(ctx, parentDict)
			}
		}
		return FieldTypeUnknown
	}

	ftName, err := ctx.DereferenceName(ftObj, model.V10, nil)
	if err != nil {
		return FieldTypeUnknown
	}

	switch ftName {
	case "Btn":
		if flagsObj, found := fieldDict.Find("Ff"); found {
			if flags, err := ctx.DereferenceInteger(flagsObj); err == nil && flags != nil {
				flagValue := *flags
				if (flagValue & (1 << 15)) != 0 { // Bit 16: Radio
					return FieldTypeRadio
				} else if (flagValue & (1 << 16)) != 0 { // Bit 17: Pushbutton
					return FieldTypeButton
				}
			}
		}
		return FieldTypeCheckbox
	case "Tx":
		return FieldTypeText
	case "Ch":
		return FieldTypeSelect
	case "Sig":
		return FieldTypeSignature
	default:
		return FieldTypeUnknown
	}
}

// fieldValue renders the V entry as a string based on the field type.
func (fr *FormReader) fieldValue(ctx *model.Context, valueObj types.Object, fieldType FieldType) string {
	switch fieldType {
	case FieldTypeCheckbox:
		if name, err := ctx.DereferenceName(valueObj, model.V10, nil); err == nil {
			if name == "Yes" || name == "On" {
				return "Yes"
			}
		}
		return ""
	case FieldTypeRadio:
		if name, err := ctx.DereferenceName(valueObj, model.V10, nil); err == nil {
			return string(name)
		}
		return ""
	default:
		if val, err := ctx.DereferenceStringOrHexLiteral(valueObj, model.V10, nil); err == nil {
			return val
		}
		return ""
	}
}
